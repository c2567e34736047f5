package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-signpdf/config"
	"go-signpdf/internal/pdf"
)

func setupTestServer(t *testing.T) (*httptest.Server, *memDB) {
	t.Helper()
	base := t.TempDir()
	cfg := config.Config{
		Env:            "dev",
		MaxUploadBytes: 16 * 1024 * 1024,
		Storage: config.StorageConfig{
			UploadDir:    filepath.Join(base, "uploads"),
			SignedDir:    filepath.Join(base, "signed"),
			SignatureDir: filepath.Join(base, "signatures"),
		},
	}

	db := newMemDB()
	srv, err := assemble(cfg, zap.NewNop(), memUsers{db}, memSessions{db}, memSignatures{db}, memHistory{db})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.RegisterRoutes())
	t.Cleanup(ts.Close)
	return ts, db
}

func doJSON(t *testing.T, method, url, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	result := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func registerUser(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", map[string]string{
		"email":    email,
		"password": "pw123456",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// makePDFBytes builds a real PDF with the given page count by importing one
// image per page.
func makePDFBytes(t *testing.T, pages int) []byte {
	t.Helper()
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	imgPath := filepath.Join(dir, "page.png")
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	imgFiles := make([]string, pages)
	for i := range imgFiles {
		imgFiles[i] = imgPath
	}
	pdfPath := filepath.Join(dir, "doc.pdf")
	require.NoError(t, pdfapi.ImportImagesFile(imgFiles, pdfPath, pdfcpu.DefaultImportConfig(), nil))

	raw, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	return raw
}

func uploadFile(t *testing.T, ts *httptest.Server, filename string, content []byte) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	result := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func pngDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRegisterAndLogin(t *testing.T) {
	ts, _ := setupTestServer(t)

	token := registerUser(t, ts, "a@b.com")

	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", map[string]string{
		"email":    "a@b.com",
		"password": "other",
	})
	assert.Equal(t, http.StatusConflict, status, "duplicate email must conflict")

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]string{
		"email":    "a@b.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]string{
		"email":    "a@b.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, status)
	loginToken, _ := body["token"].(string)
	require.NotEmpty(t, loginToken)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	assert.Equal(t, "a@b.com", user["email"])
	assert.NotNil(t, user["last_login"], "login response reflects the stamped last_login")

	status, me := doJSON(t, http.MethodGet, ts.URL+"/api/me", loginToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@b.com", me["email"])

	// The register token stays valid independently of the login token.
	status, _ = doJSON(t, http.MethodGet, ts.URL+"/api/me", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/logout", loginToken, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, http.MethodGet, ts.URL+"/api/me", loginToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "revoked token must not resolve")
}

func TestExpiredSessionRejected(t *testing.T) {
	ts, db := setupTestServer(t)
	token := registerUser(t, ts, "stale@b.com")

	status, _ := doJSON(t, http.MethodGet, ts.URL+"/api/me", token, nil)
	require.Equal(t, http.StatusOK, status)

	db.mu.Lock()
	for tok, session := range db.sessions {
		session.ExpiresAt = time.Now().Add(-time.Minute)
		db.sessions[tok] = session
	}
	db.mu.Unlock()

	status, _ = doJSON(t, http.MethodGet, ts.URL+"/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "expired session must not resolve")
}

func TestRegisterValidation(t *testing.T) {
	ts, _ := setupTestServer(t)

	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", map[string]string{"email": "x@y.com"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]string{"password": "pw"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, http.MethodGet, ts.URL+"/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUploadValidation(t *testing.T) {
	ts, _ := setupTestServer(t)

	status, _ := uploadFile(t, ts, "notes.txt", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, status, "non-pdf extension rejected")

	status, _ = uploadFile(t, ts, "fake.pdf", []byte("this is not a pdf"))
	assert.Equal(t, http.StatusBadRequest, status, "bad magic rejected")
}

func TestSignAndDownload(t *testing.T) {
	ts, db := setupTestServer(t)

	status, up := uploadFile(t, ts, "contract.pdf", makePDFBytes(t, 3))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), up["num_pages"])
	assert.Equal(t, "contract.pdf", up["filename"])
	fileID, _ := up["file_id"].(string)
	require.NotEmpty(t, fileID)

	status, signed := doJSON(t, http.MethodPost, ts.URL+"/api/sign", "", map[string]any{
		"file_id":   fileID,
		"signature": pngDataURL(t),
		"page":      1,
	})
	require.Equal(t, http.StatusOK, status, "sign response: %v", signed)
	signedID, _ := signed["signed_file_id"].(string)
	assert.Equal(t, "signed_"+fileID, signedID)

	resp, err := http.Get(ts.URL + "/api/download/" + signedID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `"signed_contract.pdf"`)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))

	outPath := filepath.Join(t.TempDir(), "downloaded.pdf")
	require.NoError(t, os.WriteFile(outPath, raw, 0644))
	count, err := pdf.PageCount(outPath)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "signed PDF keeps the source page count")

	// Anonymous signing is recorded without a user reference.
	require.Len(t, db.history, 1)
	for _, entry := range db.history {
		assert.Nil(t, entry.UserID)
		assert.Equal(t, "contract.pdf", entry.OriginalFilename)
		assert.Equal(t, 1, entry.SignaturePage)
	}

	// Download is repeatable.
	resp2, err := http.Get(ts.URL + "/api/download/" + signedID)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	resp3, err := http.Get(ts.URL + "/api/download/signed_nonexistent.pdf")
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp3.StatusCode)
}

func TestSignErrors(t *testing.T) {
	ts, _ := setupTestServer(t)

	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/sign", "", map[string]any{
		"file_id":   "unknown.pdf",
		"signature": pngDataURL(t),
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/sign", "", map[string]any{"file_id": "x"})
	assert.Equal(t, http.StatusBadRequest, status, "missing signature data")

	_, up := uploadFile(t, ts, "one.pdf", makePDFBytes(t, 1))
	fileID, _ := up["file_id"].(string)
	require.NotEmpty(t, fileID)

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/sign", "", map[string]any{
		"file_id":   fileID,
		"signature": pngDataURL(t),
		"page":      5,
	})
	assert.Equal(t, http.StatusBadRequest, status, "out-of-range page")

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/sign", "", map[string]any{
		"file_id":   fileID,
		"signature": "data:image/png;base64,%%%%",
	})
	assert.Equal(t, http.StatusBadRequest, status, "undecodable signature")
}

func TestSignatureLibrary(t *testing.T) {
	ts, _ := setupTestServer(t)

	status, _ := doJSON(t, http.MethodGet, ts.URL+"/api/signatures", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	token := registerUser(t, ts, "lib@b.com")

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/signatures/save", token, map[string]string{"name": "only name"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, saved := doJSON(t, http.MethodPost, ts.URL+"/api/signatures/save", token, map[string]string{
		"name":      "default",
		"signature": pngDataURL(t),
	})
	require.Equal(t, http.StatusOK, status)
	sigID := int64(saved["signature_id"].(float64))
	require.NotZero(t, sigID)

	status, list := doJSON(t, http.MethodGet, ts.URL+"/api/signatures", token, nil)
	require.Equal(t, http.StatusOK, status)
	sigs, _ := list["signatures"].([]any)
	assert.Len(t, sigs, 1)

	url := fmt.Sprintf("%s/api/signatures/%d", ts.URL, sigID)
	status, _ = doJSON(t, http.MethodDelete, url, token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, http.MethodDelete, url, token, nil)
	assert.Equal(t, http.StatusNotFound, status, "double delete")
}

func TestHistoryEndpoints(t *testing.T) {
	ts, _ := setupTestServer(t)
	token := registerUser(t, ts, "hist@b.com")

	_, up := uploadFile(t, ts, "report.pdf", makePDFBytes(t, 2))
	fileID, _ := up["file_id"].(string)
	require.NotEmpty(t, fileID)

	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/sign", token, map[string]any{
		"file_id":   fileID,
		"signature": pngDataURL(t),
	})
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, http.MethodGet, ts.URL+"/api/history", token, nil)
	require.Equal(t, http.StatusOK, status)
	entries, _ := body["history"].([]any)
	require.Len(t, entries, 1)
	entry, _ := entries[0].(map[string]any)
	assert.Equal(t, "report.pdf", entry["original_filename"])
	assert.Equal(t, "signed_"+fileID, entry["signed_filename"])
	assert.Equal(t, float64(0), entry["signature_page"])

	status, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/history", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, http.MethodGet, ts.URL+"/api/history", token, nil)
	require.Equal(t, http.StatusOK, status)
	entries, _ = body["history"].([]any)
	assert.Empty(t, entries)
}

func TestAccountDeletion(t *testing.T) {
	ts, db := setupTestServer(t)
	token := registerUser(t, ts, "gone@b.com")

	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/signatures/save", token, map[string]string{
		"name":      "mine",
		"signature": pngDataURL(t),
	})
	require.Equal(t, http.StatusOK, status)

	_, up := uploadFile(t, ts, "deal.pdf", makePDFBytes(t, 1))
	fileID, _ := up["file_id"].(string)
	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/sign", token, map[string]any{
		"file_id":   fileID,
		"signature": pngDataURL(t),
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/account", token, nil)
	require.Equal(t, http.StatusOK, status)

	assert.Empty(t, db.users, "user row removed")
	assert.Empty(t, db.sessions, "sessions cascade")
	assert.Empty(t, db.sigs, "saved signatures cascade")
	require.Len(t, db.history, 1, "history survives account deletion")
	for _, entry := range db.history {
		assert.Nil(t, entry.UserID, "history anonymized")
	}

	status, _ = doJSON(t, http.MethodGet, ts.URL+"/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPreview(t *testing.T) {
	ts, _ := setupTestServer(t)

	_, up := uploadFile(t, ts, "prev.pdf", makePDFBytes(t, 1))
	fileID, _ := up["file_id"].(string)
	require.NotEmpty(t, fileID)

	status, body := doJSON(t, http.MethodGet, ts.URL+"/api/preview/"+fileID+"/0", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, _ = doJSON(t, http.MethodGet, ts.URL+"/api/preview/unknown.pdf/0", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
