package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"go-signpdf/internal/pdf"
	"go-signpdf/internal/services"
	"go-signpdf/internal/utils"
)

// sniffPDF reports whether the reader starts with the PDF magic bytes.
func sniffPDF(r io.Reader) bool {
	header := make([]byte, 5)
	if _, err := io.ReadFull(r, header); err != nil {
		return false
	}
	return string(header) == "%PDF-"
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	NumPages int    `json:"num_pages"`
}

type SignRequest struct {
	FileID    string       `json:"file_id"`
	Signature string       `json:"signature"`
	Position  *PositionReq `json:"position"`
	Page      int          `json:"page"`
}

// PositionReq uses pointers so absent fields fall back to the default
// placement independently.
type PositionReq struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

type SignResponse struct {
	Success      bool   `json:"success"`
	SignedFileID string `json:"signed_file_id"`
	Message      string `json:"message"`
}

// Upload godoc
// @Summary      Upload a PDF file
// @Description  Stores the PDF under a generated identifier and reports its page count
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF file"
// @Success      200  {object}  UploadResponse
// @Failure      400  {object}  ErrorResponse  "No, empty, or non-PDF file"
// @Router       /api/upload [post]
func (h *APIHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "file too large")
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if handler.Filename == "" {
		writeError(w, http.StatusBadRequest, "empty filename")
		return
	}
	if strings.ToLower(filepath.Ext(handler.Filename)) != ".pdf" {
		writeError(w, http.StatusBadRequest, "only PDF files are allowed")
		return
	}

	if !sniffPDF(file) {
		writeError(w, http.StatusBadRequest, "uploaded file is not a valid PDF")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		return
	}

	sanitized := utils.SanitizeFilename(handler.Filename)
	fileID := fmt.Sprintf("%s_%s", utils.GenerateUUID(), sanitized)
	path := filepath.Join(h.Storage.UploadDir, fileID)

	dst, err := os.Create(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create file")
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save file")
		return
	}

	numPages, err := pdf.PageCount(path)
	if err != nil {
		os.Remove(path)
		writeError(w, http.StatusBadRequest, "uploaded file is not a valid PDF")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success:  true,
		FileID:   fileID,
		Filename: sanitized,
		NumPages: numPages,
	})
}

// Sign godoc
// @Summary      Sign an uploaded PDF
// @Description  Overlays the signature image onto the requested page and stores the signed PDF
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        request  body      SignRequest  true  "Sign request"
// @Success      200  {object}  SignResponse
// @Failure      400  {object}  ErrorResponse  "Missing or invalid data"
// @Failure      404  {object}  ErrorResponse  "Source file not found"
// @Failure      500  {object}  ErrorResponse  "Composition or storage failure"
// @Router       /api/sign [post]
func (h *APIHandler) Sign(w http.ResponseWriter, r *http.Request) {
	var req SignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.FileID == "" || req.Signature == "" {
		writeError(w, http.StatusBadRequest, "missing required data")
		return
	}

	pos := pdf.DefaultPlacement()
	if req.Position != nil {
		if req.Position.X != nil {
			pos.X = *req.Position.X
		}
		if req.Position.Y != nil {
			pos.Y = *req.Position.Y
		}
		if req.Position.Width != nil {
			pos.Width = *req.Position.Width
		}
		if req.Position.Height != nil {
			pos.Height = *req.Position.Height
		}
	}

	var userID *int64
	if user, ok := userFrom(r.Context()); ok {
		userID = &user.ID
	}

	signedFileID, err := h.Signing.Sign(r.Context(), req.FileID, req.Signature, pos, req.Page, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSourceNotFound):
			writeError(w, http.StatusNotFound, "file not found")
		case errors.Is(err, services.ErrBadSignatureData), errors.Is(err, pdf.ErrBadImage):
			writeError(w, http.StatusBadRequest, "invalid signature image")
		case errors.Is(err, pdf.ErrInvalidPage):
			writeError(w, http.StatusBadRequest, "invalid page")
		default:
			h.log.Error("sign failed", zap.String("file_id", req.FileID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to sign PDF")
		}
		return
	}

	writeJSON(w, http.StatusOK, SignResponse{
		Success:      true,
		SignedFileID: signedFileID,
		Message:      "PDF signed successfully",
	})
}

// Download godoc
// @Summary      Download a signed PDF
// @Description  Serves a previously signed PDF as an attachment
// @Tags         documents
// @Produce      application/pdf
// @Param        fileID  path  string  true  "Signed file identifier"
// @Success      200  {file}  file  "PDF file download"
// @Failure      404  {object}  ErrorResponse
// @Router       /api/download/{fileID} [get]
func (h *APIHandler) Download(w http.ResponseWriter, r *http.Request) {
	fileID := filepath.Base(chi.URLParam(r, "fileID"))
	path := filepath.Join(h.Storage.SignedDir, fileID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.DownloadName(fileID)))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

// Preview godoc
// @Summary      Preview a PDF page
// @Description  Placeholder endpoint; real page rendering is not implemented
// @Tags         documents
// @Produce      json
// @Param        fileID  path  string  true  "Upload identifier"
// @Param        page    path  int     true  "Page number"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/preview/{fileID}/{page} [get]
func (h *APIHandler) Preview(w http.ResponseWriter, r *http.Request) {
	fileID := filepath.Base(chi.URLParam(r, "fileID"))
	path := filepath.Join(h.Storage.UploadDir, fileID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "preview available"})
}
