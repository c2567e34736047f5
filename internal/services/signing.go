package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"go-signpdf/internal/pdf"
	"go-signpdf/types"
)

// ErrSourceNotFound is returned when the referenced upload does not exist.
var ErrSourceNotFound = errors.New("source file not found")

// ErrBadSignatureData is returned when the signature payload is not valid
// base64 (bare or data-URL).
var ErrBadSignatureData = errors.New("invalid signature data")

// SigningService orchestrates one signing operation: locate the upload,
// decode the signature payload, stamp, and record history.
type SigningService struct {
	engine    *pdf.Engine
	history   HistoryStore
	uploadDir string
	signedDir string
	log       *zap.Logger
}

func NewSigningService(engine *pdf.Engine, history HistoryStore, uploadDir, signedDir string, log *zap.Logger) *SigningService {
	return &SigningService{
		engine:    engine,
		history:   history,
		uploadDir: uploadDir,
		signedDir: signedDir,
		log:       log,
	}
}

// Sign stamps the signature onto pageIndex of the upload identified by fileID
// and returns the signed file identifier. userID is nil for anonymous
// signings. Failure kinds map to distinct errors: ErrSourceNotFound,
// ErrBadSignatureData, pdf.ErrBadImage, pdf.ErrInvalidPage; anything else is
// a composition or storage fault.
func (s *SigningService) Sign(ctx context.Context, fileID, signatureData string, pos pdf.Placement, pageIndex int, userID *int64) (string, error) {
	fileID = filepath.Base(fileID)
	srcPath := filepath.Join(s.uploadDir, fileID)
	if _, err := os.Stat(srcPath); err != nil {
		return "", ErrSourceNotFound
	}

	sigImage, err := DecodeSignatureData(signatureData)
	if err != nil {
		return "", err
	}

	signedFileID := "signed_" + fileID
	outPath := filepath.Join(s.signedDir, signedFileID)
	if err := s.engine.Stamp(srcPath, sigImage, pageIndex, pos, outPath); err != nil {
		return "", err
	}

	entry := types.HistoryEntry{
		UserID:           userID,
		OriginalFilename: OriginalFilename(fileID),
		SignedFilename:   signedFileID,
		FilePath:         outPath,
		SignaturePage:    pageIndex,
	}
	if _, err := s.history.Add(ctx, entry); err != nil {
		return "", fmt.Errorf("failed to record history: %w", err)
	}

	s.log.Info("pdf signed",
		zap.String("file_id", fileID),
		zap.String("signed_file_id", signedFileID),
		zap.Int("page", pageIndex),
		zap.Bool("anonymous", userID == nil),
	)
	return signedFileID, nil
}

// DecodeSignatureData accepts a data-URL ("data:image/png;base64,...") or a
// bare base64 payload and returns the raw image bytes.
func DecodeSignatureData(data string) ([]byte, error) {
	if strings.TrimSpace(data) == "" {
		return nil, ErrBadSignatureData
	}
	if _, payload, ok := strings.Cut(data, ","); ok {
		data = payload
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimSpace(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSignatureData, err)
		}
	}
	return raw, nil
}

// OriginalFilename strips the "{random-id}_" segment from an upload
// identifier, recovering the name the client uploaded under.
func OriginalFilename(fileID string) string {
	if _, name, ok := strings.Cut(fileID, "_"); ok && name != "" {
		return name
	}
	return fileID
}

// DownloadName reconstructs the public attachment name for a signed file
// identifier ("signed_{random-id}_{name}" -> "signed_{name}").
func DownloadName(signedFileID string) string {
	return "signed_" + OriginalFilename(strings.TrimPrefix(signedFileID, "signed_"))
}
