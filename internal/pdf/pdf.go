// Package pdf composes raster signature images onto single pages of PDF
// documents using pdfcpu watermark stamping.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	_ "image/jpeg"

	"github.com/google/uuid"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/image/draw"
)

// ErrInvalidPage is returned when the target page index is out of range.
var ErrInvalidPage = errors.New("invalid page")

// ErrBadImage is returned when the signature bytes are not a decodable
// PNG or JPEG image.
var ErrBadImage = errors.New("invalid signature image")

// Placement positions the signature on the page in points, origin at the
// bottom-left of a letter-size coordinate space.
type Placement struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// DefaultPlacement is bottom-right-biased on a letter page.
func DefaultPlacement() Placement {
	return Placement{X: 400, Y: 50, Width: 150, Height: 75}
}

// Engine stamps signature images onto PDFs. sigDir holds the transient
// per-operation signature image files.
type Engine struct {
	sigDir string
}

func NewEngine(sigDir string) *Engine {
	return &Engine{sigDir: sigDir}
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	return pdfapi.PageCountFile(path)
}

// Stamp overlays sigImage onto the page at pageIndex (0-based) of the PDF at
// srcPath and writes the complete result to outPath. All other pages are
// copied through. The image is resampled to Width x Height points (72 dpi,
// alpha preserved) and anchored at (X, Y) from the bottom-left.
//
// The transient image file is removed on success only; on failure it may be
// left behind, and a partial outPath is deleted.
func (e *Engine) Stamp(srcPath string, sigImage []byte, pageIndex int, pos Placement, outPath string) error {
	pageCount, err := PageCount(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read source PDF: %w", err)
	}
	if pageIndex < 0 || pageIndex >= pageCount {
		return fmt.Errorf("%w: page %d of %d", ErrInvalidPage, pageIndex, pageCount)
	}

	sigPath, err := e.writeSignatureImage(sigImage, pos)
	if err != nil {
		return err
	}

	if err := copyFile(srcPath, outPath); err != nil {
		return fmt.Errorf("failed to copy PDF: %w", err)
	}

	// scale:1 abs renders the resampled image at its pixel size in points;
	// pos:bl with Dx/Dy gives absolute bottom-left positioning.
	desc := "pos:bl, scale:1 abs, rot:0, op:1"
	wm, err := pdfcpu.ParseImageWatermarkDetails(sigPath, desc, true, types.POINTS)
	if err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to parse image watermark: %w", err)
	}
	wm.Dx = pos.X
	wm.Dy = pos.Y

	config := model.NewDefaultConfiguration()
	pages := []string{strconv.Itoa(pageIndex + 1)}
	if err := pdfapi.AddWatermarksFile(outPath, "", pages, wm, config); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to apply signature: %w", err)
	}

	os.Remove(sigPath)
	return nil
}

// writeSignatureImage decodes the raw image bytes, resamples them to the
// requested placement size, and stores the result as a transient PNG.
func (e *Engine) writeSignatureImage(sigImage []byte, pos Placement) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(sigImage))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	w := int(math.Round(pos.Width))
	h := int(math.Round(pos.Height))
	if w < 1 || h < 1 {
		return "", fmt.Errorf("%w: placement %gx%g", ErrBadImage, pos.Width, pos.Height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	sigPath := filepath.Join(e.sigDir, uuid.New().String()+".png")
	f, err := os.Create(sigPath)
	if err != nil {
		return "", fmt.Errorf("failed to create signature file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, dst); err != nil {
		return "", fmt.Errorf("failed to encode signature image: %w", err)
	}
	return sigPath, nil
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
