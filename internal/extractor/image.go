package extractor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os/exec"
	"strings"
)

// OCREngine recognizes text in a decoded raster image.
type OCREngine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// ExtractImage decodes a PNG or JPEG and runs it through the OCR engine.
func ExtractImage(ctx context.Context, ocr OCREngine, data []byte) (string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if ocr == nil {
		return "", fmt.Errorf("no OCR engine configured for %s images", format)
	}

	text, err := ocr.Recognize(ctx, img)
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return text, nil
}

// TesseractOCR shells out to the tesseract binary, feeding a PNG on stdin.
type TesseractOCR struct {
	Path     string
	Language string
}

func NewTesseractOCR(path string) *TesseractOCR {
	if path == "" {
		path = "tesseract"
	}
	return &TesseractOCR{Path: path, Language: "eng"}
}

func (t *TesseractOCR) Recognize(ctx context.Context, img image.Image) (string, error) {
	var input bytes.Buffer
	if err := png.Encode(&input, img); err != nil {
		return "", fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	cmd := exec.CommandContext(ctx, t.Path, "stdin", "stdout", "-l", t.Language)
	cmd.Stdin = &input

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %s - %s", err.Error(), strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
