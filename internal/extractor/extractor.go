package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrExtractionFailure = errors.New("failed to extract text")
)

// ExtractionError wraps whatever a format extractor failed with.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtractionFailure }

// Extractor turns an uploaded file into plain text.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// Dispatcher selects an extractor by the lowercase file-name suffix.
type Dispatcher struct {
	ocr OCREngine
}

func NewDispatcher(ocr OCREngine) *Dispatcher {
	return &Dispatcher{ocr: ocr}
}

// Extension returns the lowercase text after the last dot. A name without a dot is
// its own extension.
func Extension(filename string) string {
	name := strings.ToLower(filename)
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Supported reports whether the dispatcher has an extractor for the file name.
func Supported(filename string) bool {
	switch Extension(filename) {
	case "pdf", "doc", "docx", "png", "jpg", "jpeg", "txt":
		return true
	}
	return false
}

func (d *Dispatcher) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	ext := Extension(filename)

	var (
		text string
		err  error
	)

	switch ext {
	case "pdf":
		text, err = ExtractPDF(data)
	case "doc", "docx":
		text, err = ExtractDOCX(data)
	case "png", "jpg", "jpeg":
		text, err = ExtractImage(ctx, d.ocr, data)
	case "txt":
		text, err = ExtractTXT(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return "", &ExtractionError{Format: ext, Err: err}
	}

	return text, nil
}
