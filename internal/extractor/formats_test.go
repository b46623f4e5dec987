package extractor

import (
	"context"
	"strings"
	"testing"
)

func TestExtractPDF(t *testing.T) {
	text, err := ExtractPDF(buildPDF(t, "Hello", "World"))
	if err != nil {
		t.Fatalf("ExtractPDF returned error: %v", err)
	}

	hello := strings.Index(text, "Hello")
	world := strings.Index(text, "World")
	if hello < 0 || world < 0 || hello > world {
		t.Errorf("pages missing or out of order: %q", text)
	}
}

func TestExtractPDFZeroPages(t *testing.T) {
	text, err := ExtractPDF(buildPDF(t))
	if err != nil {
		t.Fatalf("ExtractPDF returned error for empty PDF: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}

func TestExtractPDFGarbage(t *testing.T) {
	if _, err := ExtractPDF([]byte("%PDF-1.4\ngarbage")); err == nil {
		t.Fatal("expected error for truncated PDF")
	}
}

func TestExtractDOCX(t *testing.T) {
	text, err := ExtractDOCX(buildDOCX(t, sampleDocumentXML))
	if err != nil {
		t.Fatalf("ExtractDOCX returned error: %v", err)
	}

	want := "First paragraph\nSecond\ttabbed\n\n"
	if text != want {
		t.Errorf("ExtractDOCX: got %q, want %q", text, want)
	}
}

func TestExtractDOCXMissingDocument(t *testing.T) {
	data := buildDOCX(t, sampleDocumentXML)
	// A zip without word/document.xml.
	empty := buildDOCXWithout(t)
	if _, err := ExtractDOCX(empty); err == nil {
		t.Fatal("expected error when document.xml is missing")
	}
	if _, err := ExtractDOCX(data[:len(data)/2]); err == nil {
		t.Fatal("expected error for truncated archive")
	}
}

func TestExtractTXT(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("Clause 1.\r\nClause 2."), "Clause 1.\r\nClause 2."},
		{"unicode", []byte("Harare — ZW$ 100"), "Harare — ZW$ 100"},
		{"bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("text")...), "text"},
		{"empty", []byte{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractTXT(tc.in)
			if err != nil {
				t.Fatalf("ExtractTXT: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractTXTInvalidUTF8(t *testing.T) {
	if _, err := ExtractTXT([]byte{'a', 0xff, 0xfe, 'b'}); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestExtractImageReturnsOCRText(t *testing.T) {
	ocr := &stubOCR{text: "SECTION 1\nParties"}
	got, err := ExtractImage(context.Background(), ocr, buildPNG(t))
	if err != nil {
		t.Fatalf("ExtractImage: %v", err)
	}
	if got != "SECTION 1\nParties" {
		t.Errorf("got %q", got)
	}
}

func TestExtractImageWithoutEngine(t *testing.T) {
	if _, err := ExtractImage(context.Background(), nil, buildPNG(t)); err == nil {
		t.Fatal("expected error without OCR engine")
	}
}
