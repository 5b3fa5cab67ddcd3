package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/tomless5599/TP2/constants"
)

// stubRunner fakes the poppler/tesseract binaries. When invoked as pdftoppm
// it writes the page files the real tool would produce.
type stubRunner struct {
	pdfText      string
	pdfTextErr   error
	ocrText      string
	renderedPage bool
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	switch name {
	case "pdftotext":
		return []byte(s.pdfText), nil, s.pdfTextErr
	case "pdftoppm":
		prefix := args[len(args)-1]
		if err := os.WriteFile(prefix+"-1.png", []byte("png"), 0o644); err != nil {
			return nil, nil, err
		}
		s.renderedPage = true
		return nil, nil, nil
	case "tesseract":
		return []byte(s.ocrText), nil, nil
	}
	return nil, nil, fmt.Errorf("unexpected command %q", name)
}

func newTestExtractor(t *testing.T, r Runner) *Extractor {
	t.Helper()
	e := NewExtractor(Config{}, nil)
	e.runner = r
	e.look = func(string) (string, error) { return "", nil }
	return e
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := newTestExtractor(t, &stubRunner{})
	_, err := e.Extract(context.Background(), "report.docx")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
	if !strings.Contains(err.Error(), "docx") {
		t.Errorf("error %q should name the extension", err)
	}
}

func TestExtractPDFTextLayer(t *testing.T) {
	stub := &stubRunner{pdfText: "Poids : 70,2 kg\nAssis : 40 %\f\nDurée totale : 45 min\n"}
	e := newTestExtractor(t, stub)

	res, err := e.Extract(context.Background(), "rapport.pdf")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Method != "pdf-text" {
		t.Errorf("method = %q, want pdf-text", res.Method)
	}
	if res.SourceType != constants.PDF {
		t.Errorf("source type = %q, want %q", res.SourceType, constants.PDF)
	}
	if res.Pages != 2 {
		t.Errorf("pages = %d, want 2", res.Pages)
	}
	if !strings.Contains(res.Text, "Poids : 70,2 kg") {
		t.Errorf("text %q lost content", res.Text)
	}
	if res.Language == "" {
		t.Error("language should be set")
	}
}

func TestExtractPDFFallsBackToOCR(t *testing.T) {
	stub := &stubRunner{pdfText: " \n ", ocrText: "Total des points : 12"}
	e := newTestExtractor(t, stub)

	res, err := e.Extract(context.Background(), "scan.pdf")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !stub.renderedPage {
		t.Fatal("expected pdftoppm to be invoked for the OCR fallback")
	}
	if res.Method != "pdf-ocr" {
		t.Errorf("method = %q, want pdf-ocr", res.Method)
	}
	if !strings.Contains(res.Text, "Total des points : 12") {
		t.Errorf("text = %q", res.Text)
	}
}

func TestExtractImage(t *testing.T) {
	stub := &stubRunner{ocrText: "Travail moyen : 3,1 kcal/min\n\n\n\nfin"}
	e := newTestExtractor(t, stub)

	res, err := e.Extract(context.Background(), "photo.jpg")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Method != "image-ocr" || res.SourceType != constants.IMAGE || res.Pages != 1 {
		t.Errorf("unexpected result meta: %+v", res)
	}
	if strings.Contains(res.Text, "\n\n\n") {
		t.Errorf("text %q should have blank runs collapsed", res.Text)
	}
}

func TestExtractMissingToolMessage(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	e.runner = &stubRunner{}
	e.look = func(name string) (string, error) { return "", fmt.Errorf("%s: not found", name) }

	_, err := e.Extract(context.Background(), "rapport.pdf")
	if err == nil {
		t.Fatal("expected an error when pdftotext is missing")
	}
	if !strings.Contains(err.Error(), "pdftotext") || !strings.Contains(err.Error(), "poppler-utils") {
		t.Errorf("error %q should name the tool and the package to install", err)
	}
}

func TestNormalizeKeepsLines(t *testing.T) {
	in := "a\r\nb\t\tc   d\n\n\n\n\ne  "
	got := Normalize(in)
	want := "a\nb c d\n\ne"
	if got != want {
		t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
	}
}
