// Package ocr turns PDF and raster-image documents into plain text using the
// poppler utilities and tesseract, invoked through an exec Runner so tests
// can stub them out. It is the reading collaborator in front of the metric
// extraction core, which only ever sees a complete in-memory string.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/tomless5599/TP2/constants"
)

// ErrUnsupported is returned for file extensions the extractor cannot read.
var ErrUnsupported = errors.New("unsupported file format")

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "fra+eng": field reports are French, labels often English
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit

	TessdataDir string
}

type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr"
	Language   string // detected ISO 639-1 code, or the configured OCR language
	Duration   time.Duration
	Warnings   []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	look   func(string) (string, error)
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "fra+eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, look: exec.LookPath, logger: logger}
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("ocr.extract.start", "path", path, "ext", ext)
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err := e.extractPDF(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.IMAGE:
		res, err := e.extractImage(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	default:
		e.logger.Error("ocr.extract.unsupported", "extension", ext)
		return ExtractionResult{}, fmt.Errorf("%w: extension %q", ErrUnsupported, ext)
	}
}

// requireTool fails fast with an actionable message instead of letting the
// exec call surface a bare "executable file not found".
func (e *Extractor) requireTool(name, install string) error {
	if filepath.IsAbs(name) {
		return nil
	}
	if _, err := e.look(name); err != nil {
		return fmt.Errorf("%s is required but was not found in PATH: install %s", name, install)
	}
	return nil
}

const (
	installPoppler   = "poppler-utils (provides pdftotext and pdftoppm)"
	installTesseract = "tesseract-ocr with the fra and eng language packs"
)
