package ocr

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// detectLanguage guesses whether the recognized text is French or English and
// returns the ISO 639-1 code. Falls back to the configured OCR language when
// the text carries too little signal.
func (e *Extractor) detectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return e.cfg.TesseractLang
	}
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.French, lingua.English).
			Build()
	})
	if lang, ok := detector.DetectLanguageOf(text); ok {
		return strings.ToLower(lang.IsoCode639_1().String())
	}
	return e.cfg.TesseractLang
}
