// Package langgate verifies that a cleaned transcript is English before it
// reaches the sentiment backends, which are English-only. Non-English
// documents are skipped, not failed.
package langgate

import (
	"errors"
	"fmt"

	"github.com/pemistahl/lingua-go"
)

// ErrNonEnglish marks a transcript whose detected language is not
// confidently English.
var ErrNonEnglish = errors.New("transcript is not English")

// Gate wraps a lingua detector built once and reused across documents.
type Gate struct {
	detector      lingua.LanguageDetector
	minConfidence float64
}

// New builds the detector over English plus the languages it is most often
// confused with in financial filings.
func New(minConfidence float64) *Gate {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.French,
			lingua.German,
			lingua.Spanish,
			lingua.Portuguese,
			lingua.Dutch,
		).
		Build()
	return &Gate{detector: detector, minConfidence: minConfidence}
}

// Check returns ErrNonEnglish (wrapped with the detected language) unless
// the text is English at or above the configured confidence.
func (g *Gate) Check(text string) error {
	confidence := g.detector.ComputeLanguageConfidence(text, lingua.English)
	if confidence >= g.minConfidence {
		return nil
	}

	detected, ok := g.detector.DetectLanguageOf(text)
	if !ok {
		return fmt.Errorf("%w: language undetermined", ErrNonEnglish)
	}
	return fmt.Errorf("%w: detected %s (en confidence %.2f)", ErrNonEnglish, detected, confidence)
}

// Detect returns the most likely language name, for the run ledger.
func (g *Gate) Detect(text string) string {
	detected, ok := g.detector.DetectLanguageOf(text)
	if !ok {
		return "unknown"
	}
	return detected.String()
}
