// Package cleaner turns raw transcript text into attributed, per-sentence
// records. The four stages run strictly forward: normalize lines, segment
// into speaker blocks, drop procedural blocks, emit sentence records.
package cleaner

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/transcript-signal/models"
)

// noisePatterns is the fixed ordered list of line-level noise matchers:
// copyright lines, transcript boilerplate, pagination, header metadata, and
// call-courtesy phrases. All are applied case-insensitively.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)©.*\d{4}`),
	regexp.MustCompile(`(?i)copyright\s+(©\s*)?\d{4}`),
	regexp.MustCompile(`(?i)(earnings conference call|transcript of|republished)`),
	regexp.MustCompile(`- \d+ -`),
	regexp.MustCompile(`(?i)event date/time:`),
	regexp.MustCompile(`(?i)transcription:`),
	regexp.MustCompile(`(?i)(thank you.*joining|recording of this call|hand(ing)?\s+(it\s+)?over)`),
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Normalizer strips pre-dialogue material and noise lines from a raw
// transcript, preserving the relative order of everything that survives.
type Normalizer struct {
	startMarkers      []string
	boilerplateMaxLen int
}

// NewNormalizer builds a Normalizer from the cleaning configuration.
func NewNormalizer(cfg *models.CleaningConfig) *Normalizer {
	return &Normalizer{
		startMarkers:      cfg.StartMarkers,
		boilerplateMaxLen: cfg.BoilerplateMaxLen,
	}
}

// Normalize splits the raw text into lines, drops everything before the
// first start marker, then removes noise, repeated boilerplate, page
// numbers and blank lines. It may return an empty slice; deciding whether
// that is fatal belongs to the caller.
func (n *Normalizer) Normalize(text string) []models.NormalizedLine {
	lines := strings.Split(text, "\n")

	start := n.startIndex(lines)
	lines = lines[start:]

	// Lines repeated more than twice are page headers/footers, provided
	// they are short enough to not be real dialogue. Counting trimmed
	// text keeps indentation variants of the same header together.
	freq := make(map[string]int, len(lines))
	for _, line := range lines {
		freq[strings.TrimSpace(line)]++
	}

	out := make([]models.NormalizedLine, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if digitsOnly.MatchString(trimmed) {
			continue
		}
		if freq[trimmed] > 2 && len(trimmed) < n.boilerplateMaxLen {
			continue
		}
		if matchesNoise(line) {
			continue
		}
		out = append(out, models.NormalizedLine{Text: trimmed, Ordinal: start + i})
	}
	return out
}

// startIndex finds the first line containing any start marker
// (case-sensitive substring match). No marker means the whole document is
// processed rather than rejected.
func (n *Normalizer) startIndex(lines []string) int {
	for i, line := range lines {
		for _, marker := range n.startMarkers {
			if strings.Contains(line, marker) {
				return i
			}
		}
	}
	return 0
}

func matchesNoise(line string) bool {
	for _, pat := range noisePatterns {
		if pat.MatchString(line) {
			return true
		}
	}
	return false
}
