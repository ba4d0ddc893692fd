package cleaner

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dtnitsch/transcript-signal/models"
)

// roleVocabulary is the fixed set of role labels that can be extracted from
// a speaker cue's descriptor. Matching is case-insensitive; the canonical
// spelling here is what gets recorded.
var roleVocabulary = []string{
	"Investor Relations",
	"Managing Director",
	"Vice President",
	"Head of",
	"Chairman",
	"President",
	"Director",
	"Analyst",
	"CEO",
	"CFO",
}

// cuePattern matches a candidate speaker cue anywhere in a line: a run of
// name-ish words, an optional " - descriptor" tail, then a colon followed
// by whitespace or end of line. Whether a match is accepted as a real cue
// is decided by validateSpeaker.
var cuePattern = regexp.MustCompile(`([A-Za-z][A-Za-z.'&-]*(?:[ \t]+[A-Za-z][A-Za-z.'&-]*){0,6}(?:\s*[-–]\s*[A-Za-z][A-Za-z .,'/&-]*)?):(?:\s+|$)`)

// Segmenter groups normalized lines into ordered speaker blocks by
// detecting speaker-cue text versus continuation text.
//
// The cue heuristic is deliberately loose: a short, title-cased run of
// dialogue followed by a colon is mis-read as a new speaker. That
// false-positive rate is an accepted trade of precision for simplicity,
// not a defect to be patched with a stricter parser.
type Segmenter struct {
	maxSpeakerLen int
}

// NewSegmenter builds a Segmenter from the cleaning configuration.
func NewSegmenter(cfg *models.CleaningConfig) *Segmenter {
	maxLen := cfg.MaxSpeakerLen
	if maxLen <= 0 {
		maxLen = 50
	}
	return &Segmenter{maxSpeakerLen: maxLen}
}

// Segment walks the lines once, opening a new block at every accepted
// speaker cue and appending everything else to the currently open block.
// Text before the first cue lands in an implicit block with an empty
// speaker. Every line ends up in exactly one block, in order.
func (s *Segmenter) Segment(lines []models.NormalizedLine) []models.SpeakerBlock {
	var blocks []models.SpeakerBlock
	var current *models.SpeakerBlock

	appendText := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		if current == nil {
			current = &models.SpeakerBlock{}
		}
		current.Lines = append(current.Lines, text)
	}

	closeCurrent := func() {
		if current != nil {
			blocks = append(blocks, *current)
			current = nil
		}
	}

	for _, line := range lines {
		rest := line.Text
		for rest != "" {
			loc := s.findCue(rest)
			if loc == nil {
				appendText(rest)
				break
			}

			// Text before the cue still belongs to the previous speaker.
			appendText(rest[:loc.start])

			closeCurrent()
			current = &models.SpeakerBlock{Speaker: loc.speaker, Role: loc.role}
			rest = rest[loc.end:]
		}
	}
	closeCurrent()

	return blocks
}

type cueMatch struct {
	start, end int
	speaker    string
	role       string
}

// findCue returns the first accepted speaker cue in text, or nil. A
// rejected candidate is rescanned from its second word: the cue regex is
// greedy, so "morning. John Smith - CEO:" fails as a whole while its
// "John Smith - CEO:" suffix is a perfectly good cue.
func (s *Segmenter) findCue(text string) *cueMatch {
	offset := 0
	for offset < len(text) {
		idx := cuePattern.FindStringSubmatchIndex(text[offset:])
		if idx == nil {
			return nil
		}
		start, end := offset+idx[0], offset+idx[1]
		candStart, candEnd := offset+idx[2], offset+idx[3]

		speaker, role, ok := s.validateSpeaker(text[candStart:candEnd])
		if ok {
			return &cueMatch{start: start, end: end, speaker: speaker, role: role}
		}

		if sp := strings.IndexAny(text[candStart:candEnd], " \t"); sp >= 0 {
			offset = candStart + sp + 1
		} else {
			offset = end
		}
	}
	return nil
}

// validateSpeaker applies the capitalization heuristic to a candidate cue:
// the name part must be short and every word must start uppercase.
func (s *Segmenter) validateSpeaker(candidate string) (speaker, role string, ok bool) {
	name := strings.TrimSpace(candidate)
	if name == "" || len(name) >= s.maxSpeakerLen {
		return "", "", false
	}

	// The trailing " - descriptor" segment is attribution metadata, not
	// part of the name. It supplies the role when it names a known one.
	if i, w := indexDash(name); i >= 0 {
		role = matchRole(strings.TrimSpace(name[i+w:]))
		name = strings.TrimSpace(name[:i])
	}

	if name == "" || !allWordsCapitalized(name) {
		return "", "", false
	}
	return name, role, true
}

// indexDash finds a " - " style separator, tolerating the en dash some
// transcript vendors use. Returns the byte index and rune width, or -1.
func indexDash(s string) (int, int) {
	for i, r := range s {
		if r == '-' || r == '–' {
			// Require a leading space so hyphenated names survive.
			if i > 0 && s[i-1] == ' ' {
				return i, len(string(r))
			}
		}
	}
	return -1, 0
}

func matchRole(descriptor string) string {
	lower := strings.ToLower(descriptor)
	for _, kw := range roleVocabulary {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw
		}
	}
	return ""
}

func allWordsCapitalized(name string) bool {
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
