package cleaner

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/dtnitsch/transcript-signal/models"
)

// ErrEmptyCleanOutput is returned when a whole document produces zero
// sentence records. Terminal for that document, not retried.
var ErrEmptyCleanOutput = errors.New("empty cleaned output")

var (
	bulletPrefix = regexp.MustCompile(`^[\s]*[-–•*]+\s*`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// Emitter splits surviving speaker blocks into sentences and assigns each
// one a document-wide running index. The sentence boundaries come from a
// trained Punkt-style tokenizer, so honorifics, decimals and common
// abbreviations do not split sentences the way a naive period split would.
type Emitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewEmitter loads the English sentence tokenizer.
func NewEmitter() (*Emitter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence tokenizer: %w", err)
	}
	return &Emitter{tokenizer: tokenizer}, nil
}

// Emit produces one SentenceRecord per sentence across all blocks, in
// order. The index is 1-based, increments once per emitted sentence, and
// never resets or skips within a document.
func (e *Emitter) Emit(blocks []models.SpeakerBlock, docID string) ([]models.SentenceRecord, error) {
	var records []models.SentenceRecord
	index := 1

	for _, block := range blocks {
		text := e.flatten(block.Lines)
		if text == "" {
			continue
		}
		for _, sent := range e.tokenizer.Tokenize(text) {
			s := strings.TrimSpace(sent.Text)
			if s == "" {
				continue
			}
			records = append(records, models.SentenceRecord{
				DocID:    docID,
				Index:    index,
				Speaker:  block.Speaker,
				Role:     block.Role,
				Sentence: s,
			})
			index++
		}
	}

	if len(records) == 0 {
		return nil, ErrEmptyCleanOutput
	}
	return records, nil
}

// flatten strips leading bullet markers from each line and collapses all
// whitespace runs so the tokenizer sees one continuous paragraph.
func (e *Emitter) flatten(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = bulletPrefix.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return multiSpace.ReplaceAllString(strings.Join(parts, " "), " ")
}

// Serialize renders records in the persisted pipe-delimited format, one
// record per line.
func Serialize(records []models.SentenceRecord) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.Format()
	}
	return strings.Join(lines, "\n")
}
