package cleaner

import (
	"errors"
	"strings"

	"github.com/dtnitsch/transcript-signal/models"
)

// ErrEmptyTranscript is returned when a document has no usable text at all,
// either before or after normalization.
var ErrEmptyTranscript = errors.New("empty transcript")

// Pipeline chains the four cleaning stages. Each stage fully consumes its
// input and produces a fresh structure for the next; nothing is shared
// across documents, so distinct Pipeline values may run in parallel.
type Pipeline struct {
	normalizer *Normalizer
	segmenter  *Segmenter
	emitter    *Emitter
}

// NewPipeline builds the full cleaning pipeline from configuration.
func NewPipeline(cfg *models.CleaningConfig) (*Pipeline, error) {
	emitter, err := NewEmitter()
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		normalizer: NewNormalizer(cfg),
		segmenter:  NewSegmenter(cfg),
		emitter:    emitter,
	}, nil
}

// Clean runs raw transcript text end to end and returns the ordered
// sentence records for docID.
func (p *Pipeline) Clean(text, docID string) ([]models.SentenceRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyTranscript
	}

	lines := p.normalizer.Normalize(text)
	if len(lines) == 0 {
		return nil, ErrEmptyTranscript
	}

	blocks := p.segmenter.Segment(lines)
	blocks = FilterProcedural(blocks)

	return p.emitter.Emit(blocks, docID)
}
