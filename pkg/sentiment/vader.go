package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Vader scores with the VADER lexicon. The analyzer is stateless across
// calls, so one Vader value can serve a whole run.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader builds the lexicon-backed analyzer.
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Name() string { return "vader" }

// Score averages the compound polarity over all non-empty sentences.
func (v *Vader) Score(sents []string) (Result, error) {
	var result Result
	var sum float64

	for i, sentence := range sents {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		scores := v.analyzer.PolarityScores(sentence)
		sum += scores.Compound
		result.Details = append(result.Details, Detail{
			Index:    i + 1,
			Sentence: sentence,
			Label:    compoundLabel(scores.Compound),
			Score:    scores.Compound,
		})
	}

	if len(result.Details) == 0 {
		return Result{}, ErrNoSentences
	}
	result.Average = sum / float64(len(result.Details))
	return result, nil
}

// compoundLabel applies the conventional VADER cut points.
func compoundLabel(compound float64) string {
	switch {
	case compound >= 0.05:
		return "POSITIVE"
	case compound <= -0.05:
		return "NEGATIVE"
	default:
		return "NEUTRAL"
	}
}
