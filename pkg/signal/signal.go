// Package signal derives quarter-over-quarter trade signals from per-quarter
// sentiment scores.
package signal

import (
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dtnitsch/transcript-signal/models"
)

// SortQuarterKeys orders quarter keys chronologically under the
// prevN...prev1,current convention: "prev3" sorts before "prev1", and
// "current" (or any non-prev key) sorts last.
func SortQuarterKeys(keys []string) []string {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool {
		return quarterOrder(sorted[i]) < quarterOrder(sorted[j])
	})
	return sorted
}

func quarterOrder(key string) int {
	if n, ok := strings.CutPrefix(key, "prev"); ok {
		if v, err := strconv.Atoi(n); err == nil {
			return -v
		}
	}
	return 0
}

// ComputeDeltas returns, for each quarter after the first in chronological
// order, the difference from the immediately preceding quarter's score.
// The first quarter has no delta entry; by convention its delta is read as
// zero downstream.
func ComputeDeltas(scores models.ScoreMap) map[string]float64 {
	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	keys = SortQuarterKeys(keys)

	deltas := make(map[string]float64, len(keys))
	for i := 1; i < len(keys); i++ {
		deltas[keys[i]] = scores[keys[i]] - scores[keys[i-1]]
	}
	return deltas
}

// Classify applies the rules-based strategy. Both comparisons are strict:
// a combined score of exactly +0.05 is not LONG.
func Classify(score, delta float64, cfg *models.SignalConfig) models.Decision {
	switch {
	case score > cfg.LongScore && delta > cfg.LongDelta:
		return models.DecisionLong
	case score < cfg.ShortScore && delta < cfg.ShortDelta:
		return models.DecisionShort
	default:
		return models.DecisionHold
	}
}

// Generate combines the two backends' scores and deltas into one ensemble
// signal per quarter. Quarters missing a delta in either backend are
// skipped with a warning; the first quarter is still signaled with a zero
// delta, matching the delta convention.
func Generate(finbert, vader models.ScoreMap, cfg *models.Config, logger *slog.Logger) map[string]models.SignalRecord {
	keys := make([]string, 0, len(finbert))
	for k := range finbert {
		keys = append(keys, k)
	}
	keys = SortQuarterKeys(keys)

	finbertDeltas := ComputeDeltas(finbert)
	vaderDeltas := ComputeDeltas(vader)

	signals := make(map[string]models.SignalRecord, len(keys))
	for i, quarter := range keys {
		vScore, ok := vader[quarter]
		if !ok {
			logger.Warn("skipping signal: quarter missing from vader scores", "quarter", quarter)
			continue
		}
		fScore := finbert[quarter]

		var fDelta, vDelta float64
		if i > 0 {
			var fOK, vOK bool
			fDelta, fOK = finbertDeltas[quarter]
			vDelta, vOK = vaderDeltas[quarter]
			if !fOK || !vOK {
				logger.Warn("skipping signal: missing delta", "quarter", quarter)
				continue
			}
		}

		combinedScore := cfg.Scoring.FinBERTWeight*fScore + cfg.Scoring.VaderWeight*vScore
		combinedDelta := cfg.Scoring.FinBERTWeight*fDelta + cfg.Scoring.VaderWeight*vDelta

		signals[quarter] = models.SignalRecord{
			FinBERTScore:  round4(fScore),
			VaderScore:    round4(vScore),
			FinBERTDelta:  round4(fDelta),
			VaderDelta:    round4(vDelta),
			CombinedScore: round4(combinedScore),
			CombinedDelta: round4(combinedDelta),
			Signal:        Classify(combinedScore, combinedDelta, &cfg.Signal),
		}
	}
	return signals
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
