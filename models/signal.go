package models

// ScoreMap maps a quarter key (e.g. "prev2", "current") to a scalar
// sentiment score in [-1, 1].
type ScoreMap map[string]float64

// Decision is the categorical trade signal for one quarter.
type Decision string

const (
	DecisionLong  Decision = "LONG"
	DecisionShort Decision = "SHORT"
	DecisionHold  Decision = "HOLD"
)

// SignalRecord combines a quarter's backend scores, their deltas from the
// previous quarter, the convex-weighted combination, and the resulting
// decision. Derived once, never mutated.
type SignalRecord struct {
	FinBERTScore  float64  `json:"finbert_score"`
	VaderScore    float64  `json:"vader_score"`
	FinBERTDelta  float64  `json:"finbert_delta"`
	VaderDelta    float64  `json:"vader_delta"`
	CombinedScore float64  `json:"combined_score"`
	CombinedDelta float64  `json:"combined_delta"`
	Signal        Decision `json:"signal"`
}

// AlphaRow is one per-quarter backtest result: the strategy's post-earnings
// return against a hold-from-earnings benchmark over the same window.
type AlphaRow struct {
	Quarter         string
	Date            string
	Signal          Decision
	StrategyReturn  float64
	BenchmarkReturn float64
	Alpha           float64
}
