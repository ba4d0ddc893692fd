package sentiment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// FinBERT scores through a FinBERT inference service over HTTP. The model
// itself is a black box here; this client batches sentences, posts them,
// and maps the returned labels onto [-1, 1].
type FinBERT struct {
	baseURL    string
	batchSize  int
	httpClient *http.Client
}

// NewFinBERT builds the client. batchSize <= 0 falls back to 32, matching
// the service's default.
func NewFinBERT(baseURL string, batchSize int) *FinBERT {
	if batchSize <= 0 {
		batchSize = 32
	}
	return &FinBERT{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		batchSize: batchSize,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (f *FinBERT) Name() string { return "finbert" }

type finbertRequest struct {
	Sentences []string `json:"sentences"`
}

type finbertPrediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// labelValues maps FinBERT class labels onto the scalar used for the
// document average.
var labelValues = map[string]float64{
	"POSITIVE": 1,
	"NEUTRAL":  0,
	"NEGATIVE": -1,
}

// Score posts sentences in batches and averages the label values. Any HTTP
// or decode failure aborts the whole document; the orchestrator decides
// whether to continue the run.
func (f *FinBERT) Score(sents []string) (Result, error) {
	valid := make([]string, 0, len(sents))
	for _, s := range sents {
		if strings.TrimSpace(s) != "" {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return Result{}, ErrNoSentences
	}

	var result Result
	var sum float64

	for start := 0; start < len(valid); start += f.batchSize {
		end := start + f.batchSize
		if end > len(valid) {
			end = len(valid)
		}
		batch := valid[start:end]

		predictions, err := f.scoreBatch(batch)
		if err != nil {
			return Result{}, err
		}
		if len(predictions) != len(batch) {
			return Result{}, fmt.Errorf("finbert returned %d predictions for %d sentences", len(predictions), len(batch))
		}

		for i, pred := range predictions {
			label := strings.ToUpper(pred.Label)
			value, ok := labelValues[label]
			if !ok {
				return Result{}, fmt.Errorf("finbert returned unknown label %q", pred.Label)
			}
			sum += value
			result.Details = append(result.Details, Detail{
				Index:    start + i + 1,
				Sentence: batch[i],
				Label:    label,
				Score:    pred.Score,
			})
		}
	}

	result.Average = sum / float64(len(result.Details))
	return result, nil
}

func (f *FinBERT) scoreBatch(batch []string) ([]finbertPrediction, error) {
	payload, err := json.Marshal(finbertRequest{Sentences: batch})
	if err != nil {
		return nil, fmt.Errorf("failed to encode finbert request: %w", err)
	}

	resp, err := f.httpClient.Post(f.baseURL+"/score", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("finbert request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("finbert service returned %d", resp.StatusCode)
	}

	var predictions []finbertPrediction
	if err := json.NewDecoder(resp.Body).Decode(&predictions); err != nil {
		return nil, fmt.Errorf("failed to decode finbert response: %w", err)
	}
	return predictions, nil
}
