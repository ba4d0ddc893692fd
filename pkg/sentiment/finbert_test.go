package sentiment

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// finbertStub answers /score with one canned prediction per sentence,
// chosen by keyword so tests can steer the labels.
func finbertStub(t *testing.T, requestCount *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/score" {
			http.NotFound(w, r)
			return
		}
		*requestCount++

		var req finbertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		preds := make([]finbertPrediction, len(req.Sentences))
		for i, s := range req.Sentences {
			switch {
			case strings.Contains(s, "grew"):
				preds[i] = finbertPrediction{Label: "positive", Score: 0.95}
			case strings.Contains(s, "fell"):
				preds[i] = finbertPrediction{Label: "negative", Score: 0.90}
			default:
				preds[i] = finbertPrediction{Label: "neutral", Score: 0.80}
			}
		}
		json.NewEncoder(w).Encode(preds)
	}))
}

func TestFinBERTScore(t *testing.T) {
	var requests int
	srv := finbertStub(t, &requests)
	defer srv.Close()

	f := NewFinBERT(srv.URL, 32)
	result, err := f.Score([]string{
		"Revenue grew 10%.",
		"Costs fell sharply.",
		"The board met on Tuesday.",
	})
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}

	// (+1 - 1 + 0) / 3
	if math.Abs(result.Average-0.0) > 1e-9 {
		t.Errorf("Average = %v, want 0", result.Average)
	}
	if len(result.Details) != 3 {
		t.Fatalf("Details = %d entries, want 3", len(result.Details))
	}
	if result.Details[0].Label != "POSITIVE" || result.Details[0].Index != 1 {
		t.Errorf("detail 0 = %+v", result.Details[0])
	}
	if result.Details[1].Label != "NEGATIVE" {
		t.Errorf("detail 1 = %+v", result.Details[1])
	}
}

func TestFinBERTBatches(t *testing.T) {
	var requests int
	srv := finbertStub(t, &requests)
	defer srv.Close()

	f := NewFinBERT(srv.URL, 2)
	sents := []string{"a grew", "b grew", "c grew", "d grew", "e grew"}
	result, err := f.Score(sents)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if requests != 3 {
		t.Errorf("made %d requests for 5 sentences at batch size 2, want 3", requests)
	}
	if len(result.Details) != 5 {
		t.Errorf("Details = %d entries, want 5", len(result.Details))
	}
	for i, d := range result.Details {
		if d.Index != i+1 {
			t.Errorf("detail %d has index %d, want %d", i, d.Index, i+1)
		}
	}
	if math.Abs(result.Average-1.0) > 1e-9 {
		t.Errorf("Average = %v, want 1", result.Average)
	}
}

func TestFinBERTNoSentences(t *testing.T) {
	f := NewFinBERT("http://unused", 32)
	if _, err := f.Score([]string{"", "  "}); !errors.Is(err, ErrNoSentences) {
		t.Errorf("Score() error = %v, want ErrNoSentences", err)
	}
}

func TestFinBERTPredictionCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]finbertPrediction{{Label: "positive", Score: 0.9}})
	}))
	defer srv.Close()

	f := NewFinBERT(srv.URL, 32)
	if _, err := f.Score([]string{"one", "two"}); err == nil {
		t.Error("mismatched prediction count not rejected")
	}
}

func TestFinBERTUnknownLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]finbertPrediction{{Label: "bullish", Score: 0.9}})
	}))
	defer srv.Close()

	f := NewFinBERT(srv.URL, 32)
	if _, err := f.Score([]string{"one"}); err == nil {
		t.Error("unknown label not rejected")
	}
}

func TestFinBERTServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFinBERT(srv.URL, 32)
	if _, err := f.Score([]string{"one"}); err == nil {
		t.Error("server error not surfaced")
	}
}
