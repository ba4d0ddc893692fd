package signal

import (
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dtnitsch/transcript-signal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestSortQuarterKeys(t *testing.T) {
	got := SortQuarterKeys([]string{"current", "prev1", "prev3", "prev2"})
	want := []string{"prev3", "prev2", "prev1", "current"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortQuarterKeys() = %v, want %v", got, want)
	}
}

func TestSortQuarterKeysDoesNotMutateInput(t *testing.T) {
	in := []string{"current", "prev2", "prev1"}
	SortQuarterKeys(in)
	if !reflect.DeepEqual(in, []string{"current", "prev2", "prev1"}) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestComputeDeltas(t *testing.T) {
	scores := models.ScoreMap{
		"prev3":   0.10,
		"prev2":   0.05,
		"prev1":   -0.02,
		"current": 0.08,
	}

	deltas := ComputeDeltas(scores)

	if _, ok := deltas["prev3"]; ok {
		t.Error("first quarter has a delta entry")
	}
	want := map[string]float64{"prev2": -0.05, "prev1": -0.07, "current": 0.10}
	for quarter, w := range want {
		got, ok := deltas[quarter]
		if !ok {
			t.Fatalf("no delta for %s", quarter)
		}
		if math.Abs(got-w) > 1e-9 {
			t.Errorf("delta[%s] = %v, want %v", quarter, got, w)
		}
	}
}

func TestClassify(t *testing.T) {
	cfg := &models.DefaultConfig().Signal

	tests := []struct {
		name  string
		score float64
		delta float64
		want  models.Decision
	}{
		{"clear long", 0.30, 0.10, models.DecisionLong},
		{"long with slightly negative delta", 0.10, -0.04, models.DecisionLong},
		{"score at long threshold is not long", 0.05, 0.10, models.DecisionHold},
		{"just above long threshold", 0.050001, -0.04999, models.DecisionLong},
		{"delta at long threshold blocks long", 0.10, -0.05, models.DecisionHold},
		{"clear short", -0.30, -0.10, models.DecisionShort},
		{"score at short threshold is not short", -0.05, -0.10, models.DecisionHold},
		{"delta at short threshold blocks short", -0.10, 0.01, models.DecisionHold},
		{"short with slightly positive delta", -0.10, 0.005, models.DecisionShort},
		{"neutral", 0.0, 0.0, models.DecisionHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.score, tt.delta, cfg); got != tt.want {
				t.Errorf("Classify(%v, %v) = %s, want %s", tt.score, tt.delta, got, tt.want)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	cfg := models.DefaultConfig()
	finbert := models.ScoreMap{"prev1": -0.20, "current": 0.40}
	vader := models.ScoreMap{"prev1": -0.10, "current": 0.30}

	signals := Generate(finbert, vader, cfg, discardLogger())
	if len(signals) != 2 {
		t.Fatalf("Generate() = %d signals, want 2", len(signals))
	}

	first := signals["prev1"]
	if first.FinBERTDelta != 0 || first.VaderDelta != 0 || first.CombinedDelta != 0 {
		t.Errorf("first quarter deltas = %+v, want zeros", first)
	}
	// 0.6*-0.20 + 0.4*-0.10 = -0.16, and the conventional zero delta
	// still satisfies delta < 0.01.
	if first.Signal != models.DecisionShort {
		t.Errorf("prev1 signal = %s, want SHORT", first.Signal)
	}

	cur := signals["current"]
	wantScore := 0.6*0.40 + 0.4*0.30
	if math.Abs(cur.CombinedScore-round4(wantScore)) > 1e-9 {
		t.Errorf("current combined score = %v, want %v", cur.CombinedScore, wantScore)
	}
	wantDelta := 0.6*(0.40-(-0.20)) + 0.4*(0.30-(-0.10))
	if math.Abs(cur.CombinedDelta-round4(wantDelta)) > 1e-9 {
		t.Errorf("current combined delta = %v, want %v", cur.CombinedDelta, wantDelta)
	}
	if cur.Signal != models.DecisionLong {
		t.Errorf("current signal = %s, want LONG", cur.Signal)
	}
}

func TestGenerateSkipsQuarterMissingFromVader(t *testing.T) {
	cfg := models.DefaultConfig()
	finbert := models.ScoreMap{"prev1": 0.10, "current": 0.20}
	vader := models.ScoreMap{"current": 0.20}

	signals := Generate(finbert, vader, cfg, discardLogger())
	if _, ok := signals["prev1"]; ok {
		t.Error("quarter missing from vader scores was signaled")
	}
}

func TestGenerateSingleQuarter(t *testing.T) {
	cfg := models.DefaultConfig()
	signals := Generate(models.ScoreMap{"current": 0.50}, models.ScoreMap{"current": 0.40}, cfg, discardLogger())

	rec, ok := signals["current"]
	if !ok {
		t.Fatal("single quarter not signaled")
	}
	if rec.CombinedDelta != 0 {
		t.Errorf("single quarter delta = %v, want 0", rec.CombinedDelta)
	}
	if rec.Signal != models.DecisionLong {
		t.Errorf("signal = %s, want LONG", rec.Signal)
	}
}

func TestRound4(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.123456, 0.1235},
		{-0.123449, -0.1234},
		{0.5, 0.5},
		{0, 0},
	}
	for _, tt := range tests {
		if got := round4(tt.in); got != tt.want {
			t.Errorf("round4(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "signals.json")
	in := map[string]models.SignalRecord{
		"prev1":   {CombinedScore: -0.14, Signal: models.DecisionShort},
		"current": {CombinedScore: 0.34, CombinedDelta: 0.48, Signal: models.DecisionLong},
	}

	if err := Save(in, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	out, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\nin  %+v\nout %+v", in, out)
	}
}
