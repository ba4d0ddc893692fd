package sentiment

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry(NewVader(), NewFinBERT("http://unused", 32))

	if got := r.Names(); !reflect.DeepEqual(got, []string{"finbert", "vader"}) {
		t.Errorf("Names() = %v", got)
	}

	s, err := r.Get("vader")
	if err != nil {
		t.Fatalf("Get(vader) error: %v", err)
	}
	if s.Name() != "vader" {
		t.Errorf("Get(vader).Name() = %q", s.Name())
	}

	if _, err := r.Get("bert-large"); err == nil {
		t.Error("Get() accepted an unregistered backend")
	}
}

func TestCombine(t *testing.T) {
	got := Combine(0.5, -0.25, 0.6, 0.4)
	want := 0.6*0.5 + 0.4*-0.25
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Combine() = %v, want %v", got, want)
	}
}

func TestWriteDetailsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores", "vader_out.csv")
	result := Result{
		Average: 0.25,
		Details: []Detail{
			{Index: 1, Sentence: "Revenue grew, again.", Label: "POSITIVE", Score: 0.6},
			{Index: 2, Sentence: "Flat quarter.", Label: "NEUTRAL", Score: 0},
		},
	}

	if err := WriteDetailsCSV(result, path); err != nil {
		t.Fatalf("WriteDetailsCSV() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("csv has %d rows, want 3", len(rows))
	}
	if !reflect.DeepEqual(rows[0], []string{"index", "sentence", "label", "score"}) {
		t.Errorf("header = %v", rows[0])
	}
	if !reflect.DeepEqual(rows[1], []string{"1", "Revenue grew, again.", "POSITIVE", "0.6000"}) {
		t.Errorf("row 1 = %v", rows[1])
	}
}
