package db

import (
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestUpsertDocumentInsertThenUpdate(t *testing.T) {
	database := setupTestDB(t)

	doc := Document{
		Company:       "acme",
		QuarterKey:    "prev1",
		SourcePath:    "raw/acme/q1.pdf",
		CleanedPath:   "processed/acme_prev1.txt",
		Language:      "English",
		EarningsDate:  "2022-07-25",
		SentenceCount: 120,
	}

	id1, err := database.UpsertDocument(doc)
	if err != nil {
		t.Fatalf("UpsertDocument(insert) error: %v", err)
	}
	if id1 == 0 {
		t.Fatal("insert returned doc_id 0")
	}

	doc.SentenceCount = 130
	id2, err := database.UpsertDocument(doc)
	if err != nil {
		t.Fatalf("UpsertDocument(update) error: %v", err)
	}
	if id2 != id1 {
		t.Errorf("update returned new doc_id %d, want %d", id2, id1)
	}

	var count int
	if err := database.QueryRow("SELECT sentence_count FROM documents WHERE doc_id = ?", id1).Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 130 {
		t.Errorf("sentence_count = %d, want 130", count)
	}
}

func TestUpsertDocumentEmptyDateIsNull(t *testing.T) {
	database := setupTestDB(t)

	id, err := database.UpsertDocument(Document{Company: "acme", QuarterKey: "current"})
	if err != nil {
		t.Fatalf("UpsertDocument() error: %v", err)
	}

	var date any
	if err := database.QueryRow("SELECT earnings_date FROM documents WHERE doc_id = ?", id).Scan(&date); err != nil {
		t.Fatalf("query: %v", err)
	}
	if date != nil {
		t.Errorf("earnings_date = %v, want NULL", date)
	}
}

func TestScoresRoundTrip(t *testing.T) {
	database := setupTestDB(t)

	quarters := map[string]float64{"prev2": -0.10, "prev1": 0.05, "current": 0.30}
	for quarter, score := range quarters {
		id, err := database.UpsertDocument(Document{Company: "acme", QuarterKey: quarter})
		if err != nil {
			t.Fatalf("UpsertDocument(%s) error: %v", quarter, err)
		}
		if err := database.UpsertScore(id, "vader", score, `["revenue"]`); err != nil {
			t.Fatalf("UpsertScore(%s) error: %v", quarter, err)
		}
		// overwrite exercises the conflict path
		if err := database.UpsertScore(id, "vader", score, `["revenue","growth"]`); err != nil {
			t.Fatalf("UpsertScore(overwrite, %s) error: %v", quarter, err)
		}
	}

	got, err := database.GetScores("acme", "vader")
	if err != nil {
		t.Fatalf("GetScores() error: %v", err)
	}
	if len(got) != len(quarters) {
		t.Fatalf("GetScores() = %d quarters, want %d", len(got), len(quarters))
	}
	for quarter, want := range quarters {
		if got[quarter] != want {
			t.Errorf("score[%s] = %v, want %v", quarter, got[quarter], want)
		}
	}

	if other, err := database.GetScores("acme", "finbert"); err != nil || len(other) != 0 {
		t.Errorf("GetScores(finbert) = %v, %v; want empty", other, err)
	}
}

func TestGetEarningsDatesSkipsNull(t *testing.T) {
	database := setupTestDB(t)

	if _, err := database.UpsertDocument(Document{Company: "acme", QuarterKey: "prev1", EarningsDate: "2022-07-25"}); err != nil {
		t.Fatalf("UpsertDocument() error: %v", err)
	}
	if _, err := database.UpsertDocument(Document{Company: "acme", QuarterKey: "current"}); err != nil {
		t.Fatalf("UpsertDocument() error: %v", err)
	}

	dates, err := database.GetEarningsDates("acme")
	if err != nil {
		t.Fatalf("GetEarningsDates() error: %v", err)
	}
	if len(dates) != 1 || dates["prev1"] != "2022-07-25" {
		t.Errorf("GetEarningsDates() = %v", dates)
	}
}

func TestUpsertSignal(t *testing.T) {
	database := setupTestDB(t)

	if err := database.UpsertSignal("acme", "current", 0.4, 0.3, 0.34, 0.48, "LONG"); err != nil {
		t.Fatalf("UpsertSignal(insert) error: %v", err)
	}
	if err := database.UpsertSignal("acme", "current", 0.4, 0.3, 0.34, 0.48, "HOLD"); err != nil {
		t.Fatalf("UpsertSignal(update) error: %v", err)
	}

	var decision string
	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM signals").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("signals table has %d rows, want 1", n)
	}
	if err := database.QueryRow(
		"SELECT decision FROM signals WHERE company = ? AND quarter_key = ?", "acme", "current",
	).Scan(&decision); err != nil {
		t.Fatalf("query: %v", err)
	}
	if decision != "HOLD" {
		t.Errorf("decision = %q, want HOLD", decision)
	}
}

func TestInitSchemaIdempotent(t *testing.T) {
	database := setupTestDB(t)
	if err := database.InitSchema(); err != nil {
		t.Errorf("second InitSchema() error: %v", err)
	}
}
