package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// Document is one processed transcript's ledger row.
type Document struct {
	DocID         int64
	Company       string
	QuarterKey    string
	SourcePath    string
	CleanedPath   string
	Language      string
	EarningsDate  string
	SentenceCount int
}

// UpsertDocument inserts a document row, or refreshes it when the same
// company/quarter was processed before, returning the doc_id either way.
func (db *DB) UpsertDocument(doc Document) (int64, error) {
	var existingID int64
	err := db.QueryRow(
		"SELECT doc_id FROM documents WHERE company = ? AND quarter_key = ?",
		doc.Company, doc.QuarterKey,
	).Scan(&existingID)

	if err == nil {
		_, err = db.Exec(`
			UPDATE documents
			SET source_path = ?, cleaned_path = ?, language = ?, earnings_date = ?, sentence_count = ?
			WHERE doc_id = ?
		`, doc.SourcePath, doc.CleanedPath, doc.Language, nullable(doc.EarningsDate), doc.SentenceCount, existingID)
		if err != nil {
			return 0, fmt.Errorf("failed to update document: %w", err)
		}
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing document: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO documents (company, quarter_key, source_path, cleaned_path, language, earnings_date, sentence_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.Company, doc.QuarterKey, doc.SourcePath, doc.CleanedPath, doc.Language, nullable(doc.EarningsDate), doc.SentenceCount)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}

	docID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get document ID: %w", err)
	}
	return docID, nil
}

// UpsertScore records one backend's score for a document.
func (db *DB) UpsertScore(docID int64, backend string, score float64, topKeywords string) error {
	_, err := db.Exec(`
		INSERT INTO scores (doc_id, backend, score, top_keywords)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(doc_id, backend) DO UPDATE SET score = excluded.score, top_keywords = excluded.top_keywords
	`, docID, backend, score, topKeywords)
	if err != nil {
		return fmt.Errorf("failed to upsert score: %w", err)
	}
	return nil
}

// GetScores returns a company's scores for one backend, keyed by quarter.
func (db *DB) GetScores(company, backend string) (map[string]float64, error) {
	rows, err := db.Query(`
		SELECT d.quarter_key, s.score
		FROM scores s
		JOIN documents d ON d.doc_id = s.doc_id
		WHERE d.company = ? AND s.backend = ?
	`, company, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string]float64)
	for rows.Next() {
		var quarter string
		var score float64
		if err := rows.Scan(&quarter, &score); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		scores[quarter] = score
	}
	return scores, rows.Err()
}

// GetEarningsDates returns a company's recorded earnings dates, keyed by
// quarter. Quarters where date extraction missed are absent.
func (db *DB) GetEarningsDates(company string) (map[string]string, error) {
	rows, err := db.Query(`
		SELECT quarter_key, earnings_date
		FROM documents
		WHERE company = ? AND earnings_date IS NOT NULL
	`, company)
	if err != nil {
		return nil, fmt.Errorf("failed to query earnings dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[string]string)
	for rows.Next() {
		var quarter, date string
		if err := rows.Scan(&quarter, &date); err != nil {
			return nil, fmt.Errorf("failed to scan date row: %w", err)
		}
		dates[quarter] = date
	}
	return dates, rows.Err()
}

// UpsertSignal records one quarter's derived signal.
func (db *DB) UpsertSignal(company, quarterKey string, finbertScore, vaderScore, combinedScore, combinedDelta float64, decision string) error {
	_, err := db.Exec(`
		INSERT INTO signals (company, quarter_key, finbert_score, vader_score, combined_score, combined_delta, decision)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(company, quarter_key) DO UPDATE SET
			finbert_score = excluded.finbert_score,
			vader_score = excluded.vader_score,
			combined_score = excluded.combined_score,
			combined_delta = excluded.combined_delta,
			decision = excluded.decision
	`, company, quarterKey, finbertScore, vaderScore, combinedScore, combinedDelta, decision)
	if err != nil {
		return fmt.Errorf("failed to upsert signal: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
