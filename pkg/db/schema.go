package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Documents table: one row per processed transcript
CREATE TABLE IF NOT EXISTS documents (
    doc_id INTEGER PRIMARY KEY AUTOINCREMENT,
    company TEXT NOT NULL,
    quarter_key TEXT NOT NULL,
    source_path TEXT NOT NULL,
    cleaned_path TEXT,
    language TEXT,
    earnings_date TEXT,           -- YYYY-MM-DD, NULL when extraction missed
    sentence_count INTEGER DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(company, quarter_key)
);

CREATE INDEX IF NOT EXISTS idx_documents_company ON documents(company);

-- Scores: one row per document per backend
CREATE TABLE IF NOT EXISTS scores (
    score_id INTEGER PRIMARY KEY AUTOINCREMENT,
    doc_id INTEGER NOT NULL,
    backend TEXT NOT NULL,        -- vader, finbert
    score REAL NOT NULL,
    top_keywords TEXT,            -- JSON array of the document's top keywords
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (doc_id) REFERENCES documents(doc_id) ON DELETE CASCADE,
    UNIQUE(doc_id, backend)
);

CREATE INDEX IF NOT EXISTS idx_scores_doc ON scores(doc_id);

-- Signals: one row per company per quarter
CREATE TABLE IF NOT EXISTS signals (
    signal_id INTEGER PRIMARY KEY AUTOINCREMENT,
    company TEXT NOT NULL,
    quarter_key TEXT NOT NULL,
    finbert_score REAL,
    vader_score REAL,
    combined_score REAL,
    combined_delta REAL,
    decision TEXT NOT NULL,       -- LONG, SHORT, HOLD
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(company, quarter_key)
);

CREATE INDEX IF NOT EXISTS idx_signals_company ON signals(company);
`
