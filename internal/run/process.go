package run

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dtnitsch/transcript-signal/internal/common"
	"github.com/dtnitsch/transcript-signal/models"
	"github.com/dtnitsch/transcript-signal/pkg/cleaner"
	"github.com/dtnitsch/transcript-signal/pkg/dates"
	"github.com/dtnitsch/transcript-signal/pkg/extract"
	"github.com/dtnitsch/transcript-signal/pkg/langgate"
	"github.com/dtnitsch/transcript-signal/pkg/storage"
)

// DocResult is the outcome of processing one transcript. Expected
// per-document failures land in Err/ErrType; they never abort the rest of
// the run.
type DocResult struct {
	QuarterKey    string                  `json:"quarter_key"`
	DocID         string                  `json:"doc_id"`
	SourcePath    string                  `json:"source_path"`
	CleanedPath   string                  `json:"cleaned_path,omitempty"`
	Language      string                  `json:"language,omitempty"`
	SentenceCount int                     `json:"sentence_count"`
	EarningsDate  string                  `json:"earnings_date,omitempty"`
	ErrType       string                  `json:"error_type,omitempty"`
	Error         string                  `json:"error,omitempty"`
	Records       []models.SentenceRecord `json:"-"`
	Err           error                   `json:"-"`
}

// Processor owns the per-document cleaning flow: extract, clean,
// language-gate, persist. One Processor must not be shared across
// goroutines; parallel callers each build their own.
type Processor struct {
	cfg      *models.Config
	pipeline *cleaner.Pipeline
	gate     *langgate.Gate
	store    *storage.Storage
	logger   *slog.Logger
}

// NewProcessor builds a Processor from configuration.
func NewProcessor(cfg *models.Config, logger *slog.Logger) (*Processor, error) {
	pipeline, err := cleaner.NewPipeline(&cfg.Cleaning)
	if err != nil {
		return nil, err
	}
	return &Processor{
		cfg:      cfg,
		pipeline: pipeline,
		gate:     langgate.New(cfg.Language.MinConfidence),
		store:    &storage.Storage{},
		logger:   logger,
	}, nil
}

// ProcessDocument runs one transcript end to end through extraction and
// cleaning, writing the cleaned pipe-delimited file under the processed
// directory. The result always comes back; inspect Err for the outcome.
func (p *Processor) ProcessDocument(path, quarterKey string) *DocResult {
	result := &DocResult{
		QuarterKey: quarterKey,
		DocID:      common.SanitizeDocID(path),
		SourcePath: path,
	}

	text, err := extract.Load(path)
	if err != nil {
		return result.fail(err, classifyErr(err))
	}
	if strings.TrimSpace(text) == "" {
		return result.fail(cleaner.ErrEmptyTranscript, "empty_transcript")
	}

	if date, ok := dates.Extract(text); ok {
		result.EarningsDate = date.Format("2006-01-02")
	} else {
		p.logger.Warn("no earnings date found in transcript", "path", path)
	}

	records, err := p.pipeline.Clean(text, result.DocID)
	if err != nil {
		return result.fail(err, classifyErr(err))
	}
	result.Records = records
	result.SentenceCount = len(records)

	// The gate sees the cleaned dialogue, not the raw document: cover
	// pages and vendor boilerplate would skew the confidence.
	cleanedText := joinSentenceText(records)
	if err := p.gate.Check(cleanedText); err != nil {
		return result.fail(err, "non_english")
	}
	result.Language = p.gate.Detect(cleanedText)

	cleanedPath := filepath.Join(p.cfg.Paths.Processed,
		fmt.Sprintf("%s_%s.txt", p.cfg.Company, quarterKey))
	if err := p.store.SaveFile(cleanedPath, []byte(cleaner.Serialize(records)+"\n")); err != nil {
		return result.fail(err, "save_error")
	}
	result.CleanedPath = cleanedPath

	p.logger.Info("cleaned transcript",
		"path", path, "quarter", quarterKey, "sentences", len(records))
	return result
}

func joinSentenceText(records []models.SentenceRecord) string {
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = r.Sentence
	}
	return strings.Join(parts, " ")
}

func (r *DocResult) fail(err error, errType string) *DocResult {
	r.Err = err
	r.Error = err.Error()
	r.ErrType = errType
	return r
}

func classifyErr(err error) string {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, extract.ErrUndecodable):
		return "undecodable"
	case errors.Is(err, cleaner.ErrEmptyTranscript):
		return "empty_transcript"
	case errors.Is(err, cleaner.ErrEmptyCleanOutput):
		return "empty_clean_output"
	default:
		return "extract_error"
	}
}

// transcriptExts are the source formats the loader accepts.
var transcriptExts = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".html": true,
	".htm":  true,
}

// ListTranscripts returns the transcript files under dir sorted by name.
// Filenames are expected to sort chronologically (the usual vendor naming
// embeds quarter and year); quarter keys are assigned by position.
func ListTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript dir %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if transcriptExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ParseEarningsDates converts the ledger's YYYY-MM-DD strings back to
// times, dropping unparseable entries with a warning.
func ParseEarningsDates(raw map[string]string, logger *slog.Logger) map[string]time.Time {
	parsed := make(map[string]time.Time, len(raw))
	for quarter, s := range raw {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			logger.Warn("bad earnings date in ledger", "quarter", quarter, "date", s)
			continue
		}
		parsed[quarter] = t
	}
	return parsed
}
