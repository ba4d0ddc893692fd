package run

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/transcript-signal/internal/common"
	"github.com/dtnitsch/transcript-signal/models"
	"github.com/dtnitsch/transcript-signal/pkg/analytics"
	"github.com/dtnitsch/transcript-signal/pkg/db"
	"github.com/dtnitsch/transcript-signal/pkg/prices"
	"github.com/dtnitsch/transcript-signal/pkg/returns"
	"github.com/dtnitsch/transcript-signal/pkg/sentiment"
	"github.com/dtnitsch/transcript-signal/pkg/signal"
)

// topKeywordCount is how many keywords per document go into the ledger.
const topKeywordCount = 25

// Summary is the run command's final JSON output.
type Summary struct {
	Company     string                         `json:"company"`
	Documents   []DocResult                    `json:"documents"`
	Signals     map[string]models.SignalRecord `json:"signals,omitempty"`
	TopKeywords []string                       `json:"top_keywords,omitempty"`
	AlphaRows   int                            `json:"alpha_rows"`
	Processed   int                            `json:"processed"`
	Skipped     int                            `json:"skipped"`
	SignalPath  string                         `json:"signal_path,omitempty"`
	AlphaPath   string                         `json:"alpha_path,omitempty"`
}

// Action runs the full pipeline for one company: clean every transcript in
// the raw directory, score each with both backends, derive signals, and
// backtest against prices. Per-document failures are logged and skipped;
// the run always produces whatever aggregate output survived.
func Action(c *cli.Context) error {
	logger := newLogger(c.Bool("quiet"))

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ledger, err := db.Open(cfg.Paths.Database)
	if err != nil {
		logger.Error("failed to open run ledger", "error", err)
		os.Exit(2)
	}
	defer ledger.Close()

	rawDir := filepath.Join(cfg.Paths.Raw, cfg.Company)
	files, err := ListTranscripts(rawDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no transcripts found in %s", rawDir)
	}
	logger.Info("found transcripts", "company", cfg.Company, "count", len(files))

	processor, err := NewProcessor(cfg, logger)
	if err != nil {
		return err
	}
	vader := sentiment.NewVader()
	finbert := sentiment.NewFinBERT(cfg.Scoring.FinBERTURL, cfg.Scoring.BatchSize)
	a := &analytics.Analytics{}

	summary := &Summary{Company: cfg.Company}
	vaderScores := models.ScoreMap{}
	finbertScores := models.ScoreMap{}
	earningsDates := map[string]time.Time{}
	var wordFreqs []map[string]int

	for i, path := range files {
		quarterKey := common.QuarterKey(i, len(files))

		result := processor.ProcessDocument(path, quarterKey)
		summary.Documents = append(summary.Documents, *result)
		if result.Err != nil {
			logger.Warn("skipping document", "path", path, "error_type", result.ErrType, "error", result.Err)
			summary.Skipped++
			continue
		}

		sents := make([]string, len(result.Records))
		for j, r := range result.Records {
			sents[j] = r.Sentence
		}

		vResult, err := vader.Score(sents)
		if err != nil {
			logger.Warn("vader scoring failed, skipping document", "quarter", quarterKey, "error", err)
			summary.Skipped++
			continue
		}
		fResult, err := finbert.Score(sents)
		if err != nil {
			logger.Warn("finbert scoring failed, skipping document", "quarter", quarterKey, "error", err)
			summary.Skipped++
			continue
		}

		for _, res := range []struct {
			name   string
			result sentiment.Result
		}{
			{vader.Name(), vResult},
			{finbert.Name(), fResult},
		} {
			csvPath := filepath.Join(cfg.Paths.Scores,
				fmt.Sprintf("%s_sentiment_output_%s.csv", res.name, quarterKey))
			if err := sentiment.WriteDetailsCSV(res.result, csvPath); err != nil {
				logger.Warn("failed to write score details", "backend", res.name, "error", err)
			}
		}

		vaderScores[quarterKey] = vResult.Average
		finbertScores[quarterKey] = fResult.Average
		if result.EarningsDate != "" {
			if t, err := time.Parse("2006-01-02", result.EarningsDate); err == nil {
				earningsDates[quarterKey] = t
			}
		}

		freq := a.WordFrequency(strings.Join(sents, " "))
		wordFreqs = append(wordFreqs, freq)
		keywords := a.TopKeywordsJSON(freq, topKeywordCount)
		docID, err := ledger.UpsertDocument(db.Document{
			Company:       cfg.Company,
			QuarterKey:    quarterKey,
			SourcePath:    path,
			CleanedPath:   result.CleanedPath,
			Language:      result.Language,
			EarningsDate:  result.EarningsDate,
			SentenceCount: result.SentenceCount,
		})
		if err != nil {
			logger.Warn("failed to record document in ledger", "error", err)
		} else {
			if err := ledger.UpsertScore(docID, vader.Name(), vResult.Average, keywords); err != nil {
				logger.Warn("failed to record vader score", "error", err)
			}
			if err := ledger.UpsertScore(docID, finbert.Name(), fResult.Average, keywords); err != nil {
				logger.Warn("failed to record finbert score", "error", err)
			}
		}

		logger.Info("scored transcript", "quarter", quarterKey,
			"vader", fmt.Sprintf("%.4f", vResult.Average),
			"finbert", fmt.Sprintf("%.4f", fResult.Average))
		summary.Processed++
	}

	if len(vaderScores) == 0 {
		return fmt.Errorf("no documents survived cleaning and scoring for %s", cfg.Company)
	}

	summary.TopKeywords = a.TopNFromFrequencies(analytics.Merge(wordFreqs), topKeywordCount)

	signals := signal.Generate(finbertScores, vaderScores, cfg, logger)
	signalPath := filepath.Join(cfg.Paths.Signals, cfg.Company+"_signals.json")
	if err := signal.Save(signals, signalPath); err != nil {
		return err
	}
	summary.Signals = signals
	summary.SignalPath = signalPath
	for quarter, record := range signals {
		if err := ledger.UpsertSignal(cfg.Company, quarter,
			record.FinBERTScore, record.VaderScore,
			record.CombinedScore, record.CombinedDelta, string(record.Signal)); err != nil {
			logger.Warn("failed to record signal in ledger", "quarter", quarter, "error", err)
		}
	}
	logger.Info("signals saved", "path", signalPath, "quarters", len(signals))

	alphaRows, alphaPath := computeAlpha(cfg, signals, earningsDates, logger)
	summary.AlphaRows = alphaRows
	summary.AlphaPath = alphaPath

	return printJSON(summary)
}

// computeAlpha fetches prices and writes the alpha CSV. Failures here are
// warnings: the cleaning and signal outputs already exist on disk.
func computeAlpha(cfg *models.Config, signals map[string]models.SignalRecord, earningsDates map[string]time.Time, logger *slog.Logger) (int, string) {
	if len(earningsDates) == 0 {
		logger.Warn("no earnings dates extracted; skipping alpha computation")
		return 0, ""
	}

	start, end := dateRange(earningsDates, cfg.Returns.WindowDays)
	client := prices.NewClient(cfg.Returns.PriceServiceURL, cfg.Returns.MaxRetries)
	series, err := client.Fetch(cfg.Ticker, start, end)
	if err != nil {
		logger.Warn("price data unavailable; skipping alpha computation", "ticker", cfg.Ticker, "error", err)
		return 0, ""
	}

	rows := returns.ComputeTable(signals, earningsDates, series, cfg.Returns.WindowDays, logger)
	if len(rows) == 0 {
		logger.Warn("no alpha rows computed")
		return 0, ""
	}

	alphaPath := filepath.Join(cfg.Paths.Returns, cfg.Company+"_alpha.csv")
	if err := returns.WriteCSV(rows, alphaPath); err != nil {
		logger.Warn("failed to write alpha table", "error", err)
		return 0, ""
	}
	logger.Info("alpha table saved", "path", alphaPath, "rows", len(rows))
	return len(rows), alphaPath
}

// dateRange pads the earnings-date span so entry and exit lookups near the
// edges still find trading days.
func dateRange(earningsDates map[string]time.Time, windowDays int) (time.Time, time.Time) {
	var earliest, latest time.Time
	for _, d := range earningsDates {
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
		if latest.IsZero() || d.After(latest) {
			latest = d
		}
	}
	return earliest.AddDate(0, 0, -7), latest.AddDate(0, 0, windowDays*2+14)
}

func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("company") {
		cfg.Company = c.String("company")
	}
	if c.IsSet("ticker") {
		cfg.Ticker = c.String("ticker")
	}
	if cfg.Company == "" {
		return nil, fmt.Errorf("no company given: set --company or the config file's company field")
	}
	if cfg.Ticker == "" {
		cfg.Ticker = cfg.Company
	}
	return cfg, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
