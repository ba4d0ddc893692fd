// Package score implements the standalone scoring command over an
// already-cleaned transcript file.
package score

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/transcript-signal/models"
	"github.com/dtnitsch/transcript-signal/pkg/sentiment"
)

// Output is the score command's final JSON.
type Output struct {
	File      string  `json:"file"`
	Model     string  `json:"model"`
	Sentences int     `json:"sentences"`
	Score     float64 `json:"score"`
}

// Action scores one cleaned transcript with the configured backend, or
// with the configured ensemble of both.
func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	model := cfg.Scoring.Model
	if c.IsSet("model") {
		model = models.ScorerKind(c.String("model"))
	}

	path := c.String("file")
	if path == "" {
		return fmt.Errorf("no cleaned transcript given: set --file")
	}
	sents, err := readSentences(path)
	if err != nil {
		return err
	}
	logger.Info("loaded sentences", "file", path, "count", len(sents))

	registry := sentiment.NewRegistry(
		sentiment.NewVader(),
		sentiment.NewFinBERT(cfg.Scoring.FinBERTURL, cfg.Scoring.BatchSize),
	)

	var score float64
	switch model {
	case models.ScorerVader, models.ScorerFinBERT:
		scorer, err := registry.Get(string(model))
		if err != nil {
			return err
		}
		result, err := scorer.Score(sents)
		if err != nil {
			return fmt.Errorf("%s scoring failed: %w", model, err)
		}
		score = result.Average
		if err := writeDetails(c, result, scorer.Name(), path, logger); err != nil {
			return err
		}
	case models.ScorerEnsemble:
		var averages [2]float64
		for i, name := range []string{"vader", "finbert"} {
			scorer, err := registry.Get(name)
			if err != nil {
				return err
			}
			result, err := scorer.Score(sents)
			if err != nil {
				return fmt.Errorf("%s scoring failed: %w", name, err)
			}
			averages[i] = result.Average
			if err := writeDetails(c, result, name, path, logger); err != nil {
				return err
			}
		}
		score = sentiment.Combine(averages[0], averages[1], cfg.Scoring.VaderWeight, cfg.Scoring.FinBERTWeight)
	default:
		return fmt.Errorf("unknown scoring model %q", model)
	}

	data, err := json.MarshalIndent(&Output{
		File:      path,
		Model:     string(model),
		Sentences: len(sents),
		Score:     score,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func writeDetails(c *cli.Context, result sentiment.Result, backend, sourcePath string, logger *slog.Logger) error {
	outDir := c.String("out-dir")
	if outDir == "" {
		return nil
	}
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	csvPath := filepath.Join(outDir, fmt.Sprintf("%s_sentiment_output_%s.csv", backend, base))
	if err := sentiment.WriteDetailsCSV(result, csvPath); err != nil {
		return err
	}
	logger.Info("score details saved", "backend", backend, "path", csvPath)
	return nil
}

// readSentences parses a cleaned transcript back into bare sentences,
// dropping the index and attribution prefixes.
func readSentences(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cleaned transcript: %w", err)
	}
	defer f.Close()

	var sents []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		_, sentence, err := models.ParseRecord(line)
		if err != nil {
			// Tolerate stray lines: score whatever text is there.
			sentence = line
		}
		if sentence != "" {
			sents = append(sents, sentence)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cleaned transcript: %w", err)
	}
	return sents, nil
}
