// Package clean implements the standalone cleaning command: transcripts in,
// pipe-delimited sentence files out, no scoring.
package clean

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/transcript-signal/internal/common"
	"github.com/dtnitsch/transcript-signal/internal/run"
	"github.com/dtnitsch/transcript-signal/models"
)

// job is one transcript for a worker to clean.
type job struct {
	Path       string
	QuarterKey string
}

// Output is the clean command's final JSON.
type Output struct {
	Documents []run.DocResult `json:"documents"`
	Cleaned   int             `json:"cleaned"`
	Skipped   int             `json:"skipped"`
}

// Action cleans every transcript under the raw directory. Documents are
// independent, so they fan out across a small worker pool; each worker owns
// its own processor state.
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
	if c.IsSet("company") {
		cfg.Company = c.String("company")
	}
	if cfg.Company == "" {
		return fmt.Errorf("no company given: set --company or the config file's company field")
	}

	rawDir := c.String("dir")
	if rawDir == "" {
		rawDir = filepath.Join(cfg.Paths.Raw, cfg.Company)
	}
	files, err := run.ListTranscripts(rawDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no transcripts found in %s", rawDir)
	}

	workerCount := c.Int("workers")
	if workerCount <= 0 {
		workerCount = 4
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	jobs := make(chan job, len(files))
	results := make(chan *run.DocResult, len(files))

	var wg sync.WaitGroup
	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			processor, err := run.NewProcessor(cfg, logger.With("worker", id))
			if err != nil {
				logger.Error("worker failed to start", "worker", id, "error", err)
				return
			}
			for j := range jobs {
				results <- processor.ProcessDocument(j.Path, j.QuarterKey)
			}
		}(w)
	}

	for i, path := range files {
		jobs <- job{Path: path, QuarterKey: common.QuarterKey(i, len(files))}
	}
	close(jobs)
	wg.Wait()
	close(results)

	output := &Output{}
	for result := range results {
		output.Documents = append(output.Documents, *result)
		if result.Err != nil {
			logger.Warn("skipped document", "path", result.SourcePath,
				"error_type", result.ErrType, "error", result.Err)
			output.Skipped++
		} else {
			output.Cleaned++
		}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
