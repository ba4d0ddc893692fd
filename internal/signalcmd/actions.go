// Package signalcmd implements the signals command: derive per-quarter
// trade signals from scores already recorded in the run ledger.
package signalcmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/transcript-signal/models"
	"github.com/dtnitsch/transcript-signal/pkg/db"
	"github.com/dtnitsch/transcript-signal/pkg/signal"
)

// Action reads both backends' scores for a company from the ledger,
// computes deltas and signals, and writes the signals JSON.
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

	ledger, err := db.Open(cfg.Paths.Database)
	if err != nil {
		return err
	}
	defer ledger.Close()

	vaderScores, err := ledger.GetScores(cfg.Company, "vader")
	if err != nil {
		return err
	}
	finbertScores, err := ledger.GetScores(cfg.Company, "finbert")
	if err != nil {
		return err
	}
	if len(vaderScores) == 0 || len(finbertScores) == 0 {
		return fmt.Errorf("no recorded scores for %s; run the pipeline first", cfg.Company)
	}
	if len(vaderScores) < 2 {
		logger.Warn("fewer than two quarters recorded; deltas will be zero",
			"company", cfg.Company, "quarters", len(vaderScores))
	}

	signals := signal.Generate(finbertScores, vaderScores, cfg, logger)
	signalPath := filepath.Join(cfg.Paths.Signals, cfg.Company+"_signals.json")
	if err := signal.Save(signals, signalPath); err != nil {
		return err
	}
	for quarter, record := range signals {
		if err := ledger.UpsertSignal(cfg.Company, quarter,
			record.FinBERTScore, record.VaderScore,
			record.CombinedScore, record.CombinedDelta, string(record.Signal)); err != nil {
			logger.Warn("failed to record signal in ledger", "quarter", quarter, "error", err)
		}
	}
	logger.Info("signals saved", "path", signalPath, "quarters", len(signals))

	data, err := json.MarshalIndent(signals, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
