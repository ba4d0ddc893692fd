// Package alpha implements the backtest command over a previous run's
// signals and the earnings dates recorded in the ledger.
package alpha

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/transcript-signal/internal/run"
	"github.com/dtnitsch/transcript-signal/models"
	"github.com/dtnitsch/transcript-signal/pkg/db"
	"github.com/dtnitsch/transcript-signal/pkg/prices"
	"github.com/dtnitsch/transcript-signal/pkg/returns"
	"github.com/dtnitsch/transcript-signal/pkg/signal"
)

// Action loads the company's signals JSON, pulls earnings dates from the
// ledger, fetches prices, and writes the alpha CSV.
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
	if c.IsSet("ticker") {
		cfg.Ticker = c.String("ticker")
	}
	if cfg.Company == "" {
		return fmt.Errorf("no company given: set --company or the config file's company field")
	}
	if cfg.Ticker == "" {
		cfg.Ticker = cfg.Company
	}

	signalPath := c.String("signals")
	if signalPath == "" {
		signalPath = filepath.Join(cfg.Paths.Signals, cfg.Company+"_signals.json")
	}
	signals, err := signal.LoadFile(signalPath)
	if err != nil {
		return err
	}

	ledger, err := db.Open(cfg.Paths.Database)
	if err != nil {
		return err
	}
	defer ledger.Close()

	rawDates, err := ledger.GetEarningsDates(cfg.Company)
	if err != nil {
		return err
	}
	earningsDates := run.ParseEarningsDates(rawDates, logger)
	if len(earningsDates) == 0 {
		return fmt.Errorf("no earnings dates recorded for %s; nothing to backtest", cfg.Company)
	}

	minDate, maxDate := earliestLatest(earningsDates)
	client := prices.NewClient(cfg.Returns.PriceServiceURL, cfg.Returns.MaxRetries)
	series, err := client.Fetch(cfg.Ticker,
		minDate.AddDate(0, 0, -7),
		maxDate.AddDate(0, 0, cfg.Returns.WindowDays*2+14))
	if err != nil {
		return fmt.Errorf("price data unavailable for %s: %w", cfg.Ticker, err)
	}

	rows := returns.ComputeTable(signals, earningsDates, series, cfg.Returns.WindowDays, logger)
	if len(rows) == 0 {
		return fmt.Errorf("no alpha rows computable for %s", cfg.Company)
	}

	alphaPath := filepath.Join(cfg.Paths.Returns, cfg.Company+"_alpha.csv")
	if err := returns.WriteCSV(rows, alphaPath); err != nil {
		return err
	}
	logger.Info("alpha table saved", "path", alphaPath, "rows", len(rows))

	fmt.Println(alphaPath)
	return nil
}

func earliestLatest(dates map[string]time.Time) (time.Time, time.Time) {
	var earliest, latest time.Time
	for _, d := range dates {
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
		if latest.IsZero() || d.After(latest) {
			latest = d
		}
	}
	return earliest, latest
}
