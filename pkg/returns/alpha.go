// Package returns backtests signals against realized returns: strategy
// return after each earnings date versus a hold-from-earnings benchmark.
package returns

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dtnitsch/transcript-signal/models"
	"github.com/dtnitsch/transcript-signal/pkg/prices"
	"github.com/dtnitsch/transcript-signal/pkg/signal"
)

// ComputeTable builds one alpha row per quarter that has both a signal and
// an earnings date. Quarters with missing data are skipped individually;
// the remaining rows are still returned.
func ComputeTable(
	signals map[string]models.SignalRecord,
	earningsDates map[string]time.Time,
	series *prices.Series,
	windowDays int,
	logger *slog.Logger,
) []models.AlphaRow {
	quarters := make([]string, 0, len(earningsDates))
	for q := range earningsDates {
		quarters = append(quarters, q)
	}
	quarters = signal.SortQuarterKeys(quarters)

	rows := make([]models.AlphaRow, 0, len(quarters))
	for _, quarter := range quarters {
		record, ok := signals[quarter]
		if !ok {
			logger.Warn("no signal for quarter, skipping alpha", "quarter", quarter)
			continue
		}
		date := earningsDates[quarter]

		strategy, ok := series.ReturnAfter(date, windowDays)
		if !ok {
			logger.Warn("strategy return unavailable", "quarter", quarter, "date", date.Format("2006-01-02"))
			continue
		}
		benchmark, ok := series.BenchmarkReturn(date, windowDays)
		if !ok {
			logger.Warn("benchmark return unavailable", "quarter", quarter, "date", date.Format("2006-01-02"))
			continue
		}

		rows = append(rows, models.AlphaRow{
			Quarter:         quarter,
			Date:            date.Format("2006-01-02"),
			Signal:          record.Signal,
			StrategyReturn:  round4(strategy),
			BenchmarkReturn: round4(benchmark),
			Alpha:           round4(strategy - benchmark),
		})
	}
	return rows
}

// WriteCSV persists the alpha rows, creating parent directories as needed.
func WriteCSV(rows []models.AlphaRow, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create returns dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create alpha file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Quarter", "Date", "Signal", "Strategy_Return", "Benchmark_Return", "Alpha"}); err != nil {
		return fmt.Errorf("failed to write alpha header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Quarter,
			row.Date,
			string(row.Signal),
			formatFloat(row.StrategyReturn),
			formatFloat(row.BenchmarkReturn),
			formatFloat(row.Alpha),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write alpha row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
