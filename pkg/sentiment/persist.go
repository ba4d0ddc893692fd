package sentiment

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteDetailsCSV persists a backend's per-sentence rows for manual
// inspection, creating parent directories as needed.
func WriteDetailsCSV(result Result, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create scores dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scores file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"index", "sentence", "label", "score"}); err != nil {
		return fmt.Errorf("failed to write scores header: %w", err)
	}
	for _, d := range result.Details {
		row := []string{
			strconv.Itoa(d.Index),
			d.Sentence,
			d.Label,
			strconv.FormatFloat(d.Score, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write scores row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
