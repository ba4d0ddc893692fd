package signal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dtnitsch/transcript-signal/models"
)

// Save writes the per-quarter signal records as an indented JSON object
// keyed by quarter label, creating parent directories as needed.
func Save(signals map[string]models.SignalRecord, path string) error {
	data, err := json.MarshalIndent(signals, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal signals: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create signals dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write signals file: %w", err)
	}
	return nil
}

// LoadFile reads a signals JSON file back into memory, for the alpha
// command running against a previous run's output.
func LoadFile(path string) (map[string]models.SignalRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signals file: %w", err)
	}
	var signals map[string]models.SignalRecord
	if err := json.Unmarshal(data, &signals); err != nil {
		return nil, fmt.Errorf("failed to parse signals file %s: %w", path, err)
	}
	return signals, nil
}
