// Package models defines the shared data structures and configuration for
// the transcript pipeline.
package models

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ScorerKind selects which sentiment backend(s) a run uses.
type ScorerKind string

const (
	ScorerVader    ScorerKind = "vader"
	ScorerFinBERT  ScorerKind = "finbert"
	ScorerEnsemble ScorerKind = "ensemble"
)

// Paths groups the directories the pipeline reads from and writes to.
type Paths struct {
	Raw       string `yaml:"raw"`
	Processed string `yaml:"processed"`
	Scores    string `yaml:"scores"`
	Signals   string `yaml:"signals"`
	Returns   string `yaml:"returns"`
	Database  string `yaml:"database"`
}

// CleaningConfig holds the thresholds and markers for the transcript
// normalizer and segmenter.
type CleaningConfig struct {
	// StartMarkers are matched case-sensitively as substrings; the first
	// line containing one marks the start of the actual dialogue.
	StartMarkers []string `yaml:"start_markers"`
	// BoilerplateMaxLen caps the length of lines eligible for the
	// repeated-boilerplate drop.
	BoilerplateMaxLen int `yaml:"boilerplate_max_len"`
	// MaxSpeakerLen caps the length of a candidate speaker name.
	MaxSpeakerLen int `yaml:"max_speaker_len"`
}

// LanguageConfig controls the pre-scoring language gate.
type LanguageConfig struct {
	MinConfidence float64 `yaml:"min_confidence"`
}

// ScoringConfig selects backends and their convex combination weights.
type ScoringConfig struct {
	Model         ScorerKind `yaml:"model"`
	VaderWeight   float64    `yaml:"vader_weight"`
	FinBERTWeight float64    `yaml:"finbert_weight"`
	FinBERTURL    string     `yaml:"finbert_url"`
	BatchSize     int        `yaml:"batch_size"`
}

// SignalConfig holds the LONG/SHORT/HOLD classification thresholds.
type SignalConfig struct {
	LongScore  float64 `yaml:"long_score"`
	LongDelta  float64 `yaml:"long_delta"`
	ShortScore float64 `yaml:"short_score"`
	ShortDelta float64 `yaml:"short_delta"`
}

// ReturnsConfig controls the backtest window and the price service.
type ReturnsConfig struct {
	WindowDays      int    `yaml:"window_days"`
	PriceServiceURL string `yaml:"price_service_url"`
	MaxRetries      int    `yaml:"max_retries"`
}

// Config is the full runtime configuration, loaded once and passed by
// reference into each pipeline stage.
type Config struct {
	Company  string         `yaml:"company"`
	Ticker   string         `yaml:"ticker"`
	Paths    Paths          `yaml:"paths"`
	Cleaning CleaningConfig `yaml:"cleaning"`
	Language LanguageConfig `yaml:"language"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Signal   SignalConfig   `yaml:"signal"`
	Returns  ReturnsConfig  `yaml:"returns"`
}

// DefaultConfig returns a Config with working defaults for every field
// except Company/Ticker, which have no sensible default.
func DefaultConfig() *Config {
	return &Config{
		Paths: Paths{
			Raw:       "data/raw",
			Processed: "data/processed",
			Scores:    "outputs/scores",
			Signals:   "outputs/signals",
			Returns:   "outputs/returns",
			Database:  "outputs/pipeline.db",
		},
		Cleaning: CleaningConfig{
			StartMarkers: []string{
				"Moderator", "Operator", "Host",
				"Conference Call Facilitator", "PRESENTATION", "Final Transcript",
			},
			BoilerplateMaxLen: 100,
			MaxSpeakerLen:     50,
		},
		Language: LanguageConfig{MinConfidence: 0.75},
		Scoring: ScoringConfig{
			Model:         ScorerEnsemble,
			VaderWeight:   0.4,
			FinBERTWeight: 0.6,
			FinBERTURL:    "http://localhost:8001",
			BatchSize:     32,
		},
		Signal: SignalConfig{
			LongScore:  0.05,
			LongDelta:  -0.05,
			ShortScore: -0.05,
			ShortDelta: 0.01,
		},
		Returns: ReturnsConfig{
			WindowDays:      7,
			PriceServiceURL: "http://localhost:8002",
			MaxRetries:      3,
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error; the defaults are returned unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the constraints that the arithmetic downstream relies on.
func (c *Config) Validate() error {
	switch c.Scoring.Model {
	case ScorerVader, ScorerFinBERT, ScorerEnsemble:
	default:
		return fmt.Errorf("unknown scoring model %q", c.Scoring.Model)
	}

	sum := c.Scoring.VaderWeight + c.Scoring.FinBERTWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1, got %.4f", sum)
	}
	if c.Scoring.VaderWeight < 0 || c.Scoring.FinBERTWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative")
	}
	if c.Cleaning.BoilerplateMaxLen <= 0 {
		return fmt.Errorf("boilerplate_max_len must be positive")
	}
	if c.Returns.WindowDays <= 0 {
		return fmt.Errorf("window_days must be positive")
	}
	return nil
}
