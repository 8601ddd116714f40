// Package config loads pfx settings from TOML files, the environment and flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/logger"
	"github.com/etnz/folio/risk"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the pfx configuration.
type Config struct {
	Risk    RiskConfig    `toml:"risk"`
	Limits  LimitsConfig  `toml:"limits"`
	Export  ExportConfig  `toml:"export"`
	Print   PrintConfig   `toml:"print"`
	Logging LoggingConfig `toml:"logging"`
}

// RiskConfig contains the risk calculator assumptions.
type RiskConfig struct {
	RiskFreeRate   float64 `toml:"risk_free_rate"`
	PeriodsPerYear float64 `toml:"periods_per_year"`
	Confidence     float64 `toml:"confidence"`
}

// LimitsConfig bounds the size of the snapshots processed.
type LimitsConfig struct {
	MaxTransactions int `toml:"max_transactions"`
	MaxHistory      int `toml:"max_history"`
}

// ExportConfig contains the artifact destinations.
type ExportConfig struct {
	OutputDir string   `toml:"output_dir"`
	S3        S3Config `toml:"s3"`
}

// S3Config contains the S3 sink settings. An empty bucket disables the sink.
type S3Config struct {
	Bucket string `toml:"bucket"`
	Prefix string `toml:"prefix"`
	Region string `toml:"region"`
}

// PrintConfig contains the headless browser settings of the PDF surface.
type PrintConfig struct {
	Timeout    string `toml:"timeout"`
	Headless   bool   `toml:"headless"`
	ChromePath string `toml:"chrome_path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

// LoadEnvFile loads PFX_* variables from a dotenv file into the environment.
// A missing file is not an error, variables already set are kept.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies PFX_* environment variable overrides to config.
func applyEnvOverrides(config *Config) error {
	var errs []error
	float := func(name string, dst *float64) {
		if v := os.Getenv(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid %s: %w", name, err))
				return
			}
			*dst = f
		}
	}
	integer := func(name string, dst *int) {
		if v := os.Getenv(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid %s: %w", name, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(name string, dst *bool) {
		if v := os.Getenv(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid %s: %w", name, err))
				return
			}
			*dst = b
		}
	}
	str := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	float("PFX_RISK_FREE_RATE", &config.Risk.RiskFreeRate)
	float("PFX_PERIODS_PER_YEAR", &config.Risk.PeriodsPerYear)
	float("PFX_CONFIDENCE", &config.Risk.Confidence)
	integer("PFX_MAX_TRANSACTIONS", &config.Limits.MaxTransactions)
	integer("PFX_MAX_HISTORY", &config.Limits.MaxHistory)
	str("PFX_OUTPUT_DIR", &config.Export.OutputDir)
	str("PFX_S3_BUCKET", &config.Export.S3.Bucket)
	str("PFX_S3_PREFIX", &config.Export.S3.Prefix)
	str("PFX_S3_REGION", &config.Export.S3.Region)
	str("PFX_PRINT_TIMEOUT", &config.Print.Timeout)
	boolean("PFX_PRINT_HEADLESS", &config.Print.Headless)
	str("PFX_CHROME_PATH", &config.Print.ChromePath)
	str("PFX_LOG_LEVEL", &config.Logging.Level)
	boolean("PFX_LOG_PRETTY", &config.Logging.Pretty)

	return errors.Join(errs...)
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, logLevel, outputDir string) {
	if logLevel != "" {
		config.Logging.Level = logLevel
	}
	if outputDir != "" {
		config.Export.OutputDir = outputDir
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Risk.PeriodsPerYear <= 0 {
		errs = append(errs, fmt.Errorf("risk.periods_per_year must be positive, got %v", c.Risk.PeriodsPerYear))
	}
	if c.Risk.Confidence <= 0 || c.Risk.Confidence >= 1 {
		errs = append(errs, fmt.Errorf("risk.confidence must be within (0, 1), got %v", c.Risk.Confidence))
	}
	if c.Limits.MaxTransactions <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_transactions must be positive, got %d", c.Limits.MaxTransactions))
	}
	if c.Limits.MaxHistory <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_history must be positive, got %d", c.Limits.MaxHistory))
	}
	if _, err := time.ParseDuration(c.Print.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("print.timeout: %w", err))
	}
	return errors.Join(errs...)
}

// Calculator returns the risk calculator configured by c.
func (c *Config) Calculator() risk.Calculator {
	return risk.Calculator{
		RiskFreeRate:   c.Risk.RiskFreeRate,
		PeriodsPerYear: c.Risk.PeriodsPerYear,
		Confidence:     c.Risk.Confidence,
	}
}

// InputLimits returns the snapshot bounds configured by c.
func (c *Config) InputLimits() folio.Limits {
	return folio.Limits{
		MaxTransactions: c.Limits.MaxTransactions,
		MaxHistory:      c.Limits.MaxHistory,
	}
}

// PrintTimeout returns the print timeout, or the default one when it cannot be parsed.
func (c *Config) PrintTimeout() time.Duration {
	d, err := time.ParseDuration(c.Print.Timeout)
	if err != nil {
		return defaultPrintTimeout
	}
	return d
}

// Logger returns the logger configuration.
func (c *Config) Logger() logger.Config {
	return logger.Config{Level: c.Logging.Level, Pretty: c.Logging.Pretty}
}
