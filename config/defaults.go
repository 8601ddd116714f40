package config

import "time"

const defaultPrintTimeout = 30 * time.Second

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Risk: RiskConfig{
			RiskFreeRate:   0.05,
			PeriodsPerYear: 365,
			Confidence:     0.95,
		},
		Limits: LimitsConfig{
			MaxTransactions: 100_000,
			MaxHistory:      100_000,
		},
		Export: ExportConfig{
			OutputDir: ".",
		},
		Print: PrintConfig{
			Timeout:  defaultPrintTimeout.String(),
			Headless: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
