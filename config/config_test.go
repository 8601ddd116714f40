package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/folio/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, risk.Default(), cfg.Calculator())
	assert.Equal(t, 100_000, cfg.Limits.MaxTransactions)
	assert.Equal(t, 100_000, cfg.Limits.MaxHistory)
	assert.Equal(t, ".", cfg.Export.OutputDir)
	assert.Equal(t, 30*time.Second, cfg.PrintTimeout())
	assert.True(t, cfg.Print.Headless)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFiles_NoFiles(t *testing.T) {
	cfg, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, 0.95, cfg.Risk.Confidence)
}

func TestLoadFromFiles_ValidTOML(t *testing.T) {
	path := writeFile(t, "pfx.toml", `
[risk]
risk_free_rate = 0.03
periods_per_year = 252

[limits]
max_transactions = 500

[export]
output_dir = "/tmp/out"

[export.s3]
bucket = "reports"
prefix = "daily/"
region = "eu-west-1"

[print]
timeout = "5s"
chrome_path = "/usr/bin/chromium"

[logging]
level = "debug"
pretty = true
`)
	cfg, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 0.03, cfg.Risk.RiskFreeRate)
	assert.Equal(t, 252.0, cfg.Risk.PeriodsPerYear)
	assert.Equal(t, 0.95, cfg.Risk.Confidence, "unset keys keep their default")
	assert.Equal(t, 500, cfg.InputLimits().MaxTransactions)
	assert.Equal(t, 100_000, cfg.InputLimits().MaxHistory)
	assert.Equal(t, "/tmp/out", cfg.Export.OutputDir)
	assert.Equal(t, S3Config{Bucket: "reports", Prefix: "daily/", Region: "eu-west-1"}, cfg.Export.S3)
	assert.Equal(t, 5*time.Second, cfg.PrintTimeout())
	assert.Equal(t, "/usr/bin/chromium", cfg.Print.ChromePath)
	assert.True(t, cfg.Print.Headless)
	assert.Equal(t, "debug", cfg.Logger().Level)
	assert.True(t, cfg.Logger().Pretty)
}

func TestLoadFromFiles_LaterFilesOverride(t *testing.T) {
	first := writeFile(t, "a.toml", "[logging]\nlevel = \"debug\"\n[export]\noutput_dir = \"a\"\n")
	second := writeFile(t, "b.toml", "[logging]\nlevel = \"error\"\n")

	cfg, err := LoadFromFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "a", cfg.Export.OutputDir)
}

func TestLoadFromFiles_Errors(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadFromFiles(writeFile(t, "bad.toml", "[risk\n"))
	assert.Error(t, err)

	_, err = LoadFromFiles(writeFile(t, "invalid.toml", "[risk]\nconfidence = 1.5\n[print]\ntimeout = \"soon\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "risk.confidence")
	assert.Contains(t, err.Error(), "print.timeout")
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "pfx.toml", "[logging]\nlevel = \"debug\"\n")
	t.Setenv("PFX_LOG_LEVEL", "warn")
	t.Setenv("PFX_RISK_FREE_RATE", "0.01")
	t.Setenv("PFX_MAX_HISTORY", "10")
	t.Setenv("PFX_S3_BUCKET", "env-bucket")
	t.Setenv("PFX_PRINT_HEADLESS", "false")

	cfg, err := LoadFromFiles(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level, "env overrides files")
	assert.Equal(t, 0.01, cfg.Risk.RiskFreeRate)
	assert.Equal(t, 10, cfg.Limits.MaxHistory)
	assert.Equal(t, "env-bucket", cfg.Export.S3.Bucket)
	assert.False(t, cfg.Print.Headless)
}

func TestEnvOverrides_Invalid(t *testing.T) {
	t.Setenv("PFX_MAX_TRANSACTIONS", "many")
	_, err := LoadFromFiles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PFX_MAX_TRANSACTIONS")
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")), "a missing file is ignored")

	t.Setenv("PFX_OUTPUT_DIR", "")
	os.Unsetenv("PFX_OUTPUT_DIR")
	path := writeFile(t, ".env", "PFX_OUTPUT_DIR=/from/dotenv\n")
	require.NoError(t, LoadEnvFile(path))

	cfg, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.Export.OutputDir)
}

func TestApplyFlagOverrides(t *testing.T) {
	t.Setenv("PFX_LOG_LEVEL", "warn")
	cfg, err := LoadFromFiles()
	require.NoError(t, err)

	ApplyFlagOverrides(cfg, "error", "")
	assert.Equal(t, "error", cfg.Logging.Level, "flags override env")
	assert.Equal(t, ".", cfg.Export.OutputDir, "empty flags keep the current value")
}
