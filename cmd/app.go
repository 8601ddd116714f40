// Package cmd implements the pfx command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/config"
	"github.com/etnz/folio/logger"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&metricsCmd{}, "portfolio")
	c.Register(&validateCmd{}, "portfolio")

	c.Register(&csvCmd{}, "export")
	c.Register(&reportCmd{}, "export")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the TOML configuration file")
var selectPath = flag.String("select", "", "JSONPath of the portfolio object inside the input document, like $.data.portfolio")
var logLevel = flag.String("log-level", "", "Log level: debug, info, warn, error. Overrides the configuration")

// command output, replaced in tests
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// envFile is loaded, when present, before reading the configuration.
const envFile = ".env"

// LoadConfig returns the configuration selected by the global flags.
func LoadConfig() (*config.Config, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.LoadFromFiles(*configFile)
	if err != nil {
		return nil, err
	}
	config.ApplyFlagOverrides(cfg, *logLevel, "")
	return cfg, nil
}

// setup loads the configuration and builds the logger, reporting errors on stderr.
func setup() (*config.Config, zerolog.Logger, subcommands.ExitStatus) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return nil, zerolog.Nop(), subcommands.ExitUsageError
	}
	return cfg, logger.New(cfg.Logger()), subcommands.ExitSuccess
}

// DecodeInput reads the portfolio snapshot from file, or from stdin when file is "" or "-".
func DecodeInput(file string) (*folio.Portfolio, error) {
	var r io.Reader = os.Stdin
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	p, err := folio.DecodePortfolioAt(r, *selectPath)
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio %q: %w", file, err)
	}
	return p, nil
}
