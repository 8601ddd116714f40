package cmd

import (
	"errors"
	"fmt"

	"github.com/etnz/folio/config"
	"github.com/etnz/folio/export"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// newDriver returns the export driver configured by cfg.
func newDriver(cfg *config.Config, log zerolog.Logger) *export.Driver {
	d := export.NewDriver(log)
	d.Calculator = cfg.Calculator()
	d.Limits = cfg.InputLimits()
	return d
}

// exitStatus prints the outcome of an export and returns the matching exit status.
func exitStatus(r *export.Result) subcommands.ExitStatus {
	if !r.Failed() {
		if r.Artifact != "" {
			fmt.Fprintf(stderr, "Exported %s to %s (%s)\n", r.Kind, r.Artifact, r.ContentType)
		}
		return subcommands.ExitSuccess
	}
	var f *export.Failure
	if !errors.As(r.Err, &f) {
		fmt.Fprintf(stderr, "Error: export %s failed: %v\n", r.ID, r.Err)
		return subcommands.ExitFailure
	}
	switch f.Class {
	case export.Blocked:
		fmt.Fprintf(stderr, "Error: export blocked by the environment: %v\n", f.Err)
	default:
		fmt.Fprintf(stderr, "Error: internal error: %v\n", f.Err)
	}
	fmt.Fprintf(stderr, "Hint: %s (export id %s)\n", f.Hint(), r.ID)
	return subcommands.ExitFailure
}
