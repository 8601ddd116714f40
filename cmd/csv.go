package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio/config"
	"github.com/etnz/folio/export"
	"github.com/etnz/folio/tabular"
	"github.com/google/subcommands"
)

type csvCmd struct {
	input  string
	kind   string
	output string
	toS3   bool
}

func (*csvCmd) Name() string     { return "csv" }
func (*csvCmd) Synopsis() string { return "export a portfolio as comma separated values" }
func (*csvCmd) Usage() string {
	return `pfx csv [-i <portfolio.json>] [-t portfolio|transactions|holdings] [-o <dir> | -s3]

  Writes portfolio_report.csv, transactions.csv or holdings.csv into the output
  directory, or uploads it to the configured S3 bucket. See 'pfx topic csv'.
`
}

func (c *csvCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Portfolio snapshot file, stdin when empty.")
	f.StringVar(&c.kind, "t", "portfolio", "Export type: portfolio, transactions or holdings.")
	f.StringVar(&c.output, "o", "", "Output directory. Overrides the configuration.")
	f.BoolVar(&c.toS3, "s3", false, "Upload to the S3 bucket of the configuration instead of writing a file.")
}

func (c *csvCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := tabular.ParseKind(c.kind)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, log, status := setup()
	if status != subcommands.ExitSuccess {
		return status
	}
	p, err := DecodeInput(c.input)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	config.ApplyFlagOverrides(cfg, "", c.output)
	var sink export.Sink = export.DirSink{Dir: cfg.Export.OutputDir}
	if c.toS3 {
		s3cfg := cfg.Export.S3
		if s3cfg.Bucket == "" {
			fmt.Fprintln(stderr, "Error: -s3 requires [export.s3] bucket or PFX_S3_BUCKET")
			return subcommands.ExitUsageError
		}
		s3sink, err := export.NewS3Sink(ctx, s3cfg.Bucket, s3cfg.Prefix, s3cfg.Region)
		if err != nil {
			fmt.Fprintf(stderr, "Error: export blocked by the environment: %v\n", err)
			return subcommands.ExitFailure
		}
		sink = s3sink
	}

	return exitStatus(newDriver(cfg, log).Tabular(ctx, p, kind, sink))
}
