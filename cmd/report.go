package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/folio/export"
	"github.com/google/subcommands"
)

type reportCmd struct {
	input string
	pdf   string
	html  string
	style string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the narrative report of a portfolio" }
func (*reportCmd) Usage() string {
	return `pfx report [-i <portfolio.json>] [-pdf <file.pdf> | -html <file.html>]

  Renders the narrative report: summary, risk metrics, holdings, recent
  transactions and insights. Printed to the terminal by default, to a PDF
  through a headless Chrome with -pdf. See 'pfx topic report'.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Portfolio snapshot file, stdin when empty.")
	f.StringVar(&c.pdf, "pdf", "", "Print the report to this PDF file.")
	f.StringVar(&c.html, "html", "", "Write the report to this HTML file.")
	f.StringVar(&c.style, "style", "", "Terminal style (dark, light, notty, ascii), auto detected when empty.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.pdf != "" && c.html != "" {
		fmt.Fprintln(stderr, "Error: -pdf and -html are exclusive")
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

	var printer export.Printer = export.TerminalPrinter{W: stdout, Style: c.style, Width: 120}
	target := c.pdf + c.html
	if target == "" {
		return exitStatus(newDriver(cfg, log).Report(ctx, p, printer))
	}

	// the report is printed next to target and renamed once complete
	out, err := os.CreateTemp(filepath.Dir(target), ".pfx-report-*")
	if err != nil {
		fmt.Fprintf(stderr, "Error: export blocked by the environment: %v\n", err)
		return subcommands.ExitFailure
	}
	defer os.Remove(out.Name())
	defer out.Close()

	if c.pdf != "" {
		printer = export.ChromePrinter{
			W:        out,
			ExecPath: cfg.Print.ChromePath,
			Headless: cfg.Print.Headless,
			Timeout:  cfg.PrintTimeout(),
		}
	} else {
		printer = export.HTMLPrinter{W: out}
	}

	r := newDriver(cfg, log).Report(ctx, p, printer)
	if r.Failed() {
		return exitStatus(r)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(stderr, "Error: export blocked by the environment: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.Chmod(out.Name(), 0o644); err != nil {
		fmt.Fprintf(stderr, "Error: export blocked by the environment: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.Rename(out.Name(), target); err != nil {
		fmt.Fprintf(stderr, "Error: export blocked by the environment: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stderr, "Report written to %s\n", target)
	return exitStatus(r)
}
