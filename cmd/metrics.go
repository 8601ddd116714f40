package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type metricsCmd struct {
	input  string
	asJSON bool
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "compute the risk metrics of a portfolio" }
func (*metricsCmd) Usage() string {
	return `pfx metrics [-i <portfolio.json>] [-json]

  Computes the Sharpe ratio, Sortino ratio, max drawdown and value at risk of the
  portfolio performance history. See 'pfx topic metrics'.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Portfolio snapshot file, stdin when empty.")
	f.BoolVar(&c.asJSON, "json", false, "Print the metrics as a json object.")
}

func (c *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, status := setup()
	if status != subcommands.ExitSuccess {
		return status
	}
	p, err := DecodeInput(c.input)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	q, truncated := p.Bounded(cfg.InputLimits())
	if truncated {
		log.Warn().Int("history", len(p.PerformanceHistory)).Msg("performance history truncated to the most recent points")
	}
	m := cfg.Calculator().Compute(q.PerformanceHistory)

	if c.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Risk metrics for %s", q.Address))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Sharpe Ratio", fmt.Sprintf("%.2f", m.SharpeRatio)},
			{"Sortino Ratio", fmt.Sprintf("%.2f", m.SortinoRatio)},
			{"Max Drawdown", fmt.Sprintf("%.2f%%", m.MaxDrawdown)},
			{"Value at Risk", fmt.Sprintf("%.2f%%", m.ValueAtRisk)},
		},
	})
	printMarkdown(doc.String())
	return subcommands.ExitSuccess
}
