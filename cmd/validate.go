package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type validateCmd struct {
	input string
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check a portfolio snapshot" }
func (*validateCmd) Usage() string {
	return `pfx validate [-i <portfolio.json>]

  Reports every missing required field and every invalid value of the snapshot.
  See 'pfx topic snapshot'.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Portfolio snapshot file, stdin when empty.")
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, _, status := setup(); status != subcommands.ExitSuccess {
		return status
	}
	p, err := DecodeInput(c.input)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s is valid: %d holdings, %d transactions, %d performance points, %d insights\n",
		p.Address, len(p.Holdings), len(p.Transactions), len(p.PerformanceHistory), len(p.Insights))
	return subcommands.ExitSuccess
}
