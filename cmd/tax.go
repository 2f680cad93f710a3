package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type taxCmd struct {
	reportFlags
	gain string
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "tax to pay on the gains related to withdrawals" }
func (*taxCmd) Usage() string {
	return `ctax tax [-year <year>] [-gain <amount>] [-json] [-q <jsonpath>] [files...]

  Computes the tax owed on the gains related to withdrawals with the Spanish
  progressive savings schedule (19%, 21%, 23% and 27%). Losses are not taxed.

  With -gain, assesses the given amount of euros instead of reading a ledger.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	f.StringVar(&c.gain, "gain", "", "Net gain in euros to assess instead of the ledger's")
}

type taxResult struct {
	Gain cryptotax.Money `json:"gain"`
	Tax  cryptotax.Money `json:"tax"`
}

func (c *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.gain == "" {
		return c.run(f, func(r *cryptotax.Report) (any, func() string) {
			v := taxResult{Gain: r.TaxableGain, Tax: r.Tax}
			return v, func() string { return renderer.TaxMarkdown(v.Gain, v.Tax) }
		})
	}

	if f.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "-gain cannot be used with input files")
		return subcommands.ExitUsageError
	}
	d, err := decimal.NewFromString(c.gain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing gain %q: %v\n", c.gain, err)
		return subcommands.ExitUsageError
	}
	gain := cryptotax.TaxableBase(cryptotax.EUR(d))
	v := taxResult{Gain: gain, Tax: cryptotax.Assess(gain)}
	if err := output(v, func() string { return renderer.TaxMarkdown(v.Gain, v.Tax) }, c.json, c.query); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing tax: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
