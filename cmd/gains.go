package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/renderer"
	"github.com/google/subcommands"
)

// reportFlags are shared by the commands reporting on a fiscal year.
type reportFlags struct {
	year  int
	json  bool
	query string
}

func (r *reportFlags) SetFlags(f *flag.FlagSet) {
	f.IntVar(&r.year, "year", 0, "Fiscal year to report. Records after December 31 are ignored. Defaults to the configured year, or the whole ledger.")
	f.BoolVar(&r.json, "json", false, "Print JSON instead of markdown")
	f.StringVar(&r.query, "q", "", "JSONPath query applied to the JSON output, implies -json")
}

// run computes the report and prints the part selected by view.
func (r *reportFlags) run(f *flag.FlagSet, view func(*cryptotax.Report) (any, func() string)) subcommands.ExitStatus {
	a, status := mustApp()
	if a == nil {
		return status
	}
	defer a.log.Sync()

	report, err := a.report(f.Args(), r.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}
	v, md := view(report)
	if err := output(v, md, r.json, r.query); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	reportFlags
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gains per disposal (FIFO)" }
func (*gainsCmd) Usage() string {
	return `ctax gains [-year <year>] [-json] [-q <jsonpath>] [files...]

  Matches every sale and swap against the oldest acquisitions of the same
  asset and displays the gain or loss of each disposal, with statistics.
`
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(f, func(r *cryptotax.Report) (any, func() string) {
		v := struct {
			Disposals []cryptotax.Disposal `json:"disposals"`
			Stats     cryptotax.Statistics `json:"stats"`
		}{r.Disposals, r.Stats}
		return v, func() string { return renderer.GainsMarkdown(r) }
	})
}

type summaryCmd struct {
	reportFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "gains summarized per asset" }
func (*summaryCmd) Usage() string {
	return `ctax summary [-year <year>] [-json] [-q <jsonpath>] [files...]

  Aggregates disposals per asset: quantities, proceeds, cost, gains, fees,
  average prices and the share of total gains and losses, then lists the
  remaining open lots.
`
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(f, func(r *cryptotax.Report) (any, func() string) {
		v := struct {
			Assets   []cryptotax.AssetSummary `json:"assets"`
			Holdings []cryptotax.Holding      `json:"holdings"`
		}{r.Assets, r.Holdings}
		return v, func() string {
			return renderer.AssetsMarkdown(r.Assets) + renderer.HoldingsMarkdown(r.Holdings)
		}
	})
}

type withdrawalsCmd struct {
	reportFlags
}

func (*withdrawalsCmd) Name() string     { return "withdrawals" }
func (*withdrawalsCmd) Synopsis() string { return "gains related to fiat withdrawals" }
func (*withdrawalsCmd) Usage() string {
	return `ctax withdrawals [-year <year>] [-json] [-q <jsonpath>] [files...]

  Lists euro withdrawals to a bank account and the disposals that happened up
  to the latest of them, which are considered to have funded them.
`
}

func (c *withdrawalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(f, func(r *cryptotax.Report) (any, func() string) {
		return r.Withdrawals, func() string { return renderer.WithdrawalsMarkdown(r.Withdrawals) }
	})
}

type reportCmd struct {
	reportFlags
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "full tax report" }
func (*reportCmd) Usage() string {
	return `ctax report [-year <year>] [-json] [-q <jsonpath>] [files...]

  Prints disposals, statistics, per asset summary, open lots, withdrawal
  related gains and the tax to pay.
`
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(f, func(r *cryptotax.Report) (any, func() string) {
		return r, func() string { return renderer.ReportMarkdown(r) }
	})
}
