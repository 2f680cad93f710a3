package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// importCmd normalizes exchange exports into a JSONL ledger.
type importCmd struct {
	output string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "convert Bitpanda exports into a ledger" }
func (*importCmd) Usage() string {
	return `ctax import [-o <ledger.jsonl>] <files...>

  Reads Bitpanda CSV exports (and JSONL ledgers), sorts them by date, drops
  duplicated rows and writes the resulting ledger, one record per line.
  Without -o the ledger is written to the standard output.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output ledger file, overwritten if it exists")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "import requires at least one file")
		return subcommands.ExitUsageError
	}
	a, status := mustApp()
	if a == nil {
		return status
	}
	defer a.log.Sync()

	ledger, err := a.loadLedger(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading exports: %v\n", err)
		return subcommands.ExitFailure
	}

	w := os.Stdout
	if c.output != "" {
		out, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating ledger %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}
	if err := cryptotax.EncodeLedger(w, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	a.log.Info("ledger written", zap.String("file", c.output), zap.Int("records", ledger.Len()))
	return subcommands.ExitSuccess
}
