// Package cmd implements the ctax command line application.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/bitpanda"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "ledger")

	c.Register(&gainsCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&withdrawalsCmd{}, "reports")
	c.Register(&taxCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", DefaultConfigFile, "Path to the YAML configuration file")
var ledgerFile = flag.String("ledger-file", "", "Path to the ledger file (JSONL format). Overrides the configuration.")
var verbose = flag.Bool("v", false, "Enable verbose logging")

// app is the state shared by every command of a single run.
type app struct {
	cfg Config
	log *zap.Logger
}

// newApp resolves the configuration (flags > env > YAML > defaults) and builds the logger.
func newApp() (*app, error) {
	cfg, err := LoadConfig(*configFile, isFlagSet("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.Ledger = *ledgerFile
		cfg.Inputs = nil
	}
	if *verbose {
		cfg.Verbose = true
	}

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("could not create logger: %w", err)
	}
	log = log.With(zap.String("run", uuid.NewString()))
	return &app{cfg: cfg, log: log}, nil
}

// mustApp is newApp for commands: errors are printed and turned into an exit status.
func mustApp() (*app, subcommands.ExitStatus) {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return a, subcommands.ExitSuccess
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// year returns the fiscal year to report: the command flag if set, else the configuration.
func (a *app) year(flagYear int) int {
	if flagYear != 0 {
		return flagYear
	}
	return a.cfg.Year
}

// loadLedger reads the given files, or the configured inputs, or the configured ledger.
// Files with a .csv extension are read as Bitpanda exports, the others as JSONL ledgers.
// The result is sorted and deduplicated.
func (a *app) loadLedger(paths []string) (*cryptotax.Ledger, error) {
	if len(paths) == 0 {
		paths = a.cfg.Inputs
	}
	if len(paths) == 0 {
		paths = []string{a.cfg.Ledger}
	}

	var csvs []string
	ledger := cryptotax.NewLedger()
	for _, path := range paths {
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			csvs = append(csvs, path)
			continue
		}
		l, err := decodeLedgerFile(path)
		if err != nil {
			return nil, err
		}
		ledger.Append(l.Records()...)
	}
	if len(csvs) > 0 {
		l, err := bitpanda.Load(a.log, csvs...)
		if err != nil {
			return nil, err
		}
		ledger.Append(l.Records()...)
	}

	ledger.Sort()
	if n := ledger.Dedupe(); n > 0 {
		a.log.Info("removed duplicate records", zap.Int("count", n))
	}
	a.log.Debug("ledger loaded", zap.Strings("files", paths), zap.Int("records", ledger.Len()))
	return ledger, nil
}

func decodeLedgerFile(path string) (*cryptotax.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger: %w", err)
	}
	defer f.Close()
	l, err := cryptotax.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger %q: %w", path, err)
	}
	return l, nil
}

// report loads the ledger and computes the report for the selected year.
func (a *app) report(paths []string, year int) (*cryptotax.Report, error) {
	ledger, err := a.loadLedger(paths)
	if err != nil {
		return nil, err
	}
	return cryptotax.NewReport(ledger, cryptotax.ReportOptions{
		Year:   a.year(year),
		Logger: a.log,
	})
}
