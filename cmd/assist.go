package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cryptotax/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	year  int
	model string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "Start an interactive session with the AI assistant about your report."
}
func (*assistCmd) Usage() string {
	return `ctax assist [-year <year>] [-model <model>] [question...]

  Start an interactive session with the AI assistant. The assistant reads the
  report computed from the ledger. GEMINI_API_KEY (or GOOGLE_API_KEY) must be set.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Fiscal year to discuss")
	f.StringVar(&c.model, "model", "", "Gemini model, defaults to the configured one")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := mustApp()
	if a == nil {
		return status
	}
	defer a.log.Sync()

	model := c.model
	if model == "" {
		model = a.cfg.Model
	}

	report, err := a.report(nil, c.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	accountant := agent.NewAccountant(model, report)
	accountant.Log = a.log
	researcher := agent.NewResearcher(model)
	researcher.Log = a.log
	assistant := agent.New(os.Stdout, os.Stdin, model, accountant, researcher)
	assistant.Facilitator.Log = a.log
	assistant.Print = func(w io.Writer, text string) {
		out, err := glamour.Render(text, "auto")
		if err != nil {
			out = text
		}
		fmt.Fprint(w, out)
	}

	prompts := []string{agent.Context(report)}
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := assistant.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Assistant failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
