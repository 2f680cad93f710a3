package agent

import (
	"context"
	"fmt"
	"strconv"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/docs"
	"github.com/etnz/cryptotax/renderer"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

func instruction(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

// NewFacilitator creates the expert leading the conversation with the user.
func NewFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user is a Spanish tax resident preparing the declaration of the gains made
			trading crypto assets. Devise a plan of questions to ask to each expert and come up
			with the best response. Always state the figures you rely on, and remind the user
			that the withdrawal correlation is an approximation when it matters.
			`),
		},
		Library: NewLibrary(experts),
	}
}

// NewAccountant creates the expert in charge of the user's report.
func NewAccountant(model string, report *cryptotax.Report) *Expert {
	lib := []Function{ReportFunc(report), AssessFunc(), TopicFunc()}
	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. It reads the user's crypto tax report: disposals matched
		in FIFO order, gains per asset, open lots, withdrawals and tax to pay.
		Ask the Accountant for any figure about the user's gains.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are an accountant in charge of the user's crypto tax report.
			Use the available tools to read the report, to assess the tax on a given gain
			and to read the documentation about how the figures are computed.
			Never invent a figure that is not in the report.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// NewResearcher creates an expert grounded with Google Search.
func NewResearcher(model string) *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert of Spanish taxation of crypto assets, with access to the web.
		Ask the Researcher about rules, deadlines and forms.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert of Spanish personal income tax applied to crypto assets.
			Leverage Google Search to ground your assertions and cite the official sources.
			`),
		},
	}
}

// ReportFunc exposes a section of the report as markdown.
func ReportFunc(report *cryptotax.Report) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Report",
			Description: "Report returns a section of the user's crypto tax report as markdown.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"section": {
						Type:        genai.TypeString,
						Description: "The section to read, all of them by default.",
						Enum:        []string{"all", "disposals", "statistics", "assets", "holdings", "withdrawals", "tax"},
					},
				},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "The markdown section."},
		},
		Func: func(_ context.Context, args map[string]any) (string, error) {
			section := "all"
			if _, ok := args["section"]; ok {
				s, err := stringArg(args, "section")
				if err != nil {
					return "", err
				}
				section = s
			}
			switch section {
			case "all":
				return renderer.ReportMarkdown(report), nil
			case "disposals":
				return renderer.DisposalsMarkdown(report.Disposals), nil
			case "statistics":
				return renderer.StatisticsMarkdown(report.Stats), nil
			case "assets":
				return renderer.AssetsMarkdown(report.Assets), nil
			case "holdings":
				return renderer.HoldingsMarkdown(report.Holdings), nil
			case "withdrawals":
				return renderer.WithdrawalsMarkdown(report.Withdrawals), nil
			case "tax":
				return renderer.TaxMarkdown(report.TaxableGain, report.Tax), nil
			}
			return "", fmt.Errorf("unknown section %q", section)
		},
	}
}

// AssessFunc computes the tax on an arbitrary gain.
func AssessFunc() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Assess",
			Description: "Assess returns the Spanish tax owed on a net gain in euros. Losses are not taxed.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"gain": {Type: genai.TypeString, Description: "The net gain in euros, as a decimal number."},
				},
				Required: []string{"gain"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "The tax to pay."},
		},
		Func: func(_ context.Context, args map[string]any) (string, error) {
			var d decimal.Decimal
			var err error
			switch v := args["gain"].(type) {
			case string:
				d, err = decimal.NewFromString(v)
			case float64:
				d = decimal.NewFromFloat(v)
			default:
				err = fmt.Errorf("argument %q is not a number as expected but %T", "gain", v)
			}
			if err != nil {
				return "", err
			}
			gain := cryptotax.TaxableBase(cryptotax.EUR(d))
			return cryptotax.Assess(gain).String(), nil
		},
	}
}

// TopicFunc reads the documentation.
func TopicFunc() *Func {
	topics, _ := docs.GetAllTopics()
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Topic",
			Description: "Topic returns the documentation about how the report is computed.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {Type: genai.TypeString, Description: "The topic to read.", Enum: topics},
				},
				Required: []string{"topic"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "The topic in markdown."},
		},
		Func: func(_ context.Context, args map[string]any) (string, error) {
			topic, err := stringArg(args, "topic")
			if err != nil {
				return "", err
			}
			return docs.GetTopic(topic)
		},
	}
}

// Context summarizes the report for the first question of a session.
func Context(report *cryptotax.Report) string {
	year := "all years"
	if report.Year != 0 {
		year = strconv.Itoa(report.Year)
	}
	return fmt.Sprintf("My report covers %s: %d disposals, a total gain of %s and %s of tax to pay.",
		year, report.Stats.Count, report.Stats.Total, report.Tax)
}
