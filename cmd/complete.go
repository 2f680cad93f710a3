package cmd

import (
	"github.com/etnz/cryptotax/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	inputs := predict.Or(predict.Files("*.csv"), predict.Files("*.jsonl"))
	report := func() *complete.Command {
		return &complete.Command{
			Flags: map[string]complete.Predictor{
				"year": predict.Something,
				"json": predict.Nothing,
				"q":    predict.Something,
			},
			Args: inputs,
		}
	}

	tax := report()
	tax.Flags["gain"] = predict.Something

	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":      predict.Files("*.yaml"),
			"ledger-file": predict.Files("*.jsonl"),
			"v":           predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"import": {
				Flags: map[string]complete.Predictor{"o": predict.Files("*.jsonl")},
				Args:  inputs,
			},
			"gains":       report(),
			"summary":     report(),
			"withdrawals": report(),
			"tax":         tax,
			"report":      report(),
			"topic":       {Args: predict.Set(append(topics, "*"))},
			"assist": {
				Flags: map[string]complete.Predictor{
					"year":  predict.Something,
					"model": predict.Something,
				},
			},
		},
	}
}
