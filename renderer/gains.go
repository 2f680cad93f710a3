package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/cryptotax"
)

// DisposalsMarkdown renders the disposal table, one row per disposal.
func DisposalsMarkdown(disposals []cryptotax.Disposal) string {
	var b strings.Builder
	writeDisposals(&b, "## Disposals (FIFO)", disposals)
	return b.String()
}

func writeDisposals(w io.Writer, title string, disposals []cryptotax.Disposal) {
	fmt.Fprintf(w, "%s\n\n", title)
	if len(disposals) == 0 {
		fmt.Fprint(w, "No disposal found.\n\n")
		return
	}
	fmt.Fprintln(w, "| Date | Asset | Kind | Quantity | Proceeds | Cost (FIFO) | Gain/Loss | Fee |")
	fmt.Fprintln(w, "|:---|:---|:---|---:|---:|---:|---:|---:|")
	for _, d := range disposals {
		quantity := d.Quantity.String()
		if d.InsufficientHistory() {
			quantity += " (!)"
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			d.Date, d.Asset, d.Kind, quantity,
			d.Proceeds, d.CostBasis, d.Gain.SignedString(), d.Fee)
	}
	fmt.Fprintln(w)

	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprint(w, "(!) part of the quantity was not backed by any recorded acquisition and was matched at zero cost:\n\n")
		found := false
		for _, d := range disposals {
			if d.InsufficientHistory() {
				found = true
				fmt.Fprintf(w, "  - %s %s: %s unmatched\n", d.Date, d.Asset, d.Unmatched)
			}
		}
		fmt.Fprintln(w)
		return found
	})
}

// StatisticsMarkdown renders the gain statistics.
func StatisticsMarkdown(s cryptotax.Statistics) string {
	var b strings.Builder
	fmt.Fprint(&b, "## Statistics\n\n")
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Total Gain/Loss | %s |\n", s.Total.SignedString())
	fmt.Fprintf(&b, "| Disposals | %d |\n", s.Count)
	fmt.Fprintf(&b, "| Average Gain | %s |\n", s.Average.SignedString())
	fmt.Fprintf(&b, "| Max Gain | %s |\n", s.Max.SignedString())
	fmt.Fprintf(&b, "| Min Gain | %s |\n", s.Min.SignedString())
	fmt.Fprintf(&b, "| Positive Disposals | %d |\n", s.Positive)
	fmt.Fprintf(&b, "| Negative Disposals | %d |\n", s.Negative)
	fmt.Fprintln(&b)
	return b.String()
}

// AssetsMarkdown renders the per asset summary.
func AssetsMarkdown(assets []cryptotax.AssetSummary) string {
	var b strings.Builder
	fmt.Fprint(&b, "## Summary per Asset\n\n")
	if len(assets) == 0 {
		fmt.Fprint(&b, "No disposal found.\n\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Asset | Quantity | Proceeds | Cost (FIFO) | Gain/Loss | Fees | Avg Sale Price | Avg Cost Price | % Gains | % Losses |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, a := range assets {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s%% | %s%% |\n",
			a.Asset, a.Quantity, a.Proceeds, a.CostBasis, a.Gain.SignedString(), a.Fees,
			a.AvgSalePrice, a.AvgCostPrice, a.GainShare.StringFixed(2), a.LossShare.StringFixed(2))
	}
	fmt.Fprintln(&b)
	return b.String()
}

// HoldingsMarkdown renders what is left in the wallets.
func HoldingsMarkdown(holdings []cryptotax.Holding) string {
	var b strings.Builder
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Open Lots\n\n")
		fmt.Fprintln(w, "| Asset | Quantity | Cost Basis |")
		fmt.Fprintln(w, "|:---|---:|---:|")
		for _, h := range holdings {
			fmt.Fprintf(w, "| %s | %s | %s |\n", h.Asset, h.Quantity, h.CostBasis)
		}
		fmt.Fprintln(w)
		return len(holdings) > 0
	})
	return b.String()
}
