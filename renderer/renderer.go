// Package renderer renders cryptotax reports as markdown.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cryptotax"
)

// WithdrawalsMarkdown renders the gains related to withdrawals to a bank account.
func WithdrawalsMarkdown(w cryptotax.Withdrawals) string {
	var b strings.Builder
	fmt.Fprint(&b, "## Gains Related to Withdrawals\n\n")
	if w.Count == 0 {
		fmt.Fprint(&b, "No withdrawal to a bank account was found.\n\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Withdrawals: %d, for a total of %s, the latest on %s.\n\n", w.Count, w.Amount, w.Cutoff)
	fmt.Fprint(&b, "Disposals up to the latest withdrawal are considered to have funded it. This is an approximation, not a cash-flow trace.\n\n")
	writeDisposals(&b, "### Disposals up to the Latest Withdrawal", w.Disposals)
	fmt.Fprintf(&b, "Gain related to withdrawals: **%s**\n\n", w.Gain().SignedString())
	return b.String()
}

// TaxMarkdown renders the tax due on a taxable gain.
func TaxMarkdown(taxableGain, tax cryptotax.Money) string {
	var b strings.Builder
	fmt.Fprint(&b, "## Tax Return\n\n")
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Net Gain to Declare | %s |\n", taxableGain)
	fmt.Fprintf(&b, "| Tax to Pay | %s |\n", tax)
	fmt.Fprintln(&b)
	return b.String()
}

// GainsMarkdown renders the disposals and their statistics.
func GainsMarkdown(r *cryptotax.Report) string {
	var b strings.Builder
	writeTitle(&b, "Capital Gains", r)
	b.WriteString(DisposalsMarkdown(r.Disposals))
	b.WriteString(StatisticsMarkdown(r.Stats))
	return b.String()
}

// ReportMarkdown renders the full report.
func ReportMarkdown(r *cryptotax.Report) string {
	var b strings.Builder
	writeTitle(&b, "Crypto Tax Report", r)
	fmt.Fprintf(&b, "%d records loaded. Outgoing amount: %s, incoming amount: %s.\n\n", r.Records, r.Outgoing, r.Incoming)
	b.WriteString(DisposalsMarkdown(r.Disposals))
	b.WriteString(StatisticsMarkdown(r.Stats))
	b.WriteString(AssetsMarkdown(r.Assets))
	b.WriteString(HoldingsMarkdown(r.Holdings))
	b.WriteString(WithdrawalsMarkdown(r.Withdrawals))
	b.WriteString(TaxMarkdown(r.TaxableGain, r.Tax))
	return b.String()
}

func writeTitle(b *strings.Builder, title string, r *cryptotax.Report) {
	if r.Year != 0 {
		fmt.Fprintf(b, "# %s for %d\n\n", title, r.Year)
		fmt.Fprintf(b, "Records up to %s.\n\n", r.Cutoff)
		return
	}
	fmt.Fprintf(b, "# %s\n\n", title)
}
