package renderer

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/date"
)

func record(on string, cat cryptotax.Category, outAsset string, out float64, inAsset string, in float64) cryptotax.Record {
	return cryptotax.Record{
		Date:           date.MustParse(on),
		Category:       cat,
		OutgoingAsset:  outAsset,
		OutgoingAmount: cryptotax.Q(out),
		IncomingAsset:  inAsset,
		IncomingAmount: cryptotax.Q(in),
	}
}

func sampleReport(t *testing.T) *cryptotax.Report {
	t.Helper()
	l := cryptotax.NewLedger(
		record("2024-01-10", cryptotax.Trade, "EUR", 1000, "BTC", 0.1),
		record("2024-03-01", cryptotax.Trade, "BTC", 0.05, "EUR", 1500),
		record("2024-04-01", cryptotax.NonTaxable, "EUR", 1000, "", 0),
		record("2024-05-01", cryptotax.Trade, "ETH", 1, "EUR", 200),
	)
	r, err := cryptotax.NewReport(l, cryptotax.ReportOptions{Year: 2024})
	if err != nil {
		t.Fatalf("NewReport() unexpected error: %v", err)
	}
	return r
}

func TestReportMarkdown(t *testing.T) {
	r := sampleReport(t)
	got := ReportMarkdown(r)

	for _, want := range []string{
		"# Crypto Tax Report for 2024",
		"Records up to 2024-12-31.",
		"## Disposals (FIFO)",
		"## Statistics",
		"## Summary per Asset",
		"## Open Lots",
		"## Gains Related to Withdrawals",
		"## Tax Return",
		"| BTC |",
		"| ETH |",
		r.TaxableGain.String(),
		r.Tax.String(),
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ReportMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestDisposalsMarkdown_InsufficientHistory(t *testing.T) {
	r := sampleReport(t)
	got := DisposalsMarkdown(r.Disposals)

	// ETH was never acquired, nothing of the sale is matched.
	if !strings.Contains(got, "0 (!)") {
		t.Errorf("DisposalsMarkdown() does not flag the unmatched disposal:\n%s", got)
	}
	if !strings.Contains(got, "2024-05-01 ETH: 1 unmatched") {
		t.Errorf("DisposalsMarkdown() does not list the unmatched quantity:\n%s", got)
	}
}

func TestDisposalsMarkdown_Empty(t *testing.T) {
	got := DisposalsMarkdown(nil)
	if !strings.Contains(got, "No disposal found.") {
		t.Errorf("DisposalsMarkdown(nil) = %q", got)
	}
	if strings.Contains(got, "(!)") {
		t.Errorf("DisposalsMarkdown(nil) should not contain the unmatched note: %q", got)
	}
}

func TestWithdrawalsMarkdown(t *testing.T) {
	r := sampleReport(t)
	got := WithdrawalsMarkdown(r.Withdrawals)
	for _, want := range []string{
		"Withdrawals: 1",
		"the latest on 2024-04-01",
		"Gain related to withdrawals: **" + r.Withdrawals.Gain().SignedString() + "**",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("WithdrawalsMarkdown() does not contain %q:\n%s", want, got)
		}
	}
	// The ETH sale happened after the last withdrawal.
	if strings.Contains(got, "ETH") {
		t.Errorf("WithdrawalsMarkdown() should not list disposals after the cutoff:\n%s", got)
	}

	none := WithdrawalsMarkdown(cryptotax.Withdrawals{})
	if !strings.Contains(none, "No withdrawal") {
		t.Errorf("WithdrawalsMarkdown(empty) = %q", none)
	}
}

func TestHoldingsMarkdown_Empty(t *testing.T) {
	if got := HoldingsMarkdown(nil); got != "" {
		t.Errorf("HoldingsMarkdown(nil) = %q, want empty", got)
	}
}

func TestConditionalBlock(t *testing.T) {
	var b bytes.Buffer
	ConditionalBlock(&b, func(w io.Writer) bool {
		io.WriteString(w, "dropped")
		return false
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		io.WriteString(w, "kept")
		return true
	})
	if got := b.String(); got != "kept" {
		t.Errorf("ConditionalBlock() = %q, want %q", got, "kept")
	}
}
