package bitpanda

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/date"
)

const header = "Date (UTC);Integration Name;Label;Outgoing Asset;Outgoing Amount;Incoming Asset;Incoming Amount;Fee Asset (optional);Fee Amount (optional);Comment (optional);Trx. ID (optional);Source Type;Source Name\n"

func TestDecode(t *testing.T) {
	input := header +
		"01/01/2023 10:00:00;Bitpanda;Trade;EUR;10000;BTC;1;;;;T1;csv;Bitpanda\n" +
		"01/06/2023 09:30;Bitpanda;Trade;BTC;1;EUR;15000,5;EUR;10;sold;T2;csv;Bitpanda\n" +
		"2023-07-01 08:00:00;Bitpanda;Non-Taxable;EUR;n/a;;;;;;T3;csv;Bitpanda\n"

	records, err := NewDecoder("test.csv", nil).Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	buy := records[0]
	if buy.Date != date.New(2023, 1, 1) || buy.Category != cryptotax.Trade || buy.IncomingAsset != "BTC" || buy.TxID != "T1" {
		t.Errorf("record 0 = %+v", buy)
	}
	if !buy.FeeAmount.IsZero() {
		t.Errorf("missing fee should be zero, got %s", buy.FeeAmount)
	}

	sell := records[1]
	if sell.Date != date.New(2023, 6, 1) {
		t.Errorf("day first date read as %s", sell.Date)
	}
	if !sell.IncomingAmount.Equal(cryptotax.Q(15000.5)) || !sell.FeeAmount.Equal(cryptotax.Q(10)) || sell.Comment != "sold" {
		t.Errorf("record 1 = %+v", sell)
	}

	cashout := records[2]
	if !cashout.IsWithdrawal() || !cashout.OutgoingAmount.IsZero() {
		t.Errorf("record 2 = %+v, want a withdrawal with a zero amount", cashout)
	}
}

func TestDecode_MissingColumn(t *testing.T) {
	_, err := NewDecoder("bad.csv", nil).Decode(strings.NewReader("Date (UTC);Label\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Decode() error = %v, want ErrMissingColumn", err)
	}
}

func TestDecode_InvalidDate(t *testing.T) {
	_, err := NewDecoder("bad.csv", nil).Decode(strings.NewReader(header + "yesterday;;Trade;EUR;1;BTC;1;;;;;;\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Decode() error = %v, want an error on line 2", err)
	}
}

func TestLoad_MergesSortsAndDedupes(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	writeFile(t, a, header+
		"01/06/2023;Bitpanda;Trade;BTC;1;EUR;15000;EUR;10;;T2;csv;Bitpanda\n")
	writeFile(t, b, header+
		"01/01/2023;Bitpanda;Trade;EUR;10000;BTC;1;;;;T1;csv;Bitpanda\n"+
		"01/06/2023;Bitpanda;Trade;BTC;1;EUR;15000;EUR;10;;T2;csv;Bitpanda\n")

	ledger, err := Load(nil, a, b)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := ledger.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	records := ledger.Records()
	if len(records) != 2 || records[0].TxID != "T1" || records[1].TxID != "T2" {
		t.Fatalf("Records() = %+v", records)
	}

	ds, err := cryptotax.Match(ledger)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 1 || !ds[0].Gain.Decimal().Equal(cryptotax.EUR(4990).Decimal()) {
		t.Errorf("Match() = %+v", ds)
	}
}

func TestLoad_TradeWithoutAsset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.csv")
	writeFile(t, path, header+
		"01/01/2023;Bitpanda;Trade;EUR;10000;BTC;1;;;;T1;csv;Bitpanda\n"+
		"02/01/2023;Bitpanda;Trade;;;;;;;;T9;csv;Bitpanda\n"+
		"01/06/2023;Bitpanda;Trade;BTC;1;EUR;15000;EUR;10;;T2;csv;Bitpanda\n"+
		"01/07/2023;Bitpanda;Non-Taxable;EUR;14990;;;;;;T3;csv;Bitpanda\n")

	ledger, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ledger.Len() != 4 {
		t.Fatalf("Load() kept %d records, want 4", ledger.Len())
	}

	r, err := cryptotax.NewReport(ledger, cryptotax.ReportOptions{Year: 2023})
	if err != nil {
		t.Fatalf("NewReport() error = %v", err)
	}
	if len(r.Disposals) != 1 || !r.TaxableGain.Decimal().Equal(cryptotax.EUR(4990).Decimal()) {
		t.Errorf("NewReport() disposals = %+v, taxable gain = %s", r.Disposals, r.TaxableGain)
	}
}

func TestDecode_NegativeAmount(t *testing.T) {
	records, err := NewDecoder("neg.csv", nil).Decode(strings.NewReader(header +
		"01/06/2023;Bitpanda;Trade;BTC;-1;EUR;15000;;;;T2;csv;Bitpanda\n"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !records[0].OutgoingAmount.Equal(cryptotax.Q(1)) {
		t.Errorf("negative outgoing amount read as %s, want 1", records[0].OutgoingAmount)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(nil, filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Load() should fail on a missing file")
	}
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
