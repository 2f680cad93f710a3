package cryptotax

import (
	"errors"
	"testing"

	"github.com/etnz/cryptotax/date"
)

func TestLedger_SortIsStable(t *testing.T) {
	first := buy("2023-01-02", "BTC", 1, 100)
	second := sell("2023-01-02", "BTC", 1, 200, 0)
	l := NewLedger(first, buy("2023-01-03", "ETH", 1, 1), second, buy("2023-01-01", "ADA", 1, 1))
	if l.IsSorted() {
		t.Fatal("ledger should not be sorted yet")
	}
	l.Sort()
	if !l.IsSorted() {
		t.Fatal("ledger should be sorted")
	}
	rs := l.Records()
	if rs[0].IncomingAsset != "ADA" || !rs[1].Equal(first) || !rs[2].Equal(second) || rs[3].IncomingAsset != "ETH" {
		t.Errorf("unexpected order: %v", rs)
	}
}

func TestLedger_Validate(t *testing.T) {
	l := NewLedger(buy("2023-01-02", "BTC", 1, 100), buy("2023-01-01", "BTC", 1, 100))
	if err := l.Validate(); !errors.Is(err, ErrUnsorted) {
		t.Errorf("Validate() = %v, want ErrUnsorted", err)
	}
	if err := NewLedger().Validate(); err != nil {
		t.Errorf("Validate() of an empty ledger = %v", err)
	}
	// incomplete rows are left to the matcher, whatever their category.
	for _, c := range []Category{Other, Trade} {
		empty := Record{Date: date.MustParse("2023-01-01"), Category: c}
		if err := NewLedger(empty).Validate(); err != nil {
			t.Errorf("Validate() of an empty %s = %v, want nil", c, err)
		}
	}
}

func TestLedger_Dedupe(t *testing.T) {
	a := buy("2023-01-01", "BTC", 1, 100)
	a.TxID = "T1"
	aBis := buy("2023-01-05", "BTC", 3, 300) // same id, different content
	aBis.TxID = "T1"
	b := buy("2023-01-02", "ETH", 1, 100)
	c := buy("2023-01-02", "ETH", 2, 100)

	l := NewLedger(a, b, aBis, b, c)
	if n := l.Dedupe(); n != 2 {
		t.Errorf("Dedupe() removed %d, want 2", n)
	}
	rs := l.Records()
	if len(rs) != 3 || !rs[0].Equal(a) || !rs[1].Equal(b) || !rs[2].Equal(c) {
		t.Errorf("Records() = %v", rs)
	}
}

func TestLedger_Until(t *testing.T) {
	l := NewLedger(
		buy("2022-06-01", "BTC", 1, 100),
		buy("2022-12-31", "BTC", 1, 100),
		buy("2023-01-01", "BTC", 1, 100),
	)
	if got := l.Until(date.EndOfYear(2022)).Len(); got != 2 {
		t.Errorf("Until(2022-12-31).Len() = %d, want 2", got)
	}
	if l.Len() != 3 {
		t.Error("Until must not modify the ledger")
	}
}

func TestLedger_Totals(t *testing.T) {
	l := NewLedger(
		buy("2023-01-01", "BTC", 1, 100),
		sell("2023-01-02", "BTC", 0.5, 80, 1),
		withdraw("2023-01-03", 50),
	)
	out, in := l.Totals()
	assertQuantity(t, "outgoing", out, 150.5)
	assertQuantity(t, "incoming", in, 81)
	if ws := l.Withdrawals(); len(ws) != 1 {
		t.Errorf("Withdrawals() = %v, want 1", ws)
	}
}
