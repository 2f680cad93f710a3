package cryptotax

import (
	"testing"

	"github.com/etnz/cryptotax/date"
)

// buy returns a trade record acquiring qty of asset for cost euros.
func buy(on string, asset string, qty, cost float64) Record {
	return Record{
		Date:           date.MustParse(on),
		Category:       Trade,
		OutgoingAsset:  Fiat,
		OutgoingAmount: Q(cost),
		IncomingAsset:  asset,
		IncomingAmount: Q(qty),
	}
}

// sell returns a trade record selling qty of asset for amount euros, fee included.
func sell(on string, asset string, qty, amount, fee float64) Record {
	return Record{
		Date:           date.MustParse(on),
		Category:       Trade,
		OutgoingAsset:  asset,
		OutgoingAmount: Q(qty),
		IncomingAsset:  Fiat,
		IncomingAmount: Q(amount),
		FeeAsset:       Fiat,
		FeeAmount:      Q(fee),
	}
}

// swap returns a trade record exchanging outQty of from against inQty of to.
func swap(on string, from string, outQty float64, to string, inQty float64) Record {
	return Record{
		Date:           date.MustParse(on),
		Category:       Trade,
		OutgoingAsset:  from,
		OutgoingAmount: Q(outQty),
		IncomingAsset:  to,
		IncomingAmount: Q(inQty),
	}
}

// withdraw returns a non-taxable cash-out of amount euros.
func withdraw(on string, amount float64) Record {
	return Record{
		Date:           date.MustParse(on),
		Category:       NonTaxable,
		OutgoingAsset:  Fiat,
		OutgoingAmount: Q(amount),
	}
}

// assertMoney fails the test when got is not numerically equal to want.
func assertMoney(t *testing.T, name string, got Money, want float64) {
	t.Helper()
	if !got.Decimal().Equal(EUR(want).Decimal()) {
		t.Errorf("%s = %s, want %v", name, got.Decimal(), want)
	}
}

// assertQuantity fails the test when got is not numerically equal to want.
func assertQuantity(t *testing.T, name string, got Quantity, want float64) {
	t.Helper()
	if !got.Equal(Q(want)) {
		t.Errorf("%s = %s, want %v", name, got, want)
	}
}

// mustMatch runs Match and fails the test on error.
func mustMatch(t *testing.T, m *Matcher, records ...Record) []Disposal {
	t.Helper()
	ds, err := m.Match(NewLedger(records...))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	return ds
}
