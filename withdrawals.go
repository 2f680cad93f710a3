package cryptotax

import "github.com/etnz/cryptotax/date"

// Withdrawals relates disposals to the fiat cash-outs found in a ledger.
type Withdrawals struct {
	Disposals []Disposal `json:"disposals"` // disposals dated on or before Cutoff
	Count     int        `json:"count"`     // number of cash-outs
	Amount    Money      `json:"amount"`    // total euros cashed out
	Cutoff    date.Date  `json:"cutoff"`    // date of the latest cash-out
}

// Gain returns the total gain of the correlated disposals.
func (w Withdrawals) Gain() Money {
	total := EUR(0)
	for _, d := range w.Disposals {
		total = total.Add(d.Gain)
	}
	return total
}

// Correlate approximates the gains that funded the euros withdrawn from the
// exchange: it keeps the disposals dated on or before the latest withdrawal.
//
// This is a temporal heuristic and not a cash-flow trace: any disposal before
// the last cash-out counts, whatever the amounts involved.
//
// A withdrawal is a non-taxable record of euros going out (see
// Record.IsWithdrawal). With no withdrawal, no disposal is kept.
func Correlate(l *Ledger, disposals []Disposal) Withdrawals {
	w := Withdrawals{Disposals: []Disposal{}, Amount: EUR(0)}
	for _, r := range l.Withdrawals() {
		w.Count++
		w.Amount = w.Amount.Add(EUR(r.OutgoingAmount.Decimal()))
		w.Cutoff = date.Max(w.Cutoff, r.Date)
	}
	if w.Count == 0 {
		return w
	}
	for _, d := range disposals {
		if !d.Date.After(w.Cutoff) {
			w.Disposals = append(w.Disposals, d)
		}
	}
	return w
}
