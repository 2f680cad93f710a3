package cryptotax

import (
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/cryptotax/date"
)

// ErrUnsorted is returned when a ledger is not in chronological order.
var ErrUnsorted = errors.New("ledger is not sorted by date")

// Ledger is an ordered list of records.
//
// The ledger keeps records in the order they were appended. Matching requires
// chronological order: callers sort it with Sort, and Validate checks it.
type Ledger struct {
	records []Record
}

// NewLedger creates a ledger holding the given records, in that order.
func NewLedger(records ...Record) *Ledger {
	return &Ledger{records: slices.Clone(records)}
}

// Append appends records at the end of the ledger.
func (l *Ledger) Append(records ...Record) { l.records = append(l.records, records...) }

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// Records returns a copy of the records.
func (l *Ledger) Records() []Record { return slices.Clone(l.records) }

// Sort sorts the records by date. The sort is stable: records on the same day
// keep their relative order.
func (l *Ledger) Sort() {
	slices.SortStableFunc(l.records, func(a, b Record) int { return a.Date.Compare(b.Date) })
}

// IsSorted reports whether records are in chronological order.
func (l *Ledger) IsSorted() bool {
	return slices.IsSortedFunc(l.records, func(a, b Record) int { return a.Date.Compare(b.Date) })
}

// Validate checks the precondition of the matching engine: records are in
// chronological order. Incomplete records are not an error, matching skips them.
func (l *Ledger) Validate() error {
	var errs error
	for i := 1; i < len(l.records); i++ {
		if prev, r := l.records[i-1], l.records[i]; r.Date.Before(prev.Date) {
			errs = errors.Join(errs, fmt.Errorf("record #%d on %s after record on %s: %w", i, r.Date, prev.Date, ErrUnsorted))
		}
	}
	return errs
}

// Dedupe removes duplicate records and returns how many were removed. Records
// with a transaction id are duplicates when ids are equal, the others when all
// their fields are equal. The first occurrence is kept.
func (l *Ledger) Dedupe() int {
	ids := make(map[string]bool)
	kept := l.records[:0]
	removed := 0
	for _, r := range l.records {
		dup := false
		if r.TxID != "" {
			dup = ids[r.TxID]
			ids[r.TxID] = true
		} else {
			dup = slices.ContainsFunc(kept, r.Equal)
		}
		if dup {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	clear(l.records[len(kept):])
	l.records = kept
	return removed
}

// Until returns a new ledger with the records dated on or before the given day.
func (l *Ledger) Until(on date.Date) *Ledger {
	out := &Ledger{}
	for _, r := range l.records {
		if !r.Date.After(on) {
			out.records = append(out.records, r)
		}
	}
	return out
}

// Withdrawals returns the fiat cash-out records.
func (l *Ledger) Withdrawals() []Record {
	var ws []Record
	for _, r := range l.records {
		if r.IsWithdrawal() {
			ws = append(ws, r)
		}
	}
	return ws
}

// Totals sums the outgoing and incoming amounts of all records, whatever
// their asset.
func (l *Ledger) Totals() (outgoing, incoming Quantity) {
	for _, r := range l.records {
		outgoing = outgoing.Add(r.OutgoingAmount)
		incoming = incoming.Add(r.IncomingAmount)
	}
	return outgoing, incoming
}
