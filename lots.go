package cryptotax

import "github.com/etnz/cryptotax/date"

// lot represents a single acquisition of an asset, used for cost basis calculations.
type lot struct {
	Acquired date.Date
	Quantity Quantity // what is left of it, shrinks as the lot is consumed.
	UnitCost Money    // cost per unit, never changes.
}

// wallet is the FIFO queue of lots held for one asset.
//
// Lots before head are fully consumed, the head lot may be partially consumed.
type wallet struct {
	lots []lot
	head int
}

// push appends a lot at the tail of the queue.
func (w *wallet) push(l lot) { w.lots = append(w.lots, l) }

// drain consumes quantityToSell from the oldest lots. It returns the cost of
// the consumed quantity and the part of quantityToSell that no lot could cover.
func (w *wallet) drain(quantityToSell Quantity) (cost Money, unmatched Quantity) {
	cost = EUR(0)
	for quantityToSell.IsPositive() && w.head < len(w.lots) {
		current := &w.lots[w.head]
		if current.Quantity.LessThanOrEqual(quantityToSell) {
			// Full sale of this lot
			cost = cost.Add(current.UnitCost.Mul(current.Quantity))
			quantityToSell = quantityToSell.Sub(current.Quantity)
			w.lots[w.head] = lot{}
			w.head++
		} else {
			// Partial sale from this lot
			cost = cost.Add(current.UnitCost.Mul(quantityToSell))
			current.Quantity = current.Quantity.Sub(quantityToSell)
			quantityToSell = Quantity{}
		}
	}
	// reclaim the consumed prefix once it dominates the queue.
	if w.head > 0 && w.head*2 >= len(w.lots) {
		w.lots = append(w.lots[:0], w.lots[w.head:]...)
		w.head = 0
	}
	if quantityToSell.IsPositive() {
		unmatched = quantityToSell
	}
	return cost, unmatched
}

// open returns the lots still held, oldest first.
func (w *wallet) open() []lot { return w.lots[w.head:] }

// quantity returns the total quantity held.
func (w *wallet) quantity() Quantity {
	var total Quantity
	for _, l := range w.open() {
		total = total.Add(l.Quantity)
	}
	return total
}

// Lot is a read-only view of an open lot.
type Lot struct {
	Acquired date.Date `json:"acquired"`
	Quantity Quantity  `json:"quantity"`
	UnitCost Money     `json:"unitCost"`
}

// Cost returns the cost basis of what is left of the lot.
func (l Lot) Cost() Money { return l.UnitCost.Mul(l.Quantity) }
