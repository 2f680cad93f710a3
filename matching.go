package cryptotax

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/cryptotax/date"
	"go.uber.org/zap"
)

// DisposalKind tells how an asset left the wallet.
type DisposalKind int

const (
	// Sale is a disposal against euros, it realizes a gain or a loss.
	Sale DisposalKind = iota
	// Swap is a disposal against another crypto asset, recorded with no gain.
	Swap
)

func (k DisposalKind) String() string {
	switch k {
	case Sale:
		return "sale"
	case Swap:
		return "swap"
	default:
		return "unknown"
	}
}

func (k DisposalKind) MarshalJSON() ([]byte, error) { return []byte(`"` + k.String() + `"`), nil }

// Disposal is the outcome of matching one disposal record against the lots
// of its asset.
type Disposal struct {
	Date      date.Date    `json:"date"`
	Asset     string       `json:"asset"`
	Kind      DisposalKind `json:"kind"`
	Quantity  Quantity     `json:"quantity"` // quantity matched against recorded lots
	Proceeds  Money        `json:"proceeds"`
	CostBasis Money        `json:"costBasis"`
	Gain      Money        `json:"gain"`
	Fee       Money        `json:"fee"`
	// Unmatched is the part of the disposed quantity no recorded lot covered,
	// it is not counted in Quantity and adds no cost.
	Unmatched Quantity `json:"unmatched"`
}

// InsufficientHistory reports whether the ledger did not hold enough lots to
// back the whole disposal, so part of it was matched at zero cost.
func (d Disposal) InsufficientHistory() bool { return d.Unmatched.IsPositive() }

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger sets the logger used to report data quality issues.
func WithLogger(log *zap.Logger) Option {
	return func(m *Matcher) { m.log = log }
}

// Matcher computes cost basis and realized gains with the FIFO method.
//
// A Matcher keeps the wallets of its last Match call so that holdings can be
// inspected. It is not safe for concurrent use.
type Matcher struct {
	log     *zap.Logger
	wallets map[string]*wallet
}

// NewMatcher creates a Matcher.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{log: zap.NewNop(), wallets: make(map[string]*wallet)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match runs one FIFO pass over the ledger with a fresh set of wallets.
// See Matcher.Match.
func Match(l *Ledger, opts ...Option) ([]Disposal, error) {
	return NewMatcher(opts...).Match(l)
}

// Match consumes the trades of the ledger in order and returns one Disposal
// per sale or swap, in ledger order. Other categories are ignored.
//
// The ledger must be sorted by date, otherwise ErrUnsorted is returned: FIFO
// matching on an unsorted ledger silently gives wrong results.
//
// Data quality issues never fail the pass: a disposal larger than the lots
// held is matched at zero cost for the remainder and flagged with
// InsufficientHistory, and a zero quantity gives a zero unit cost.
func (m *Matcher) Match(l *Ledger) ([]Disposal, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("cannot match ledger: %w", err)
	}
	m.wallets = make(map[string]*wallet)

	var disposals []Disposal
	for i, r := range l.records {
		if r.Category != Trade {
			continue
		}
		switch r.shape() {
		case shapeAcquisition:
			m.wallet(r.IncomingAsset).push(lot{
				Acquired: r.Date,
				Quantity: r.IncomingAmount,
				UnitCost: EUR(r.OutgoingAmount.Decimal()).Div(r.IncomingAmount),
			})

		case shapeSale:
			fee := EUR(r.FeeAmount.Decimal())
			proceeds := EUR(r.IncomingAmount.Decimal()).Sub(fee)
			cost, unmatched := m.wallet(r.OutgoingAsset).drain(r.OutgoingAmount)
			d := Disposal{
				Date:      r.Date,
				Asset:     r.OutgoingAsset,
				Kind:      Sale,
				Quantity:  r.OutgoingAmount.Sub(unmatched),
				Proceeds:  proceeds,
				CostBasis: cost,
				Gain:      proceeds.Sub(cost),
				Fee:       fee,
				Unmatched: unmatched,
			}
			m.warnUnmatched(i, d)
			disposals = append(disposals, d)

		case shapeSwap:
			cost, unmatched := m.wallet(r.OutgoingAsset).drain(r.OutgoingAmount)
			m.wallet(r.IncomingAsset).push(lot{
				Acquired: r.Date,
				Quantity: r.IncomingAmount,
				UnitCost: cost.Div(r.IncomingAmount),
			})
			d := Disposal{
				Date:      r.Date,
				Asset:     r.OutgoingAsset,
				Kind:      Swap,
				Quantity:  r.OutgoingAmount.Sub(unmatched),
				Proceeds:  cost,
				CostBasis: cost,
				Gain:      EUR(0),
				Fee:       EUR(r.FeeAmount.Decimal()),
				Unmatched: unmatched,
			}
			m.warnUnmatched(i, d)
			disposals = append(disposals, d)

		default:
			m.log.Debug("skipping trade with no recognizable asset pair",
				zap.Int("record", i),
				zap.Stringer("date", r.Date),
				zap.String("outgoing", r.OutgoingAsset),
				zap.String("incoming", r.IncomingAsset))
		}
	}
	return disposals, nil
}

func (m *Matcher) warnUnmatched(i int, d Disposal) {
	if !d.InsufficientHistory() {
		return
	}
	m.log.Warn("disposal exceeds recorded lots, remainder matched at zero cost",
		zap.Int("record", i),
		zap.Stringer("date", d.Date),
		zap.String("asset", d.Asset),
		zap.Stringer("matched", d.Quantity),
		zap.Stringer("unmatched", d.Unmatched))
}

// wallet returns the wallet of an asset, creating it on first use.
func (m *Matcher) wallet(asset string) *wallet {
	w, ok := m.wallets[asset]
	if !ok {
		w = &wallet{}
		m.wallets[asset] = w
	}
	return w
}

// Holding is the quantity of an asset still held after a Match pass, and its
// remaining cost basis.
type Holding struct {
	Asset     string   `json:"asset"`
	Quantity  Quantity `json:"quantity"`
	CostBasis Money    `json:"costBasis"`
}

// Holdings returns what is left in every wallet after the last Match call,
// sorted by asset. Assets whose wallet is empty are omitted.
func (m *Matcher) Holdings() []Holding {
	var hs []Holding
	for _, asset := range slices.Sorted(maps.Keys(m.wallets)) {
		w := m.wallets[asset]
		if len(w.open()) == 0 {
			continue
		}
		h := Holding{Asset: asset, Quantity: w.quantity(), CostBasis: EUR(0)}
		for _, l := range w.open() {
			h.CostBasis = h.CostBasis.Add(l.UnitCost.Mul(l.Quantity))
		}
		hs = append(hs, h)
	}
	return hs
}

// Lots returns the open lots of an asset after the last Match call, oldest first.
func (m *Matcher) Lots(asset string) []Lot {
	w, ok := m.wallets[asset]
	if !ok {
		return nil
	}
	lots := make([]Lot, 0, len(w.open()))
	for _, l := range w.open() {
		lots = append(lots, Lot(l))
	}
	return lots
}
