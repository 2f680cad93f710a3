package cryptotax

import "github.com/etnz/cryptotax/date"

// Record is one normalized ledger entry.
//
// Amounts are never negative: the direction is given by the Outgoing and
// Incoming sides. An empty asset means the side is unused.
type Record struct {
	Date           date.Date `json:"date"`
	Category       Category  `json:"category"`
	OutgoingAsset  string    `json:"outgoingAsset,omitempty"`
	OutgoingAmount Quantity  `json:"outgoingAmount"`
	IncomingAsset  string    `json:"incomingAsset,omitempty"`
	IncomingAmount Quantity  `json:"incomingAmount"`
	FeeAsset       string    `json:"feeAsset,omitempty"`
	FeeAmount      Quantity  `json:"feeAmount"`

	// passthrough fields, never interpreted.
	TxID        string `json:"id,omitempty"`
	Integration string `json:"integration,omitempty"`
	Comment     string `json:"comment,omitempty"`
	SourceType  string `json:"sourceType,omitempty"`
	SourceName  string `json:"sourceName,omitempty"`
}

// Equal reports whether both records carry exactly the same values.
func (r Record) Equal(o Record) bool {
	return r.Date == o.Date &&
		r.Category == o.Category &&
		r.OutgoingAsset == o.OutgoingAsset &&
		r.OutgoingAmount.Equal(o.OutgoingAmount) &&
		r.IncomingAsset == o.IncomingAsset &&
		r.IncomingAmount.Equal(o.IncomingAmount) &&
		r.FeeAsset == o.FeeAsset &&
		r.FeeAmount.Equal(o.FeeAmount) &&
		r.TxID == o.TxID &&
		r.Integration == o.Integration &&
		r.Comment == o.Comment &&
		r.SourceType == o.SourceType &&
		r.SourceName == o.SourceName
}

// IsWithdrawal reports whether the record is a fiat cash-out: a non-taxable
// movement of euros out of the exchange.
func (r Record) IsWithdrawal() bool {
	return r.Category == NonTaxable && r.OutgoingAsset == Fiat
}

// shape is the way a trade record moves assets.
type shape int

const (
	shapeUnknown     shape = iota
	shapeAcquisition       // EUR -> crypto
	shapeSale              // crypto -> EUR
	shapeSwap              // crypto -> crypto
)

func (r Record) shape() shape {
	switch {
	case r.OutgoingAsset == Fiat && r.IncomingAsset != "":
		return shapeAcquisition
	case r.IncomingAsset == Fiat && r.OutgoingAsset != "":
		return shapeSale
	case r.OutgoingAsset != "" && r.IncomingAsset != "":
		return shapeSwap
	default:
		return shapeUnknown
	}
}
