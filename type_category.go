package cryptotax

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the semantic class of a ledger record.
type Category int

const (
	// Other is any record no rule could classify.
	Other Category = iota
	// Trade exchanges one asset against another (fiat or crypto).
	Trade
	// Deposit brings an asset in from outside the exchange.
	Deposit
	// Withdrawal sends an asset out of the exchange.
	Withdrawal
	// Staking is a reward received for staking.
	Staking
	// InternalTransfer moves an asset between accounts of the same user.
	InternalTransfer
	// NonTaxable is an explicitly non-taxable movement, like a fiat cash-out.
	NonTaxable
)

var categoryNames = map[Category]string{
	Other:            "Other",
	Trade:            "Trade",
	Deposit:          "Deposit",
	Withdrawal:       "Withdrawal",
	Staking:          "Staking",
	InternalTransfer: "Internal Transfer",
	NonTaxable:       "Non-taxable",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "unknown"
}

// Taxable reports whether records of this category are subject to income tax on
// capital gains. Only trades are.
func (c Category) Taxable() bool { return c == Trade }

// ParseCategory parses the name of a category, as returned by String.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return Other, fmt.Errorf("unknown category: %q", s)
}

func (c Category) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// classificationRules are tried in order, a label can match several of them.
var classificationRules = []struct {
	substr   string
	category Category
}{
	{"trade", Trade},
	{"deposit", Deposit},
	{"withdrawal", Withdrawal},
	{"staking", Staking},
	{"auto balance", InternalTransfer},
	{"non-taxable", NonTaxable},
}

// Classify assigns a category to a free-text exchange label, using a
// case-insensitive substring match. The first matching rule wins.
//
// This is the adapter used at ingestion time; the rest of the package only
// relies on the resulting Category.
func Classify(label string) Category {
	label = strings.ToLower(label)
	for _, r := range classificationRules {
		if strings.Contains(label, r.substr) {
			return r.category
		}
	}
	return Other
}
