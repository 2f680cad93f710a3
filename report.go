package cryptotax

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/cryptotax/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Report gathers everything computed for one fiscal year.
type Report struct {
	Year        int            `json:"year,omitempty"`
	Cutoff      date.Date      `json:"cutoff"`
	Records     int            `json:"records"`
	Outgoing    Quantity       `json:"outgoing"`
	Incoming    Quantity       `json:"incoming"`
	Disposals   []Disposal     `json:"disposals"`
	Assets      []AssetSummary `json:"assets"`
	Stats       Statistics     `json:"stats"`
	Holdings    []Holding      `json:"holdings"`
	Withdrawals Withdrawals    `json:"withdrawals"`
	TaxableGain Money          `json:"taxableGain"`
	Tax         Money          `json:"tax"`
}

// AssetSummary aggregates the disposals of one asset.
type AssetSummary struct {
	Asset        string          `json:"asset"`
	Quantity     Quantity        `json:"quantity"`
	Proceeds     Money           `json:"proceeds"`
	CostBasis    Money           `json:"costBasis"`
	Gain         Money           `json:"gain"`
	Fees         Money           `json:"fees"`
	AvgSalePrice Money           `json:"avgSalePrice"`
	AvgCostPrice Money           `json:"avgCostPrice"`
	GainShare    decimal.Decimal `json:"gainShare"` // percent of the total of positive gains
	LossShare    decimal.Decimal `json:"lossShare"` // percent of the total of losses
}

// Statistics describes the distribution of gains across disposals.
type Statistics struct {
	Total    Money `json:"total"`
	Count    int   `json:"count"`
	Average  Money `json:"average"`
	Max      Money `json:"max"`
	Min      Money `json:"min"`
	Positive int   `json:"positive"`
	Negative int   `json:"negative"`
}

// ReportOptions configures NewReport.
type ReportOptions struct {
	// Year is the fiscal year reported. Records after its last day are ignored,
	// earlier years still feed the lots. Zero keeps the whole ledger.
	Year int
	// Schedule defaults to Spain.
	Schedule Schedule
	Logger   *zap.Logger
}

// NewReport matches the ledger, correlates the disposals with withdrawals and
// assesses the tax due on the withdrawal-linked gain.
func NewReport(l *Ledger, opts ReportOptions) (*Report, error) {
	if opts.Schedule == nil {
		opts.Schedule = Spain
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := &Report{Year: opts.Year}
	if opts.Year != 0 {
		r.Cutoff = date.EndOfYear(opts.Year)
		l = l.Until(r.Cutoff)
	}
	r.Records = l.Len()
	r.Outgoing, r.Incoming = l.Totals()

	m := NewMatcher(WithLogger(opts.Logger))
	disposals, err := m.Match(l)
	if err != nil {
		return nil, fmt.Errorf("could not compute disposals: %w", err)
	}
	r.Disposals = disposals
	r.Holdings = m.Holdings()
	r.Assets = SummarizeAssets(disposals)
	r.Stats = NewStatistics(disposals)
	r.Withdrawals = Correlate(l, disposals)
	r.TaxableGain = TaxableBase(r.Withdrawals.Gain())
	r.Tax = opts.Schedule.Assess(r.TaxableGain)

	opts.Logger.Debug("report computed",
		zap.Int("year", opts.Year),
		zap.Int("records", r.Records),
		zap.Int("disposals", len(disposals)),
		zap.Int("withdrawals", r.Withdrawals.Count))
	return r, nil
}

var hundred = decimal.NewFromInt(100)

// SummarizeAssets aggregates disposals per asset, sorted by asset.
func SummarizeAssets(disposals []Disposal) []AssetSummary {
	byAsset := make(map[string]*AssetSummary)
	// shares are computed from the positive (resp. negative) disposals only.
	gains, losses := make(map[string]Money), make(map[string]Money)
	totalGains, totalLosses := EUR(0), EUR(0)
	for _, d := range disposals {
		s, ok := byAsset[d.Asset]
		if !ok {
			s = &AssetSummary{Asset: d.Asset, Proceeds: EUR(0), CostBasis: EUR(0), Gain: EUR(0), Fees: EUR(0)}
			byAsset[d.Asset] = s
		}
		s.Quantity = s.Quantity.Add(d.Quantity)
		s.Proceeds = s.Proceeds.Add(d.Proceeds)
		s.CostBasis = s.CostBasis.Add(d.CostBasis)
		s.Gain = s.Gain.Add(d.Gain)
		s.Fees = s.Fees.Add(d.Fee)
		switch {
		case d.Gain.IsPositive():
			gains[d.Asset] = gains[d.Asset].Add(d.Gain)
			totalGains = totalGains.Add(d.Gain)
		case d.Gain.IsNegative():
			losses[d.Asset] = losses[d.Asset].Add(d.Gain.Abs())
			totalLosses = totalLosses.Add(d.Gain.Abs())
		}
	}

	summaries := make([]AssetSummary, 0, len(byAsset))
	for _, asset := range slices.Sorted(maps.Keys(byAsset)) {
		s := byAsset[asset]
		s.AvgSalePrice = s.Proceeds.Div(s.Quantity)
		s.AvgCostPrice = s.CostBasis.Div(s.Quantity)
		s.GainShare = gains[asset].Ratio(totalGains).Mul(hundred)
		s.LossShare = losses[asset].Ratio(totalLosses).Mul(hundred)
		summaries = append(summaries, *s)
	}
	return summaries
}

// NewStatistics computes gain statistics over disposals.
func NewStatistics(disposals []Disposal) Statistics {
	s := Statistics{Total: EUR(0), Average: EUR(0), Max: EUR(0), Min: EUR(0), Count: len(disposals)}
	for i, d := range disposals {
		s.Total = s.Total.Add(d.Gain)
		if i == 0 || d.Gain.GreaterThan(s.Max) {
			s.Max = d.Gain
		}
		if i == 0 || d.Gain.LessThan(s.Min) {
			s.Min = d.Gain
		}
		switch {
		case d.Gain.IsPositive():
			s.Positive++
		case d.Gain.IsNegative():
			s.Negative++
		}
	}
	if s.Count > 0 {
		s.Average = s.Total.Div(Q(s.Count))
	}
	return s
}
