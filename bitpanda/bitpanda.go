// Package bitpanda normalizes Bitpanda CSV exports into a cryptotax ledger.
package bitpanda

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/date"
	"go.uber.org/zap"
)

// Columns of a Bitpanda export used to build a record.
const (
	ColDate           = "Date (UTC)"
	ColIntegration    = "Integration Name"
	ColLabel          = "Label"
	ColOutgoingAsset  = "Outgoing Asset"
	ColOutgoingAmount = "Outgoing Amount"
	ColIncomingAsset  = "Incoming Asset"
	ColIncomingAmount = "Incoming Amount"
	ColFeeAsset       = "Fee Asset (optional)"
	ColFeeAmount      = "Fee Amount (optional)"
	ColComment        = "Comment (optional)"
	ColTxID           = "Trx. ID (optional)"
	ColSourceType     = "Source Type"
	ColSourceName     = "Source Name"
)

// Columns lists every column an export must carry.
var Columns = []string{
	ColDate, ColIntegration, ColLabel, ColOutgoingAsset, ColOutgoingAmount,
	ColIncomingAsset, ColIncomingAmount, ColFeeAsset, ColFeeAmount,
	ColComment, ColTxID, ColSourceType, ColSourceName,
}

// ErrMissingColumn is returned when an export lacks one of Columns.
var ErrMissingColumn = errors.New("missing column")

// dateLayouts are tried in order. Exports write the day first.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
}

// Decoder reads one Bitpanda export.
type Decoder struct {
	log  *zap.Logger
	name string
}

// NewDecoder creates a decoder, name identifies the export in errors and logs.
func NewDecoder(name string, log *zap.Logger) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Decoder{log: log.With(zap.String("file", name)), name: name}
}

// Decode reads a `;` separated export and returns its records in file order.
//
// Invalid or missing amounts are read as zero, they never fail the export.
// An unreadable date does, since the record could not be ordered.
func (d *Decoder) Decode(r io.Reader) ([]cryptotax.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read header of %s: %w", d.name, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range Columns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("%s: %w %q", d.name, ErrMissingColumn, c)
		}
	}

	var records []cryptotax.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", d.name, line, err)
		}
		field := func(col string) string {
			if i := index[col]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		if strings.Join(row, "") == "" {
			continue
		}

		on, err := parseDate(field(ColDate))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", d.name, line, err)
		}
		rec := cryptotax.Record{
			Date:           on,
			Category:       cryptotax.Classify(field(ColLabel)),
			OutgoingAsset:  field(ColOutgoingAsset),
			OutgoingAmount: d.amount(line, ColOutgoingAmount, field(ColOutgoingAmount)),
			IncomingAsset:  field(ColIncomingAsset),
			IncomingAmount: d.amount(line, ColIncomingAmount, field(ColIncomingAmount)),
			FeeAsset:       field(ColFeeAsset),
			FeeAmount:      d.amount(line, ColFeeAmount, field(ColFeeAmount)),
			TxID:           field(ColTxID),
			Integration:    field(ColIntegration),
			Comment:        field(ColComment),
			SourceType:     field(ColSourceType),
			SourceName:     field(ColSourceName),
		}
		if rec.Category == cryptotax.Trade && rec.OutgoingAsset == "" && rec.IncomingAsset == "" {
			d.log.Warn("trade without asset, it will not be matched", zap.Int("line", line), zap.String("id", rec.TxID))
		}
		records = append(records, rec)
	}
	return records, nil
}

// amount parses a decimal amount, anything unreadable is zero.
func (d *Decoder) amount(line int, col, s string) cryptotax.Quantity {
	if s == "" {
		return cryptotax.Quantity{}
	}
	// decimal comma, when it is the only separator.
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	q, err := cryptotax.ParseQuantity(s)
	if err != nil {
		d.log.Debug("invalid amount read as zero", zap.Int("line", line), zap.String("column", col), zap.String("value", s))
		return cryptotax.Quantity{}
	}
	// the direction is carried by the column, not the sign.
	if q.IsNegative() {
		d.log.Debug("negative amount read as its absolute value", zap.Int("line", line), zap.String("column", col), zap.String("value", s))
		q = cryptotax.Quantity{}.Sub(q)
	}
	return q
}

func parseDate(s string) (date.Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return date.Of(t), nil
		}
	}
	return date.Date{}, fmt.Errorf("invalid date %q", s)
}

// Load decodes several exports, merges them in chronological order (stable)
// and removes duplicates. The result satisfies the matching preconditions.
func Load(log *zap.Logger, paths ...string) (*cryptotax.Ledger, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ledger := cryptotax.NewLedger()
	for _, path := range paths {
		records, err := decodeFile(path, log)
		if err != nil {
			return nil, err
		}
		ledger.Append(records...)
	}
	ledger.Sort()
	if n := ledger.Dedupe(); n > 0 {
		log.Debug("removed duplicate records", zap.Int("count", n))
	}
	return ledger, nil
}

func decodeFile(path string, log *zap.Logger) ([]cryptotax.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open export: %w", err)
	}
	defer f.Close()
	return NewDecoder(path, log).Decode(f)
}
