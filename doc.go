// Package cryptotax computes the realized capital gains of cryptocurrency
// disposals for personal tax reporting, and the tax due on them.
//
// The core functionalities include:
//   - Ledger: an ordered list of normalized, classified records. Matching
//     requires chronological order, see Ledger.Sort and Ledger.Validate.
//   - FIFO Matching: a Matcher keeps one queue of lots per asset, consumes
//     acquisitions and disposals in order and produces one Disposal per sale
//     or crypto-for-crypto swap.
//   - Tax Assessment: a progressive marginal Schedule turns a net gain into
//     the tax owed.
//   - Withdrawal Correlation: Correlate relates disposals to the euros cashed
//     out of the exchange.
//   - Reports: NewReport runs the whole pipeline for a fiscal year.
//
// Parsing exchange exports lives in the bitpanda package, rendering in the
// renderer package. This package serves as the foundational logic for the
// `ctax` command-line tool.
package cryptotax
