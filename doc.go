// Package balancelog turns free-form, pasted crypto-exchange balance-log
// exports into structured transaction rows, classified and summed by asset
// and transaction kind.
//
// The core functionalities include:
//   - Tolerant Parsing: delimiter and schema detection over a raw text blob,
//     followed by line-by-line parsing that degrades to per-line diagnostics
//     instead of failing.
//   - Kind Normalization: free-text transaction-type labels are mapped to a
//     fixed taxonomy (realized P&L, fees, transfers, swaps, event contracts)
//     through an ordered keyword cascade; unrecognized labels are preserved
//     verbatim.
//   - Aggregation: per-asset, per-kind and per-symbol totals, plus the
//     pairing of coin-swap and auto-exchange legs back into single atomic
//     conversions.
//   - Audit: a baseline of per-asset balances, an optional anchor transfer,
//     and a roll-forward of all activity after the anchor into final
//     balances.
//
// All amounts are decimal values; no floating-point money arithmetic occurs
// anywhere in the package. The engine is a pure in-memory transform: it
// performs no I/O, holds no state between calls, and never panics across
// its boundary. It is the foundational logic for the `blg` command-line
// tool.
package balancelog
