// Package cartera values a personal portfolio of crypto-assets, Argentine
// stocks ("Acciones") and depositary receipts ("CEDEARs") recorded in USD or
// ARS, converting between the two through the CCL exchange rate.
//
// The core functionalities include:
//   - Records: plain purchase records (RawPosition) persisted as JSONL, one
//     record per line, in a human-readable and version-controllable file.
//   - Keys: a single resolver (KeyOf) that turns an asset type and ticker into
//     the key used for market prices, cost buckets and merged positions alike.
//   - Valuation: a stateless engine (Evaluate) that merges records into pooled
//     positions with a quantity-weighted average cost, values them against a
//     price table in a single display currency, sorts them and computes the
//     portfolio totals and allocations.
//   - Price book: an atomically swapped snapshot of market prices and rate, so
//     that feeds can refresh it while evaluations keep reading a consistent view.
//   - Export: a stable tabular projection of the valued rows for CSV export.
//
// Evaluate never fails: a missing price marks a row as pending, a missing rate
// leaves values in their native currency, and invalid records contribute
// nothing to ratios.
//
// This package serves as the foundational logic for the `cartera` command-line
// tool.
package cartera
