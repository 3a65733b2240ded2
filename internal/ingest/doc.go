// SPDX-License-Identifier: MIT

// Package ingest reads the files a pair-research session produces and turns
// them into engine input. It is the validation boundary for tabular data:
// nothing past this package sees a malformed row.
//
// Supported inputs:
//
//   - Edge files: a list of [a, b, weight] triples, as JSONC (JSON with
//     comments and trailing commas) or YAML.
//   - Rating matrices: CSV with a header of participant names; row i holds
//     what participant i gave everyone else. Empty cells count as zero.
//   - Rosters: CSV with name and request columns.
package ingest
