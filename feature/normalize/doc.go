// Package normalize cleans raw worksheets into dataset tables.
//
// Header cells are lower-cased, spaces become underscores and apostrophes are
// removed. Column kinds are inferred from names:
//
//   - the soft-delete column and names starting with "is_" or "has_" are booleans;
//   - names containing "date" are dates (unparseable values become null);
//   - everything else is text, and identifier-like columns are trimmed.
//
// Rows without an identifier are dropped and duplicate identifiers keep the
// last row, so every table handed to the orchestrator has unique, non-null ids.
package normalize
