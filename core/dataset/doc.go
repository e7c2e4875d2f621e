// Package dataset defines the in-memory shape of the rows being synchronized.
//
// A Table couples a name with a Schema (an ordered, typed column list built once
// from the normalized sheet header) and the rows that conform to it. Values are
// nil (NULL), string, time.Time (dates) or bool. Rows that do not conform to the
// schema are rejected at Append time, so downstream code never has to
// re-validate types.
//
// Tables are ephemeral: they are built for one run and discarded afterwards.
package dataset
