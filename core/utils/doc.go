// Package utils provides conversion helpers for values scanned from database
// drivers, which disagree on how they return text and boolean columns.
package utils
