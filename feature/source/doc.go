// Package source extracts worksheets from a spreadsheet as raw text tables.
//
// Two sources are available:
//
//   - SheetsSource reads a Google spreadsheet through the Sheets v4 API with a
//     service account key, retrying with exponential backoff when rate limited.
//   - WorkbookSource reads an .xlsx workbook with excelize, either from a local
//     path or from an object in the storage bucket.
//
// Both select worksheets by zero-based position. The first row of each
// worksheet is its header; records shorter than the header are padded.
// Failing to open the spreadsheet aborts extraction, while a single unreadable
// worksheet is logged and skipped.
package source
