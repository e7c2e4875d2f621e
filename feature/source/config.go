package source

// Config holds configuration for the spreadsheet source.
type Config struct {
	// Kind selects the source: "sheets" (Google Sheets API) or "workbook" (.xlsx file).
	Kind string `mapstructure:"kind" default:"sheets"`
	// CredentialsPath is the service account JSON key used for Google Sheets.
	CredentialsPath string `mapstructure:"credentials_path" default:"credentials.json"`
	// SpreadsheetID identifies the Google spreadsheet.
	SpreadsheetID string `mapstructure:"spreadsheet_id" default:""`
	// SheetIndices lists the zero-based worksheet positions to extract.
	SheetIndices []int `mapstructure:"sheet_indices" default:"0"`
	// WorkbookPath is a local .xlsx file.
	WorkbookPath string `mapstructure:"workbook_path" default:""`
	// WorkbookObject is an .xlsx object key in the storage bucket. It takes
	// precedence over WorkbookPath.
	WorkbookObject string `mapstructure:"workbook_object" default:""`
	// MaxRetries bounds the attempts for one Sheets API call when rate limited.
	MaxRetries int `mapstructure:"max_retries" default:"5"`
	// MaxBackoffSeconds caps the wait between two attempts.
	MaxBackoffSeconds int `mapstructure:"max_backoff_seconds" default:"60"`
}
