package constants

// Null-column defaults substituted by the row mapper
const (
	DefaultIntValue   int64   = 0
	DefaultFloatValue float64 = 0
	DefaultTextValue          = "N/A"
)

// NoFilterSentinel is sent by the table UI to request every row of a table
const NoFilterSentinel = "___"

// Defaults for configuration values that are not set
const (
	DefaultPort             = "5050"
	DefaultExportDir        = "data_dir"
	DefaultQueryTimeoutSecs = 30
	DefaultExportRetention  = "24h"
	DefaultSweepSchedule    = "@hourly"
	DefaultSortColumnIndex  = "0"
	DefaultSortDirection    = "asc"
)
