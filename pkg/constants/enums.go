package constants

// ColumnType represents the storage type of a registry column
type ColumnType string

const (
	ColumnTypeInt   ColumnType = "int"
	ColumnTypeFloat ColumnType = "float"
	ColumnTypeText  ColumnType = "text"
)

// SortDirection values accepted from the table UI
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Pattern match values accepted by the export endpoint
const (
	PatternMatchLike  = "like"
	PatternMatchExact = "exact"
)

// Database drivers supported by the connection layer
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)
