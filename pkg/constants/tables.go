package constants

// Table short names exposed to the UI and the backing tables they map to
const (
	TableRandom        = "table1"
	TableData          = "table2"
	BackendTableRandom = "t_random"
	BackendTableData   = "t_data"
)
