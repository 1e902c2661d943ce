package constants

// Form fields posted by the table UI (DataTables server-side processing)
const (
	FormDraw        = "draw"
	FormStart       = "start"
	FormLength      = "length"
	FormOrderColumn = "order[0][column]"
	FormOrderDir    = "order[0][dir]"
	FormSearchValue = "search[value]"
	FormExactSearch = "exactsearch"
	FormTableName   = "tablename"
)

// Response keys
const (
	ResponseError = "error"
	FieldMessage  = "message"
)

// InvalidPayloadBody is returned verbatim when an export request body cannot be decoded
const InvalidPayloadBody = `{"response":"invalid request, please check payload"}`
