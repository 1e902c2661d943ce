package models

import (
	"time"

	"github.com/nexuscrm/datatable/internal/domain/tables"
)

// PageRequest is one server-side processing request from the table UI
type PageRequest struct {
	Start           uint64
	Length          uint64
	Draw            int64
	SortColumnIndex string // "0".."n-1"
	SortDirection   string // asc, desc
	Search          string
	ExactSearch     string // "true" or "false"
	Table           string // registry short name
}

// PageResponse is the JSON body returned for a PageRequest
type PageResponse struct {
	Data            []tables.Record `json:"data"`
	Draw            int64           `json:"draw"`
	RecordsFiltered int64           `json:"recordsFiltered"`
	RecordsTotal    int64           `json:"recordsTotal"`
}

// ExportRequest asks for every row matching a search to be written to CSV
type ExportRequest struct {
	SearchString string `json:"search_string"`
	TableName    string `json:"table_name"`
	PatternMatch string `json:"pattern_match"` // like, exact
}

// ExportResult describes a finished CSV export
type ExportResult struct {
	FilePath string
	Rows     int
	Elapsed  time.Duration
}

// ElapsedSeconds returns Elapsed as fractional seconds
func (r ExportResult) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// ExportResponse is the JSON body returned by the export endpoint
type ExportResponse struct {
	Message            string  `json:"message"`
	Status             int     `json:"status"`
	Rows               int     `json:"rows"`
	TimeTakenForExport float64 `json:"time_taken_for_export"`
}

// TableInfo describes a registry table for listing
type TableInfo struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}
