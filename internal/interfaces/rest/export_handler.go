package rest

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexuscrm/datatable/internal/domain/models"
	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/nexuscrm/datatable/pkg/errors"
)

// ExportService defines the interface for CSV export operations
type ExportService interface {
	Export(ctx context.Context, req models.ExportRequest) (*models.ExportResult, error)
}

// ExportHandler handles CSV export requests
type ExportHandler struct {
	svc ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(svc ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// exportPayload mirrors models.ExportRequest with every field required.
// An empty search_string is valid; a missing one is not.
type exportPayload struct {
	SearchString *string `json:"search_string"`
	TableName    *string `json:"table_name"`
	PatternMatch *string `json:"pattern_match"`
}

func (p exportPayload) complete() bool {
	return p.SearchString != nil && p.TableName != nil && p.PatternMatch != nil
}

// ExportCSV handles POST /export_csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	var payload exportPayload
	if err := c.ShouldBindJSON(&payload); err != nil || !payload.complete() {
		c.Data(http.StatusBadRequest, "application/json", []byte(constants.InvalidPayloadBody))
		return
	}

	req := models.ExportRequest{
		SearchString: *payload.SearchString,
		TableName:    *payload.TableName,
		PatternMatch: *payload.PatternMatch,
	}
	log.Printf("Received export: search_string=%q table_name=%q pattern_match=%q", req.SearchString, req.TableName, req.PatternMatch)

	result, err := h.svc.Export(c.Request.Context(), req)
	if err != nil {
		status := errors.GetHTTPStatus(err)
		if status >= 500 {
			log.Printf("❌ ERROR [%d] %s %s: %v", status, c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(status, models.ExportResponse{
			Message: fmt.Sprintf("error : could not export CSV file : %v", err),
			Status:  status,
		})
		return
	}

	c.JSON(http.StatusOK, models.ExportResponse{
		Message:            result.FilePath,
		Status:             http.StatusOK,
		Rows:               result.Rows,
		TimeTakenForExport: result.ElapsedSeconds(),
	})
}
