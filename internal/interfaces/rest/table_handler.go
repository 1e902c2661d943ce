package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexuscrm/datatable/internal/domain/models"
	"github.com/nexuscrm/datatable/pkg/constants"
)

// PageService defines the interface for table page operations
type PageService interface {
	GetPage(ctx context.Context, req models.PageRequest) (*models.PageResponse, error)
	ListTables() []models.TableInfo
}

// TableHandler serves the data table UI
type TableHandler struct {
	svc PageService
}

// NewTableHandler creates a new TableHandler
func NewTableHandler(svc PageService) *TableHandler {
	return &TableHandler{svc: svc}
}

// Query handles POST /query (form encoded, DataTables server-side processing)
func (h *TableHandler) Query(c *gin.Context) {
	req, err := bindPageRequest(c)
	if err != nil {
		RespondAppError(c, err)
		return
	}

	resp, err := h.svc.GetPage(c.Request.Context(), req)
	if err != nil {
		RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListTables handles GET /tables
func (h *TableHandler) ListTables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": h.svc.ListTables()})
}

func bindPageRequest(c *gin.Context) (models.PageRequest, error) {
	start, err := postFormUint(c, constants.FormStart)
	if err != nil {
		return models.PageRequest{}, err
	}
	length, err := postFormUint(c, constants.FormLength)
	if err != nil {
		return models.PageRequest{}, err
	}
	draw, err := postFormUint(c, constants.FormDraw)
	if err != nil {
		return models.PageRequest{}, err
	}

	return models.PageRequest{
		Start:           start,
		Length:          length,
		Draw:            int64(draw),
		SortColumnIndex: postFormDefault(c, constants.FormOrderColumn, constants.DefaultSortColumnIndex),
		SortDirection:   postFormDefault(c, constants.FormOrderDir, constants.DefaultSortDirection),
		Search:          c.PostForm(constants.FormSearchValue),
		ExactSearch:     c.PostForm(constants.FormExactSearch),
		Table:           c.PostForm(constants.FormTableName),
	}, nil
}
