package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything NewRouter mounts
type Handlers struct {
	Table     *TableHandler
	Export    *ExportHandler
	ExportDir string
	// ExportLimit guards /export_csv; nil disables it
	ExportLimit gin.HandlerFunc
	Middleware  []gin.HandlerFunc
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(h Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(h.Middleware...)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"server": "golang",
		})
	})

	router.GET("/tables", h.Table.ListTables)
	router.POST("/query", h.Table.Query)

	exportChain := []gin.HandlerFunc{}
	if h.ExportLimit != nil {
		exportChain = append(exportChain, h.ExportLimit)
	}
	router.POST("/export_csv", append(exportChain, h.Export.ExportCSV)...)

	// Finished exports are downloaded from here
	router.StaticFS("/data_dir", gin.Dir(h.ExportDir, true))

	return router
}
