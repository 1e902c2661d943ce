package rest

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/nexuscrm/datatable/pkg/errors"
)

// RespondAppError sends a standardised JSON error response using pkg/errors
func RespondAppError(c *gin.Context, err error) {
	code := errors.GetHTTPStatus(err)
	errorCode := errors.GetErrorCode(err)
	message := err.Error()

	if code >= 500 {
		log.Printf("❌ ERROR [%d] %s %s: %s", code, c.Request.Method, c.Request.URL.Path, message)
	}

	c.JSON(code, gin.H{
		constants.ResponseError: message,
		constants.FieldMessage:  message,
		"code":                  errorCode,
		"data":                  nil,
	})
}

// postFormUint reads an optional non-negative integer form field.
// A missing or empty field yields zero.
func postFormUint(c *gin.Context, key string) (uint64, error) {
	raw := c.PostForm(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError(key, "must be a non-negative integer")
	}
	return n, nil
}

// postFormDefault reads a form field, substituting def when it is missing or empty
func postFormDefault(c *gin.Context, key, def string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return def
}
