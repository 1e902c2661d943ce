package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"Input", NewInputError(ReasonAmbiguousOperator, "both + and |"), http.StatusBadRequest, "INPUT_ERROR"},
		{"Query", NewQueryError(ReasonEmptyTerms, "no terms"), http.StatusBadRequest, "QUERY_ERROR"},
		{"InvalidTable", NewInvalidTableError("table9"), http.StatusBadRequest, "INVALID_TABLE"},
		{"Validation", NewValidationError("start", "not a number"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"Database", NewDatabaseError("count", fmt.Errorf("conn refused")), http.StatusInternalServerError, "DATABASE_ERROR"},
		{"IO", NewIOError("data_dir/x.csv", fmt.Errorf("disk full")), http.StatusInternalServerError, "IO_ERROR"},
		{"Plain", fmt.Errorf("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.err))
			assert.Equal(t, tt.code, GetErrorCode(tt.err))
		})
	}
}

func TestWrappedErrorsAreDetected(t *testing.T) {
	wrapped := fmt.Errorf("export failed: %w", NewIOError("x.csv", fmt.Errorf("denied")))
	assert.True(t, IsIO(wrapped))
	assert.False(t, IsDatabase(wrapped))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(wrapped))

	q := fmt.Errorf("page: %w", NewQueryError(ReasonInvalidSortDirection, "bad dir"))
	assert.True(t, IsQuery(q))
	assert.Equal(t, ReasonInvalidSortDirection, ReasonOf(q))
	assert.Equal(t, Reason(""), ReasonOf(fmt.Errorf("plain")))
}

func TestToResponse(t *testing.T) {
	resp := ToResponse(NewInvalidTableError("nope"))
	assert.Equal(t, "INVALID_TABLE", resp.Code)
	assert.Equal(t, "invalid table 'nope'", resp.Message)
}
