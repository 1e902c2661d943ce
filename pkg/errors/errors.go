package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the base interface for all application errors
type AppError interface {
	error
	HTTPStatus() int
	Code() string
}

// Reason narrows an error kind down to the specific rule that was violated
type Reason string

const (
	ReasonAmbiguousOperator    Reason = "AMBIGUOUS_OPERATOR"
	ReasonEmptyColumns         Reason = "EMPTY_COLUMNS"
	ReasonEmptyTerms           Reason = "EMPTY_TERMS"
	ReasonInvalidMode          Reason = "INVALID_MODE"
	ReasonInvalidOperator      Reason = "INVALID_OPERATOR"
	ReasonInvalidSortDirection Reason = "INVALID_SORT_DIRECTION"
	ReasonUnknownSortColumn    Reason = "UNKNOWN_SORT_COLUMN"
	ReasonUnsafeStatement      Reason = "UNSAFE_STATEMENT"
)

// InputError represents malformed search syntax
type InputError struct {
	Reason  Reason
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *InputError) HTTPStatus() int {
	return http.StatusBadRequest
}

func (e *InputError) Code() string {
	return "INPUT_ERROR"
}

// NewInputError creates a new InputError
func NewInputError(reason Reason, message string) *InputError {
	return &InputError{Reason: reason, Message: message}
}

// QueryError represents invalid predicate or query parameters
type QueryError struct {
	Reason  Reason
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid query: %s", e.Message)
}

func (e *QueryError) HTTPStatus() int {
	return http.StatusBadRequest
}

func (e *QueryError) Code() string {
	return "QUERY_ERROR"
}

// NewQueryError creates a new QueryError
func NewQueryError(reason Reason, message string) *QueryError {
	return &QueryError{Reason: reason, Message: message}
}

// InvalidTableError represents a table short name that is not in the registry
type InvalidTableError struct {
	Table string
}

func (e *InvalidTableError) Error() string {
	return fmt.Sprintf("invalid table '%s'", e.Table)
}

func (e *InvalidTableError) HTTPStatus() int {
	return http.StatusBadRequest
}

func (e *InvalidTableError) Code() string {
	return "INVALID_TABLE"
}

// NewInvalidTableError creates a new InvalidTableError
func NewInvalidTableError(table string) *InvalidTableError {
	return &InvalidTableError{Table: table}
}

// ValidationError represents invalid input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

func (e *ValidationError) Code() string {
	return "VALIDATION_ERROR"
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DatabaseError represents a connection or execution failure
type DatabaseError struct {
	Op    string
	Cause error
}

func (e *DatabaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("database error during %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("database error during %s", e.Op)
}

func (e *DatabaseError) HTTPStatus() int {
	return http.StatusInternalServerError
}

func (e *DatabaseError) Code() string {
	return "DATABASE_ERROR"
}

func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(op string, cause error) *DatabaseError {
	return &DatabaseError{Op: op, Cause: cause}
}

// IOError represents a file system failure
type IOError struct {
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("io error on '%s': %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("io error on '%s'", e.Path)
}

func (e *IOError) HTTPStatus() int {
	return http.StatusInternalServerError
}

func (e *IOError) Code() string {
	return "IO_ERROR"
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

// NewIOError creates a new IOError
func NewIOError(path string, cause error) *IOError {
	return &IOError{Path: path, Cause: cause}
}

// InternalError represents unexpected server errors
type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal error: %s (caused by: %v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("internal error: %s", e.Message)
}

func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

func (e *InternalError) Code() string {
	return "INTERNAL_ERROR"
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{Message: message, Cause: cause}
}

// Helper functions for error checking

// IsInput checks if an error is an InputError
func IsInput(err error) bool {
	var input *InputError
	return errors.As(err, &input)
}

// IsQuery checks if an error is a QueryError
func IsQuery(err error) bool {
	var query *QueryError
	return errors.As(err, &query)
}

// IsInvalidTable checks if an error is an InvalidTableError
func IsInvalidTable(err error) bool {
	var table *InvalidTableError
	return errors.As(err, &table)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validation *ValidationError
	return errors.As(err, &validation)
}

// IsDatabase checks if an error is a DatabaseError
func IsDatabase(err error) bool {
	var db *DatabaseError
	return errors.As(err, &db)
}

// IsIO checks if an error is an IOError
func IsIO(err error) bool {
	var io *IOError
	return errors.As(err, &io)
}

// ReasonOf returns the Reason carried by an InputError or QueryError, or "" otherwise
func ReasonOf(err error) Reason {
	var input *InputError
	if errors.As(err, &input) {
		return input.Reason
	}
	var query *QueryError
	if errors.As(err, &query) {
		return query.Reason
	}
	return ""
}

// GetHTTPStatus returns the HTTP status code for an error
// Returns 500 if the error doesn't implement AppError
func GetHTTPStatus(err error) int {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// GetErrorCode returns the error code for an error
// Returns "UNKNOWN_ERROR" if the error doesn't implement AppError
func GetErrorCode(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}
	return "UNKNOWN_ERROR"
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ToResponse converts an error to an ErrorResponse
func ToResponse(err error) ErrorResponse {
	return ErrorResponse{
		Code:    GetErrorCode(err),
		Message: err.Error(),
	}
}
