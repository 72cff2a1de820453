package dto

import "net/http"

// Error codes returned in the response envelope. Domain errors carry these
// codes directly; the handler layer only maps them to HTTP statuses.
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"

	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"

	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"

	ErrCodeInvalidState      = "INVALID_STATE"
	ErrCodeHasDependents     = "HAS_DEPENDENTS"
	ErrCodeDependencyFailure = "DEPENDENCY_FAILURE"

	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Codes produced
// by domain validation (INVALID_*, PASSWORD_MISMATCH, UPLOAD_NOT_FOUND, ...)
// are listed explicitly; anything unknown is treated as a 400-class domain
// rejection rather than a server fault.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	ErrCodeNotFound:        http.StatusNotFound,
	"UPLOAD_NOT_FOUND":     http.StatusNotFound,
	ErrCodeAlreadyExists:   http.StatusConflict,
	ErrCodeConflict:        http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	ErrCodeInvalidState:  http.StatusUnprocessableEntity,
	ErrCodeHasDependents: http.StatusUnprocessableEntity,

	ErrCodeDependencyFailure: http.StatusInternalServerError,

	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	"INVALID_INPUT":      http.StatusBadRequest,
	"INVALID_EMAIL":      http.StatusBadRequest,
	"INVALID_PASSWORD":   http.StatusBadRequest,
	"PASSWORD_MISMATCH":  http.StatusBadRequest,
	"INVALID_ROLE":       http.StatusBadRequest,
	"INVALID_NAME":       http.StatusBadRequest,
	"INVALID_TITLE":      http.StatusBadRequest,
	"INVALID_SLUG":       http.StatusBadRequest,
	"INVALID_CONTENT":    http.StatusBadRequest,
	"INVALID_PARENT":     http.StatusBadRequest,
	"INVALID_CATEGORY":   http.StatusBadRequest,
	"INVALID_SCHEDULE":   http.StatusBadRequest,
	"INVALID_MEDIA_TYPE": http.StatusBadRequest,
	"INVALID_ISSUE":      http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status for an error code. Unmapped codes
// default to 400: every unexpected-failure path sets a mapped code.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
