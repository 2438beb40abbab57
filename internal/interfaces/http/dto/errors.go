package dto

import "net/http"

// API error codes, format ERR_<CATEGORY>[_<DETAIL>]. Clients switch on
// these; the HTTP status is derived from them via GetHTTPStatus.

const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

const (
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	ErrCodeValidationFormat   = "ERR_VALIDATION_FORMAT"
	ErrCodeValidationRange    = "ERR_VALIDATION_RANGE"
	ErrCodeValidationLength   = "ERR_VALIDATION_LENGTH"
)

const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

const (
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
)

const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps every API error code to its HTTP status.
// Validation and input problems answer 400, business rule violations 422.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the status for an API error code, or 500 when the
// code is not recognized
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping translates the codes raised by the domain layer
// into API error codes. Domain code stays free to use precise codes like
// INVALID_QUANTITY; clients only ever see the ERR_* vocabulary.
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INSUFFICIENT_STOCK":   ErrCodeInsufficientStock,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,

	// field-level validation raised by aggregates and services
	"INVALID_NAME":         ErrCodeInvalidInput,
	"INVALID_UNIT":         ErrCodeInvalidInput,
	"INVALID_THRESHOLD":    ErrCodeInvalidInput,
	"INVALID_QUANTITY":     ErrCodeInvalidInput,
	"INVALID_PRICE":        ErrCodeInvalidInput,
	"INVALID_EXPIRY":       ErrCodeInvalidInput,
	"INVALID_SUPPLIER":     ErrCodeInvalidInput,
	"INVALID_INGREDIENT":   ErrCodeInvalidInput,
	"INVALID_REASON":       ErrCodeInvalidInput,
	"INVALID_WINDOW":       ErrCodeInvalidInput,
	"INVALID_STATUS":       ErrCodeInvalidInput,
	"INVALID_NUMBER":       ErrCodeInvalidInput,
	"INVALID_CAPACITY":     ErrCodeInvalidInput,
	"INVALID_USERNAME":     ErrCodeInvalidInput,
	"INVALID_PASSWORD":     ErrCodeInvalidInput,
	"INVALID_ROLE":         ErrCodeInvalidInput,
	"EMPTY_IMPORT":         ErrCodeInvalidInput,
	"EMPTY_EXPORT":         ErrCodeInvalidInput,
	"DUPLICATE_INGREDIENT": ErrCodeInvalidInput,

	// business and infrastructure codes
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"USERNAME_TAKEN":      ErrCodeAlreadyExists,
	"NOT_DELETED":         ErrCodeInvalidState,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,
	"QR_ENCODE_ERROR":     ErrCodeInternal,
}

// NormalizeErrorCode maps a domain code to its API code, passing through
// codes that are already in the ERR_* vocabulary or unknown
func NormalizeErrorCode(code string) string {
	if apiCode, ok := LegacyErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
