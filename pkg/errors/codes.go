package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeValidation         ErrorCode = "COMMON_006"
	ErrCodeSerialization      ErrorCode = "COMMON_007"
	ErrCodeDatabaseError      ErrorCode = "COMMON_008"
	ErrCodeCacheError         ErrorCode = "COMMON_009"
)

// Calendar module error codes
const (
	// ErrCodeCalendarNotFound: no CourtCalendar exists for the requested
	// (tribunal code, year) pair. The computation fails before it starts.
	ErrCodeCalendarNotFound ErrorCode = "CAL_001"

	// ErrCodeCalendarInvalid: a calendar row violates its own invariants
	// (overlapping suspension ranges, year mismatch).
	ErrCodeCalendarInvalid ErrorCode = "CAL_002"
)

// Catalog module error codes
const (
	// ErrCodeCatalogEntryNotFound: no DeadlineCatalogEntry with the given code.
	ErrCodeCatalogEntryNotFound ErrorCode = "CAT_001"

	// ErrCodeCatalogEntryInvalid: a catalog entry fails validation on seed.
	ErrCodeCatalogEntryInvalid ErrorCode = "CAT_002"
)

// Engine module error codes
const (
	// ErrCodeInvalidServiceMethod: the intimation/service method is not in the
	// service-method rule table.
	ErrCodeInvalidServiceMethod ErrorCode = "ENG_001"

	// ErrCodeInvalidPartyComposition: a party record is missing its pole or
	// type, or carries an unknown enumeration value.
	ErrCodeInvalidPartyComposition ErrorCode = "ENG_002"

	// ErrCodeInvalidComputationInput: malformed trigger date, negative day
	// count override, unknown counting mode.
	ErrCodeInvalidComputationInput ErrorCode = "ENG_003"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,

	ErrCodeCalendarNotFound:     http.StatusNotFound,
	ErrCodeCalendarInvalid:      http.StatusUnprocessableEntity,
	ErrCodeCatalogEntryNotFound: http.StatusNotFound,
	ErrCodeCatalogEntryInvalid:  http.StatusUnprocessableEntity,

	ErrCodeInvalidServiceMethod:    http.StatusBadRequest,
	ErrCodeInvalidPartyComposition: http.StatusBadRequest,
	ErrCodeInvalidComputationInput: http.StatusBadRequest,
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}
