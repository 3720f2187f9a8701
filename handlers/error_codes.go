package handlers

import "net/http"

// error_codes.go: the cart/order error taxonomy and its HTTP mapping.

const (
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeForbidden         = "FORBIDDEN"
	CodeValidation        = "VALIDATION"
	CodePriceMissing      = "PRICE_MISSING"
	CodeTrackIDRequired   = "TRACK_ID_REQUIRED"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeConnection        = "CONNECTION"
	CodeExternal          = "EXTERNAL"
	CodeInternal          = "INTERNAL"
)

// StatusForCode maps an AppError.Code to the HTTP status the API surface
// responds with. Unknown codes fall back to 500.
func StatusForCode(code string) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodePriceMissing, CodeTrackIDRequired, CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case CodeConnection, CodeExternal, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError builds an AppError with the given taxonomy code.
func NewAppError(code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
