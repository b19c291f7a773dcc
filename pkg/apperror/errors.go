package apperror

import (
	"fmt"
	"net/http"
	"strings"
)

// Error codes carried by AppError.
const (
	CodeValidation      = "VAL_001"
	CodeCartEmpty       = "VAL_002"
	CodeMissingAddress  = "VAL_003"
	CodeNonUSAddress    = "VAL_004"
	CodeInvalidZip      = "VAL_005"
	CodeUnsupportedCoin = "VAL_006"
	CodeRateUnavailable = "UPSTREAM_001"
	CodeGeocodeFailed   = "UPSTREAM_002"
	CodeWebhookDelivery = "UPSTREAM_003"
	CodeRateLimited     = "RATE_001"
	CodeOrderNotFound   = "NOT_FOUND_001"
	CodeInternal        = "SYS_001"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a generic 400 with the given message.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrCartEmpty() *AppError {
	return New(CodeCartEmpty, "Cart is empty.", http.StatusBadRequest)
}

func ErrMissingAddressFields() *AppError {
	return New(CodeMissingAddress, "Missing address fields.", http.StatusBadRequest)
}

func ErrNonUSAddress() *AppError {
	return New(CodeNonUSAddress, "We currently only ship within the United States.", http.StatusBadRequest)
}

func ErrInvalidZip() *AppError {
	return New(CodeInvalidZip, "Invalid USA ZIP code format.", http.StatusBadRequest)
}

func ErrUnsupportedCoin() *AppError {
	return New(CodeUnsupportedCoin, "Unsupported coin.", http.StatusBadRequest)
}

// ---- Upstream providers (UPSTREAM) ----

// ErrRateUnavailable reports a failed spot-rate lookup for a coin. The coin
// symbol is included so the client knows which quote was missing.
func ErrRateUnavailable(coin string) *AppError {
	return New(
		CodeRateUnavailable,
		fmt.Sprintf("Unable to fetch live crypto rates for %s. Try again.", strings.ToUpper(coin)),
		http.StatusBadGateway,
	)
}

// ErrGeocodeFailed reports a failed or empty geocoder response. The shipping
// surface treats this as a client-addressable problem, hence 400.
func ErrGeocodeFailed() *AppError {
	return New(CodeGeocodeFailed, "Unable to geocode address.", http.StatusBadRequest)
}

func ErrWebhookDelivery(err error) *AppError {
	return Wrap(CodeWebhookDelivery, "Unable to send webhook.", http.StatusInternalServerError, err)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- Not found (NOT_FOUND) ----

func ErrOrderNotFound() *AppError {
	return New(CodeOrderNotFound, "Order not found.", http.StatusNotFound)
}

// ---- System (SYS) ----

// InternalError wraps an unexpected error as a 500.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}
