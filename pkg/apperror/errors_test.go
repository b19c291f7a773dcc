package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := New("VAL_001", "bad input", http.StatusBadRequest)
	assert.Equal(t, "[VAL_001] bad input", err.Error())

	wrapped := Wrap("SYS_001", "boom", http.StatusInternalServerError, errors.New("inner"))
	assert.Equal(t, "[SYS_001] boom: inner", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := InternalError(inner)
	assert.ErrorIs(t, err, inner)
}

func TestErrRateUnavailable_NamesCoin(t *testing.T) {
	err := ErrRateUnavailable("btc")
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
	assert.Contains(t, err.Message, "BTC")
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{ErrCartEmpty(), http.StatusBadRequest},
		{ErrMissingAddressFields(), http.StatusBadRequest},
		{ErrNonUSAddress(), http.StatusBadRequest},
		{ErrInvalidZip(), http.StatusBadRequest},
		{ErrUnsupportedCoin(), http.StatusBadRequest},
		{ErrGeocodeFailed(), http.StatusBadRequest},
		{ErrRateUnavailable("eth"), http.StatusBadGateway},
		{ErrRateLimitExceeded(), http.StatusTooManyRequests},
		{ErrOrderNotFound(), http.StatusNotFound},
		{ErrWebhookDelivery(errors.New("timeout")), http.StatusInternalServerError},
		{InternalError(errors.New("x")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus, tt.err.Code)
	}
}
