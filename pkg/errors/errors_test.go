package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Unauthenticated("", nil), http.StatusUnauthorized},
		{Forbidden("", nil), http.StatusForbidden},
		{Validation("bad input", nil), http.StatusBadRequest},
		{NotFound("appointment", nil), http.StatusNotFound},
		{Conflict("already booked", nil), http.StatusConflict},
		{&AppError{Code: CodeRateLimited}, http.StatusTooManyRequests},
		{Internal(errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.StatusCode(), "code %s", tt.err.Code)
	}
}

func TestAsAppErrorUnwraps(t *testing.T) {
	inner := Conflict("already booked", nil)
	wrapped := fmt.Errorf("booking failed: %w", inner)

	appErr := AsAppError(wrapped)
	assert.Equal(t, CodeConflict, appErr.Code)
	assert.Equal(t, "already booked", appErr.Message)
}

func TestAsAppErrorWrapsUnknown(t *testing.T) {
	appErr := AsAppError(errors.New("driver: bad connection"))
	assert.Equal(t, CodeInternal, appErr.Code)
	// Internal causes never leak into the client-facing message.
	assert.Equal(t, "internal server error", appErr.Message)
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("service", nil))
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(errors.New("plain"), CodeNotFound))
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "authentication required", Unauthenticated("", nil).Message)
	assert.Equal(t, "permission denied", Forbidden("", nil).Message)
	assert.Equal(t, "appointment not found", NotFound("appointment", nil).Message)
}
