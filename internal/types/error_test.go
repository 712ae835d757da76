package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsErrorCode(t *testing.T) {
	err := NewCodeError(NothingToClaim, "grant %s has nothing to claim", "abc")
	assert.True(t, IsErrorCode(err, NothingToClaim))
	assert.False(t, IsErrorCode(err, TransferFailed))
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)

	wrapped := fmt.Errorf("claim: %w", err)
	assert.True(t, IsErrorCode(wrapped, NothingToClaim))

	assert.False(t, IsErrorCode(errors.New("plain"), NothingToClaim))
	assert.False(t, IsErrorCode(nil, NothingToClaim))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("gateway unreachable")
	err := NewError(http.StatusBadGateway, TransferFailed, cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "gateway unreachable", err.Error())
}

func TestErrorCodeStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		PermissionDenied:     http.StatusForbidden,
		AlreadyExists:        http.StatusConflict,
		ClaimNotAvailableYet: http.StatusUnprocessableEntity,
		InvalidPool:          http.StatusBadRequest,
		TransferFailed:       http.StatusBadGateway,
		NotFound:             http.StatusNotFound,
		InternalServiceError: http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, code.StatusCode(), code.String())
	}
}
