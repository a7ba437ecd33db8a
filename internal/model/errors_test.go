package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "Without operation",
			err:      NewValidationError("price must be greater than zero"),
			expected: "price must be greater than zero",
		},
		{
			name:     "With operation",
			err:      NewRequestFailed("submit_bid", errors.New("backend returned status 500")),
			expected: "submit_bid: backend returned status 500",
		},
		{
			name:     "Request failed without cause",
			err:      NewRequestFailed("list_orders", nil),
			expected: "list_orders: request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	validation := NewValidationError("bad input")
	token := NewInvalidTokenError("token missing")
	request := NewRequestFailed("list_flowers", errors.New("boom"))
	notFound := NewNotFound("authenticate", "seller not found")

	assert.True(t, IsValidation(validation))
	assert.False(t, IsValidation(request))

	assert.True(t, IsInvalidToken(token))
	assert.False(t, IsInvalidToken(validation))

	assert.True(t, IsRequestFailed(request))
	assert.False(t, IsRequestFailed(notFound))

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(request))

	assert.False(t, IsValidation(nil))
	assert.False(t, IsValidation(errors.New("plain error")))
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	inner := NewRequestFailed("schedule_pickup", errors.New("timeout"))
	wrapped := fmt.Errorf("pickup flow: %w", inner)

	assert.True(t, IsRequestFailed(wrapped))
	assert.False(t, IsNotFound(wrapped))
}

func TestRequestFailed_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewRequestFailed("list_orders", cause)

	require.ErrorIs(t, err, cause)
}
