package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected int
	}{
		{name: "not found", err: New(KindNotFound, "NOT_FOUND", "x"), expected: http.StatusNotFound},
		{name: "forbidden", err: New(KindForbidden, "FORBIDDEN", "x"), expected: http.StatusForbidden},
		{name: "conflict", err: New(KindConflict, "CONFLICT", "x"), expected: http.StatusConflict},
		{name: "invalid operation", err: New(KindInvalidOperation, "INVALID", "x"), expected: http.StatusBadRequest},
		{name: "validation", err: Validation("x"), expected: http.StatusBadRequest},
		{name: "unauthorized", err: New(KindUnauthorized, "UNAUTHORIZED", "x"), expected: http.StatusUnauthorized},
		{
			name:     "status override",
			err:      New(KindConflict, "EXISTS", "x").WithStatus(http.StatusBadRequest),
			expected: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.HTTPStatus())
		})
	}
}

func TestError_WithStatusDoesNotMutate(t *testing.T) {
	base := New(KindConflict, "EXISTS", "already exists")
	overridden := base.WithStatus(http.StatusBadRequest)

	assert.Equal(t, 0, base.Status)
	assert.Equal(t, http.StatusBadRequest, overridden.Status)
	assert.Equal(t, base.Message, overridden.Message)
}

func TestAs(t *testing.T) {
	t.Run("wrapped business error", func(t *testing.T) {
		sentinel := New(KindNotFound, "NOT_FOUND", "idea not found")
		wrapped := fmt.Errorf("load idea: %w", sentinel)

		appErr, ok := As(wrapped)
		require.True(t, ok)
		assert.Same(t, sentinel, appErr)
		assert.True(t, errors.Is(wrapped, sentinel))
		assert.True(t, IsKind(wrapped, KindNotFound))
		assert.False(t, IsKind(wrapped, KindForbidden))
	})

	t.Run("infrastructure error", func(t *testing.T) {
		_, ok := As(errors.New("connection refused"))
		assert.False(t, ok)
		assert.False(t, IsKind(errors.New("boom"), KindNotFound))
	})
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "invalid_operation", KindInvalidOperation.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
