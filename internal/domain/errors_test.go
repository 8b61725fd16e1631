package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantStatus int
		wantCode   string
	}{
		{"not found", NotFound("board not found"), http.StatusNotFound, "not_found"},
		{"forbidden", Forbidden("no access"), http.StatusForbidden, "forbidden"},
		{"validation", Validation("title is required"), http.StatusBadRequest, "validation"},
		{"conflict", Conflict("already exists"), http.StatusConflict, "conflict"},
		{"internal", Internal("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestAsError(t *testing.T) {
	t.Run("passes typed errors through", func(t *testing.T) {
		src := NotFound("card not found")
		got := AsError(src)
		assert.Same(t, src, got)
	})

	t.Run("unwraps wrapped typed errors", func(t *testing.T) {
		src := Forbidden("no access")
		wrapped := fmt.Errorf("resolve card 7: %w", src)
		got := AsError(wrapped)
		require.NotNil(t, got)
		assert.Equal(t, http.StatusForbidden, got.Status)
		assert.Equal(t, "no access", got.Message)
	})

	t.Run("masks unknown errors", func(t *testing.T) {
		got := AsError(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, "internal server error", got.Message)
	})
}
