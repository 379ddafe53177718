package google

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cause := &googleapi.Error{Code: tt.code, Message: "x"}

			err := WrapError(cause)

			assert.ErrorIs(t, err, tt.sentinel)
			var gerr *googleapi.Error
			assert.True(t, errors.As(err, &gerr))
			assert.Equal(t, tt.code, gerr.Code)
		})
	}
}

func TestWrapError_Passthrough(t *testing.T) {
	assert.NoError(t, WrapError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, WrapError(plain))

	server := &googleapi.Error{Code: http.StatusInternalServerError}
	assert.Equal(t, error(server), WrapError(server))

	already := fmt.Errorf("%w: again", ErrUnauthorized)
	assert.Same(t, already, WrapError(already))
}

func TestIsUnauthorized_RetrieveError(t *testing.T) {
	assert.True(t, IsUnauthorized(&oauth2.RetrieveError{ErrorCode: "invalid_grant"}))
	assert.True(t, IsUnauthorized(fmt.Errorf("wrapped: %w", &oauth2.RetrieveError{ErrorCode: "invalid_client"})))
	assert.False(t, IsUnauthorized(&oauth2.RetrieveError{ErrorCode: "temporarily_unavailable"}))
	assert.False(t, IsUnauthorized(errors.New("other")))
}
