package google

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// Common Google API errors.
var (
	// ErrUnauthorized indicates invalid, expired or revoked credentials.
	ErrUnauthorized = errors.New("google: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions, e.g. a missing scope.
	ErrForbidden = errors.New("google: forbidden (insufficient permissions)")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("google: rate limit exceeded")
)

// IsUnauthorized returns true if the error indicates invalid credentials,
// including a refresh token the provider no longer accepts.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return rerr.ErrorCode == "invalid_grant" || rerr.ErrorCode == "invalid_client" ||
			(rerr.Response != nil && rerr.Response.StatusCode == http.StatusUnauthorized)
	}
	return statusCode(err) == http.StatusUnauthorized
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || statusCode(err) == http.StatusForbidden
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited) || statusCode(err) == http.StatusTooManyRequests
}

func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// WrapError tags a Google API error with the matching sentinel while
// keeping the original error in the chain.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case IsUnauthorized(err) && !errors.Is(err, ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case IsForbidden(err) && !errors.Is(err, ErrForbidden):
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	case IsRateLimited(err) && !errors.Is(err, ErrRateLimited):
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	default:
		return err
	}
}
