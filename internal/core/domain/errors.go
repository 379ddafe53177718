package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Authentication Errors.

	// ErrMissingClientConfig indicates the registered OAuth client descriptor
	// (credentials.json) could not be found or read.
	ErrMissingClientConfig = errors.New("missing OAuth client configuration")

	// ErrAuthorizationFailed covers every other sign-in failure: denial,
	// state mismatch, network errors, timeouts and abandoned flows.
	ErrAuthorizationFailed = errors.New("authorization failed")

	// ErrNotSignedIn indicates an operation needed an active session.
	ErrNotSignedIn = errors.New("not signed in")

	// Storage Errors.

	// ErrStoreUnavailable indicates the credential store could not be reached.
	// Callers treat it as "no record" and never surface it as fatal.
	ErrStoreUnavailable = errors.New("credential store unavailable")

	// Dispatch Errors.

	// ErrRenderFailed indicates the list snapshot could not be rendered.
	ErrRenderFailed = errors.New("render failed")

	// ErrSendFailed wraps any error returned by the mail-sending endpoint.
	ErrSendFailed = errors.New("send failed")

	// ErrRateLimited indicates sends are arriving faster than allowed.
	ErrRateLimited = errors.New("rate limited")
)
