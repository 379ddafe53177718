package driven

import "context"

// Mailer submits a complete RFC 5322 message as the authenticated user.
type Mailer interface {
	// Send delivers raw, unencoded message bytes.
	Send(ctx context.Context, raw []byte) error
}
