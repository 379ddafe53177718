package driven

import (
	"context"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

// Grant is the outcome of a successful sign-in or restore: a credential,
// the verified account email, and a mail handle bound to that credential.
type Grant struct {
	Record domain.CredentialRecord
	Email  string
	Mailer Mailer
}

// Complete reports whether all three parts of the grant are populated.
func (g *Grant) Complete() bool {
	return g != nil && g.Email != "" && g.Mailer != nil && g.Record.Validate() == nil
}

// Authorizer talks to the OAuth provider.
type Authorizer interface {
	// Authorize runs the interactive consent flow. prompt is called with the
	// consent URL once the local callback listener is ready.
	// Fails with domain.ErrMissingClientConfig when the client descriptor is
	// absent and domain.ErrAuthorizationFailed for anything else.
	Authorize(ctx context.Context, prompt func(authURL string)) (*Grant, error)

	// Restore rebuilds a grant from a stored record without user interaction.
	Restore(ctx context.Context, record domain.CredentialRecord) (*Grant, error)
}
