package driving

import (
	"context"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

// SessionService owns the sign-in state machine.
type SessionService interface {
	// Restore silently rebuilds a session from the stored record.
	// Returns nil identity and nil error when there is nothing to restore;
	// store and provider failures are logged, never returned.
	Restore(ctx context.Context) (*domain.Identity, error)

	// SignIn runs the interactive flow and persists the new record.
	// prompt receives the consent URL.
	SignIn(ctx context.Context, prompt func(authURL string)) (*domain.Identity, error)

	// SignOut clears the session and deletes the stored record.
	SignOut(ctx context.Context) error

	// State returns the current sign-in state.
	State() domain.SessionState

	// Identity returns the signed-in account, or nil.
	Identity() *domain.Identity
}
