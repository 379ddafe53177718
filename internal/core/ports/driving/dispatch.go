package driving

import (
	"context"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

// DispatchService emails the rendered list to the signed-in account.
type DispatchService interface {
	// Send renders items in the theme and mails them with a text summary.
	// Fails with domain.ErrNotSignedIn, without any network call, when no
	// session is active.
	Send(ctx context.Context, items []string, theme domain.Theme) error
}
