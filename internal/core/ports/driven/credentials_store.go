package driven

import (
	"context"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

// CredentialStore persists the one OAuth credential record at a fixed path.
// Implementations wrap connectivity and auth failures in
// domain.ErrStoreUnavailable.
type CredentialStore interface {
	// Save upserts the record, overwriting any prior value.
	Save(ctx context.Context, record domain.CredentialRecord) error

	// Load retrieves the record.
	// Returns nil with no error if no record is stored.
	Load(ctx context.Context) (*domain.CredentialRecord, error)

	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context) error
}
