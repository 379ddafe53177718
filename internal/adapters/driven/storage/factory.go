// Package storage selects and constructs the configured credential store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/shoplist/internal/adapters/driven/storage/firebase"
	"github.com/custodia-labs/shoplist/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shoplist/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
	"github.com/custodia-labs/shoplist/internal/logger"
)

// KeyReader reads a resource file such as the service-account key.
type KeyReader interface {
	Read(name string) ([]byte, error)
}

// Opened is the result of Open. Err is set when the configured backend
// could not be built; Store is then an Unavailable store.
type Opened struct {
	Store  driven.CredentialStore
	Closer io.Closer
	Err    error
}

// Close releases backend resources, if any.
func (o Opened) Close() error {
	if o.Closer == nil {
		return nil
	}
	return o.Closer.Close()
}

// Open builds the credential store named by settings. It never fails: a
// backend that cannot be constructed is replaced by an Unavailable store
// and the cause is reported in Opened.Err.
func Open(ctx context.Context, settings domain.StoreSettings, keys KeyReader, dataDir string) Opened {
	store, closer, err := open(ctx, settings, keys, dataDir)
	if err != nil {
		logger.Warn("Credential store unavailable: %v", err)
		return Opened{Store: NewUnavailable(err), Err: err}
	}
	logger.Debug("Credential store: %s", settings.Backend)
	return Opened{Store: store, Closer: closer}
}

func open(
	ctx context.Context, settings domain.StoreSettings, keys KeyReader, dataDir string,
) (driven.CredentialStore, io.Closer, error) {
	switch settings.Backend {
	case domain.StoreBackendMemory:
		return memory.NewCredentialStore(), nil, nil

	case domain.StoreBackendSQLite:
		s, err := sqlite.NewStore(dataDir, settings.RecordPath)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return s, s, nil

	case domain.StoreBackendFirebase, "":
		if settings.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("%w: store.database_url is not set", domain.ErrStoreUnavailable)
		}
		if keys == nil {
			return nil, nil, fmt.Errorf("%w: no key reader", domain.ErrStoreUnavailable)
		}
		key, err := keys.Read(settings.ServiceAccountFile)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		s, err := firebase.NewStoreFromServiceAccount(ctx, key, settings.DatabaseURL, settings.RecordPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("Firebase record at %s", s.Endpoint())
		return s, nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown backend %q", domain.ErrStoreUnavailable, settings.Backend)
	}
}

// Ensure Unavailable implements the interface.
var _ driven.CredentialStore = (*Unavailable)(nil)

// Unavailable is a credential store whose every call fails with the cause
// recorded at construction, wrapped in domain.ErrStoreUnavailable.
type Unavailable struct {
	cause error
}

// NewUnavailable creates a store that always fails with cause.
func NewUnavailable(cause error) *Unavailable {
	return &Unavailable{cause: cause}
}

func (u *Unavailable) err() error {
	if u.cause == nil {
		return domain.ErrStoreUnavailable
	}
	if errors.Is(u.cause, domain.ErrStoreUnavailable) {
		return u.cause
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, u.cause)
}

// Save always fails.
func (u *Unavailable) Save(context.Context, domain.CredentialRecord) error { return u.err() }

// Load always fails.
func (u *Unavailable) Load(context.Context) (*domain.CredentialRecord, error) { return nil, u.err() }

// Delete always fails.
func (u *Unavailable) Delete(context.Context) error { return u.err() }
