package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps the single credential record in memory.
type CredentialStore struct {
	mu     sync.RWMutex
	record *domain.CredentialRecord
}

// NewCredentialStore creates an empty in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

// Save replaces the stored record.
func (s *CredentialStore) Save(_ context.Context, record domain.CredentialRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = cloneRecord(&record)
	return nil
}

// Load returns the stored record, or nil if none.
func (s *CredentialStore) Load(_ context.Context) (*domain.CredentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecord(s.record), nil
}

// Delete removes the stored record. Deleting nothing is not an error.
func (s *CredentialStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	return nil
}

func cloneRecord(r *domain.CredentialRecord) *domain.CredentialRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.Scopes != nil {
		c.Scopes = append([]string(nil), r.Scopes...)
	}
	return &c
}
