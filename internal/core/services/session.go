package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
	"github.com/custodia-labs/shoplist/internal/core/ports/driving"
	"github.com/custodia-labs/shoplist/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService owns the sign-in state machine:
//
//	SignedOut --SignIn--> SigningIn --ok--> SignedIn
//	SigningIn --fail--> SignedIn if a session is installed, else SignedOut
//	SignedIn --SignOut--> SignedOut (stored record deleted)
//	SignedOut --Restore--> SignedIn | SignedOut (silent, once at launch)
//
// A session is usable only when credential, email and mail handle are all
// present; anything less is reported as signed out.
type SessionService struct {
	store      driven.CredentialStore
	authorizer driven.Authorizer

	mu    sync.RWMutex
	state domain.SessionState
	grant *driven.Grant
	// generation increments on every completed sign-in and every sign-out
	// so a restore that started earlier cannot overwrite a newer session.
	// A sign-in that is still waiting for the browser does not count.
	generation uint64
}

// NewSessionService creates a new session service.
func NewSessionService(store driven.CredentialStore, authorizer driven.Authorizer) *SessionService {
	return &SessionService{
		store:      store,
		authorizer: authorizer,
		state:      domain.SessionSignedOut,
	}
}

// Restore silently rebuilds a session from the stored record.
func (s *SessionService) Restore(ctx context.Context) (*domain.Identity, error) {
	logger.Section("Session Restore")

	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	if s.store == nil || s.authorizer == nil {
		logger.Debug("Restore skipped: store or authorizer not configured")
		return nil, nil
	}

	record, err := s.store.Load(ctx)
	if err != nil {
		logger.Warn("Failed to load credentials: %v", err)
		return nil, nil
	}
	if record == nil {
		logger.Debug("No saved credentials")
		return nil, nil
	}

	grant, err := s.authorizer.Restore(ctx, *record)
	if err != nil {
		logger.Warn("Auto-login failed: %v", err)
		return nil, nil
	}
	if !grant.Complete() {
		logger.Warn("Auto-login returned an incomplete session")
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		logger.Debug("Discarding restored session for %s: superseded", grant.Email)
		return nil, nil
	}
	s.grant = grant
	if s.state != domain.SessionSigningIn {
		s.state = domain.SessionSignedIn
	}
	logger.Info("Restored session for %s", grant.Email)

	return &domain.Identity{Email: grant.Email}, nil
}

// SignIn runs the interactive flow, installs the session and saves the record.
// On failure the previous session, if any, is left untouched.
func (s *SessionService) SignIn(ctx context.Context, prompt func(authURL string)) (*domain.Identity, error) {
	logger.Section("Sign In")

	if s.authorizer == nil {
		return nil, fmt.Errorf("%w: no authorizer configured", domain.ErrAuthorizationFailed)
	}

	s.mu.Lock()
	if s.state == domain.SessionSigningIn {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: sign-in already in progress", domain.ErrAuthorizationFailed)
	}
	s.state = domain.SessionSigningIn
	s.mu.Unlock()

	grant, err := s.authorizer.Authorize(ctx, prompt)
	if err == nil && !grant.Complete() {
		err = fmt.Errorf("%w: incomplete credentials returned", domain.ErrAuthorizationFailed)
	}
	if err != nil {
		s.mu.Lock()
		s.state = domain.SessionSignedOut
		if s.grant != nil {
			s.state = domain.SessionSignedIn
		}
		s.mu.Unlock()
		logger.Warn("Sign in failed: %v", err)
		return nil, err
	}

	s.mu.Lock()
	s.generation++
	s.grant = grant
	s.state = domain.SessionSignedIn
	s.mu.Unlock()
	logger.Info("Signed in as %s", grant.Email)

	if s.store != nil {
		if err := s.store.Save(ctx, grant.Record); err != nil {
			logger.Warn("Failed to save credentials: %v", err)
		}
	}

	return &domain.Identity{Email: grant.Email}, nil
}

// SignOut clears the session and deletes the stored record.
// The in-memory session is always cleared; a store failure is returned so
// callers can mention it, but the user is signed out either way.
func (s *SessionService) SignOut(ctx context.Context) error {
	logger.Section("Sign Out")

	s.mu.Lock()
	s.generation++
	s.grant = nil
	s.state = domain.SessionSignedOut
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	if err := s.store.Delete(ctx); err != nil {
		logger.Warn("Failed to delete credentials: %v", err)
		return err
	}
	return nil
}

// State returns the current sign-in state.
func (s *SessionService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Identity returns the signed-in account, or nil.
func (s *SessionService) Identity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != domain.SessionSignedIn || !s.grant.Complete() {
		return nil
	}
	return &domain.Identity{Email: s.grant.Email}
}

// Active returns the installed grant if the session is usable, else nil.
func (s *SessionService) Active() *driven.Grant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != domain.SessionSignedIn || !s.grant.Complete() {
		return nil
	}
	return s.grant
}
