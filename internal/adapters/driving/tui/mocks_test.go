package tui

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

// MockSessionService implements driving.SessionService for testing.
// State and Identity are fields so tests can put the shell in any state.
type MockSessionService struct {
	mu       sync.Mutex
	state    domain.SessionState
	identity *domain.Identity

	RestoreFunc func(ctx context.Context) (*domain.Identity, error)
	SignInFunc  func(ctx context.Context, prompt func(string)) (*domain.Identity, error)
	SignOutFunc func(ctx context.Context) error

	signOutCalls int
}

func (m *MockSessionService) Restore(ctx context.Context) (*domain.Identity, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx)
	}
	return nil, nil
}

func (m *MockSessionService) SignIn(ctx context.Context, prompt func(string)) (*domain.Identity, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, prompt)
	}
	return nil, domain.ErrAuthorizationFailed
}

func (m *MockSessionService) SignOut(ctx context.Context) error {
	m.mu.Lock()
	m.signOutCalls++
	m.state = domain.SessionSignedOut
	m.identity = nil
	m.mu.Unlock()
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	return nil
}

func (m *MockSessionService) State() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *MockSessionService) Identity() *domain.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

func (m *MockSessionService) set(state domain.SessionState, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.identity = nil
	if email != "" {
		m.identity = &domain.Identity{Email: email}
	}
}

// MockDispatchService is a mock implementation of driving.DispatchService.
type MockDispatchService struct {
	mock.Mock
}

func (m *MockDispatchService) Send(ctx context.Context, items []string, theme domain.Theme) error {
	args := m.Called(ctx, items, theme)
	return args.Error(0)
}

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) SetTheme(theme domain.Theme) error {
	args := m.Called(theme)
	return args.Error(0)
}
