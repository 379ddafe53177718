package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

// execute runs the root command with svc installed and returns combined output.
func execute(t *testing.T, svc *Services, args ...string) (string, error) {
	t.Helper()
	verbose, configDir, storeFlag, sendTheme = false, "", "", ""
	SetServices(svc)
	t.Cleanup(func() { SetServices(nil) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

type fakeSession struct {
	mu       sync.Mutex
	identity *domain.Identity
	restored *domain.Identity

	signIn     func(prompt func(string)) (*domain.Identity, error)
	signOutErr error
	signedOut  bool
}

func (f *fakeSession) Restore(context.Context) (*domain.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.restored != nil {
		f.identity = f.restored
	}
	return f.identity, nil
}

func (f *fakeSession) SignIn(_ context.Context, prompt func(string)) (*domain.Identity, error) {
	id, err := f.signIn(prompt)
	if err == nil {
		f.mu.Lock()
		f.identity = id
		f.mu.Unlock()
	}
	return id, err
}

func (f *fakeSession) SignOut(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identity = nil
	f.signedOut = true
	return f.signOutErr
}

func (f *fakeSession) State() domain.SessionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.identity != nil {
		return domain.SessionSignedIn
	}
	return domain.SessionSignedOut
}

func (f *fakeSession) Identity() *domain.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.identity
}

type fakeDispatch struct {
	items []string
	theme domain.Theme
	calls int
	err   error
}

func (f *fakeDispatch) Send(_ context.Context, items []string, theme domain.Theme) error {
	f.calls++
	f.items = items
	f.theme = theme
	return f.err
}

type fakeSettings struct {
	settings domain.AppSettings
	setErr   error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{settings: domain.DefaultAppSettings()}
}

func (f *fakeSettings) Get() (*domain.AppSettings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeSettings) SetTheme(theme domain.Theme) error {
	if f.setErr != nil {
		return f.setErr
	}
	if !theme.IsValid() {
		return domain.ErrInvalidInput
	}
	f.settings.Theme = theme
	return nil
}

func newServices() (*Services, *fakeSession, *fakeDispatch, *fakeSettings) {
	session := &fakeSession{}
	dispatch := &fakeDispatch{}
	settings := newFakeSettings()
	return &Services{
		Session:    session,
		Dispatch:   dispatch,
		Settings:   settings,
		ConfigPath: "/home/me/.shoplist/config.toml",
	}, session, dispatch, settings
}
