package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
)

var errBoom = errors.New("boom")

type fakeStore struct {
	mu        sync.Mutex
	record    *domain.CredentialRecord
	loadErr   error
	saveErr   error
	deleteErr error
	saves     int
	deletes   int
}

func (f *fakeStore) Save(_ context.Context, r domain.CredentialRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.record = &r
	return nil
}

func (f *fakeStore) Load(_ context.Context) (*domain.CredentialRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.record == nil {
		return nil, nil
	}
	r := *f.record
	return &r, nil
}

func (f *fakeStore) Delete(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.record = nil
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent [][]byte
	err  error
}

func (m *fakeMailer) Send(_ context.Context, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, raw)
	return nil
}

type fakeAuthorizer struct {
	grant      *driven.Grant
	err        error
	restored   *driven.Grant
	restoreErr error
	authURL    string

	// beforeRestoreReturn runs inside Restore, before it returns.
	beforeRestoreReturn func()
	// block, when set, is waited on inside Authorize.
	block chan struct{}
}

func (a *fakeAuthorizer) Authorize(ctx context.Context, prompt func(string)) (*driven.Grant, error) {
	if prompt != nil && a.authURL != "" {
		prompt(a.authURL)
	}
	if a.block != nil {
		select {
		case <-a.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return a.grant, a.err
}

func (a *fakeAuthorizer) Restore(_ context.Context, _ domain.CredentialRecord) (*driven.Grant, error) {
	if a.beforeRestoreReturn != nil {
		a.beforeRestoreReturn()
	}
	return a.restored, a.restoreErr
}

func testRecord() domain.CredentialRecord {
	return domain.CredentialRecord{
		Token:        "access",
		RefreshToken: "refresh",
		TokenURI:     "https://oauth2.googleapis.com/token",
		ClientID:     "client-id",
		ClientSecret: "secret",
		Scopes:       []string{"openid"},
	}
}

func testGrant(email string, mailer driven.Mailer) *driven.Grant {
	if mailer == nil {
		mailer = &fakeMailer{}
	}
	return &driven.Grant{Record: testRecord(), Email: email, Mailer: mailer}
}

type fakeRenderer struct {
	out   []byte
	err   error
	calls int
	items []string
	theme domain.Theme
}

func (r *fakeRenderer) Render(items []string, theme domain.Theme) ([]byte, error) {
	r.calls++
	r.items = items
	r.theme = theme
	return r.out, r.err
}

type fixedSession struct {
	grant *driven.Grant
}

func (f fixedSession) Active() *driven.Grant { return f.grant }
