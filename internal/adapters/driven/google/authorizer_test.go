package google

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

func newTestAuthorizer(f *fakeGoogle, cb *fakeCallback) *Authorizer {
	return NewAuthorizer(Config{
		Resources:   mapResources{"credentials.json": f.clientDescriptor()},
		Listen:      listenWith(cb),
		HTTPClient:  f.Client(),
		APIEndpoint: f.endpoint(),
	})
}

func TestAuthorizer_Authorize(t *testing.T) {
	f := newFakeGoogle(t)
	cb := &fakeCallback{code: "good-code", redirect: "http://localhost:53682/"}
	a := newTestAuthorizer(f, cb)

	var consent string
	browserOpened := ""
	a.cfg.OpenBrowser = func(u string) error { browserOpened = u; return nil }

	grant, err := a.Authorize(context.Background(), func(u string) { consent = u })

	require.NoError(t, err)
	require.True(t, grant.Complete())
	assert.Equal(t, "shopper@example.com", grant.Email)
	assert.Equal(t, "at-1", grant.Record.Token)
	assert.Equal(t, "rt-1", grant.Record.RefreshToken)
	assert.Equal(t, f.URL+"/token", grant.Record.TokenURI)
	assert.Equal(t, "client-123.apps.googleusercontent.com", grant.Record.ClientID)
	assert.Equal(t, "shh", grant.Record.ClientSecret)
	assert.Equal(t, Scopes, grant.Record.Scopes)
	assert.False(t, grant.Record.Expiry.IsZero())
	assert.True(t, cb.isStopped())
	assert.Equal(t, consent, browserOpened)

	u, err := url.Parse(consent)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, f.URL+"/auth", u.Scheme+"://"+u.Host+u.Path)
	assert.Equal(t, cb.state, q.Get("state"))
	assert.NotEmpty(t, cb.state)
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("code_challenge"))
	assert.Equal(t, "http://localhost:53682/", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), "https://www.googleapis.com/auth/gmail.send")

	f.mu.Lock()
	verifier := f.verifiers[0]
	f.mu.Unlock()
	assert.NotEmpty(t, verifier, "code exchange must carry the PKCE verifier")
}

func TestAuthorizer_Authorize_GrantMailerWorks(t *testing.T) {
	f := newFakeGoogle(t)
	a := newTestAuthorizer(f, &fakeCallback{code: "good-code"})

	grant, err := a.Authorize(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, grant.Mailer.Send(context.Background(), []byte("Subject: hi\r\n\r\nbody")))
	sent := f.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Subject: hi\r\n\r\nbody", string(sent[0]))
}

func TestAuthorizer_Authorize_BrowserFailureIsNotFatal(t *testing.T) {
	f := newFakeGoogle(t)
	a := newTestAuthorizer(f, &fakeCallback{code: "good-code"})
	a.cfg.OpenBrowser = func(string) error { return errors.New("no display") }

	_, err := a.Authorize(context.Background(), nil)

	assert.NoError(t, err)
}

func TestAuthorizer_Authorize_MissingClientConfig(t *testing.T) {
	tests := []struct {
		name      string
		resources ResourceReader
	}{
		{"no file", mapResources{}},
		{"malformed file", mapResources{"credentials.json": []byte("{not json")}},
		{"no resources", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := &fakeCallback{code: "good-code"}
			a := NewAuthorizer(Config{Resources: tt.resources, Listen: listenWith(cb)})

			_, err := a.Authorize(context.Background(), nil)

			assert.ErrorIs(t, err, domain.ErrMissingClientConfig)
			assert.NotErrorIs(t, err, domain.ErrAuthorizationFailed)
		})
	}
}

func TestAuthorizer_Authorize_Failures(t *testing.T) {
	denied := errors.New("oauth: authorization denied: access_denied")
	tests := []struct {
		name   string
		cb     *fakeCallback
		listen func(string) (Callback, error)
	}{
		{name: "denied", cb: &fakeCallback{err: denied}},
		{name: "bad code", cb: &fakeCallback{code: "expired-code"}},
		{name: "listener", listen: func(string) (Callback, error) { return nil, errors.New("port busy") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeGoogle(t)
			a := newTestAuthorizer(f, tt.cb)
			if tt.listen != nil {
				a.cfg.Listen = tt.listen
			}

			grant, err := a.Authorize(context.Background(), nil)

			assert.Nil(t, grant)
			assert.ErrorIs(t, err, domain.ErrAuthorizationFailed)
		})
	}
}

func TestAuthorizer_Authorize_UserinfoFailure(t *testing.T) {
	f := newFakeGoogle(t)
	f.badTokens["at-1"] = true
	a := newTestAuthorizer(f, &fakeCallback{code: "good-code"})

	_, err := a.Authorize(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrAuthorizationFailed)
	assert.True(t, IsUnauthorized(err))
}

func TestAuthorizer_Authorize_Timeout(t *testing.T) {
	f := newFakeGoogle(t)
	cb := &fakeCallback{block: true}
	a := newTestAuthorizer(f, cb)
	a.cfg.Timeout = 20 * time.Millisecond

	_, err := a.Authorize(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrAuthorizationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, cb.isStopped())
}

func TestAuthorizer_Authorize_Cancelled(t *testing.T) {
	f := newFakeGoogle(t)
	a := newTestAuthorizer(f, &fakeCallback{block: true})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Authorize(ctx, nil)

	assert.ErrorIs(t, err, domain.ErrAuthorizationFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func storedRecord(f *fakeGoogle) domain.CredentialRecord {
	return domain.CredentialRecord{
		Token:        "at-old",
		RefreshToken: "rt-1",
		TokenURI:     f.URL + "/token",
		ClientID:     "client-123.apps.googleusercontent.com",
		ClientSecret: "shh",
		Scopes:       Scopes,
	}
}

func TestAuthorizer_Restore_UnknownExpiryRefreshes(t *testing.T) {
	f := newFakeGoogle(t)
	a := newTestAuthorizer(f, nil)

	grant, err := a.Restore(context.Background(), storedRecord(f))

	require.NoError(t, err)
	require.True(t, grant.Complete())
	assert.Equal(t, "shopper@example.com", grant.Email)
	assert.Equal(t, "at-refreshed", grant.Record.Token)
	assert.Equal(t, "rt-1", grant.Record.RefreshToken)
	assert.Equal(t, []string{"refresh_token"}, f.grantTypes())
}

func TestAuthorizer_Restore_ExpiredTokenRefreshes(t *testing.T) {
	f := newFakeGoogle(t)
	a := newTestAuthorizer(f, nil)
	rec := storedRecord(f)
	rec.Expiry = time.Now().Add(-time.Hour)

	grant, err := a.Restore(context.Background(), rec)

	require.NoError(t, err)
	assert.Equal(t, "at-refreshed", grant.Record.Token)
	assert.Equal(t, []string{"refresh_token"}, f.grantTypes())
}

func TestAuthorizer_Restore_ValidTokenSkipsRefresh(t *testing.T) {
	f := newFakeGoogle(t)
	a := newTestAuthorizer(f, nil)
	rec := storedRecord(f)
	rec.Expiry = time.Now().Add(time.Hour)

	grant, err := a.Restore(context.Background(), rec)

	require.NoError(t, err)
	assert.Equal(t, "at-old", grant.Record.Token)
	assert.Empty(t, f.grantTypes())
}

func TestAuthorizer_Restore_RevokedRefreshToken(t *testing.T) {
	f := newFakeGoogle(t)
	f.revoked["rt-1"] = true
	a := newTestAuthorizer(f, nil)

	grant, err := a.Restore(context.Background(), storedRecord(f))

	assert.Nil(t, grant)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestAuthorizer_Restore_RejectedAccessToken(t *testing.T) {
	f := newFakeGoogle(t)
	f.badTokens["at-old"] = true
	a := newTestAuthorizer(f, nil)
	rec := storedRecord(f)
	rec.RefreshToken = ""

	_, err := a.Restore(context.Background(), rec)

	assert.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestAuthorizer_Restore_InvalidRecord(t *testing.T) {
	a := NewAuthorizer(Config{})

	_, err := a.Restore(context.Background(), domain.CredentialRecord{Token: "x"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthorizer_Restore_SessionOutlivesContext(t *testing.T) {
	f := newFakeGoogle(t)
	a := newTestAuthorizer(f, nil)
	ctx, cancel := context.WithCancel(context.Background())

	grant, err := a.Restore(ctx, storedRecord(f))
	require.NoError(t, err)
	cancel()

	assert.NoError(t, grant.Mailer.Send(context.Background(), []byte("x")))
}

func TestNewAuthorizer_DefaultClientFile(t *testing.T) {
	a := NewAuthorizer(Config{})

	assert.Equal(t, "credentials.json", a.cfg.ClientFile)
}
