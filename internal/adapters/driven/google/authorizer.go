package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	oauth2api "google.golang.org/api/oauth2/v2"

	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
	"github.com/custodia-labs/shoplist/internal/logger"
)

// Scopes requested at sign-in.
var Scopes = []string{
	oauth2api.OpenIDScope,
	oauth2api.UserinfoEmailScope,
	oauth2api.UserinfoProfileScope,
	gmail.GmailSendScope,
}

// ResourceReader reads a resource file by name.
type ResourceReader interface {
	Read(name string) ([]byte, error)
}

// Callback receives the provider's redirect on a loopback address.
type Callback interface {
	RedirectURI() string
	WaitForCode(ctx context.Context) (string, error)
	Stop() error
}

// Config configures an Authorizer.
type Config struct {
	// Resources locates the client descriptor.
	Resources ResourceReader
	// ClientFile is the descriptor name, e.g. credentials.json.
	ClientFile string
	// Timeout bounds the wait for the browser redirect. Zero means no limit
	// beyond the caller's context.
	Timeout time.Duration
	// Listen starts a callback listener that expects state.
	Listen func(state string) (Callback, error)
	// OpenBrowser, when set, is tried with the consent URL.
	OpenBrowser func(url string) error
	// HTTPClient carries token and API requests. Nil uses the default client.
	HTTPClient *http.Client
	// APIEndpoint overrides the Google API base URL.
	APIEndpoint string
}

// Ensure Authorizer implements the interface.
var _ driven.Authorizer = (*Authorizer)(nil)

// Authorizer signs users in with Google and restores saved sessions.
type Authorizer struct {
	cfg Config
}

// NewAuthorizer creates an authorizer.
func NewAuthorizer(cfg Config) *Authorizer {
	if cfg.ClientFile == "" {
		cfg.ClientFile = domain.DefaultAppSettings().OAuth.ClientFile
	}
	return &Authorizer{cfg: cfg}
}

// Authorize runs the interactive consent flow.
func (a *Authorizer) Authorize(ctx context.Context, prompt func(authURL string)) (*driven.Grant, error) {
	logger.Section("Google Sign In")

	conf, err := a.clientConfig()
	if err != nil {
		return nil, err
	}
	if a.cfg.Listen == nil {
		return nil, authFailed("start callback listener", errors.New("no listener configured"))
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	state := uuid.NewString()
	cb, err := a.cfg.Listen(state)
	if err != nil {
		return nil, authFailed("start callback listener", err)
	}
	defer func() {
		if err := cb.Stop(); err != nil {
			logger.Debug("Callback listener stop: %v", err)
		}
	}()

	conf.RedirectURL = cb.RedirectURI()
	verifier := oauth2.GenerateVerifier()
	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)
	logger.Debug("Waiting for redirect on %s", conf.RedirectURL)

	if prompt != nil {
		prompt(authURL)
	}
	if a.cfg.OpenBrowser != nil {
		if err := a.cfg.OpenBrowser(authURL); err != nil {
			logger.Warn("Could not open browser: %v", err)
		}
	}

	code, err := cb.WaitForCode(ctx)
	if err != nil {
		return nil, authFailed("wait for redirect", err)
	}

	ctx = a.withHTTPClient(ctx)
	tok, err := conf.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, authFailed("exchange code", err)
	}

	record := domain.CredentialRecord{
		TokenURI:     conf.Endpoint.TokenURL,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		Scopes:       append([]string(nil), conf.Scopes...),
	}
	grant, err := a.bind(ctx, conf, tok, record)
	if err != nil {
		return nil, authFailed("resolve account", err)
	}

	logger.Info("Authorized %s", grant.Email)
	return grant, nil
}

// Restore rebuilds a session from a stored record. A record that
// ShouldRefresh is refreshed before the identity check.
func (a *Authorizer) Restore(ctx context.Context, record domain.CredentialRecord) (*driven.Grant, error) {
	logger.Section("Google Restore")

	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}

	conf := &oauth2.Config{
		ClientID:     record.ClientID,
		ClientSecret: record.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  record.TokenURI,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: record.Scopes,
	}

	tok := &oauth2.Token{
		AccessToken:  record.Token,
		RefreshToken: record.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       record.Expiry,
	}
	if record.ShouldRefresh() {
		tok.Expiry = time.Unix(1, 0)
	}

	grant, err := a.bind(a.withHTTPClient(ctx), conf, tok, record)
	if err != nil {
		if IsUnauthorized(err) {
			logger.Warn("Saved credentials were rejected; sign in again")
		}
		return nil, fmt.Errorf("restore: %w", err)
	}

	logger.Info("Restored %s", grant.Email)
	return grant, nil
}

// bind resolves the account and attaches a mailer. The returned grant's
// record carries the freshest token.
func (a *Authorizer) bind(
	ctx context.Context, conf *oauth2.Config, tok *oauth2.Token, record domain.CredentialRecord,
) (*driven.Grant, error) {
	// The session outlives this call; keep values such as the HTTP client
	// but drop the caller's deadline.
	base := context.WithoutCancel(ctx)
	ts := conf.TokenSource(base, tok)
	client := oauth2.NewClient(base, ts)

	email, err := lookupEmail(ctx, client, a.cfg.APIEndpoint)
	if err != nil {
		return nil, err
	}

	current, err := ts.Token()
	if err != nil {
		return nil, err
	}
	record.Token = current.AccessToken
	record.Expiry = current.Expiry
	if current.RefreshToken != "" {
		record.RefreshToken = current.RefreshToken
	}

	mailer, err := NewMailer(base, client, a.cfg.APIEndpoint)
	if err != nil {
		return nil, err
	}

	return &driven.Grant{Record: record, Email: email, Mailer: mailer}, nil
}

// clientConfig loads the registered client descriptor.
func (a *Authorizer) clientConfig() (*oauth2.Config, error) {
	if a.cfg.Resources == nil {
		return nil, domain.ErrMissingClientConfig
	}
	data, err := a.cfg.Resources.Read(a.cfg.ClientFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", domain.ErrMissingClientConfig, a.cfg.ClientFile)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrMissingClientConfig, err)
	}
	conf, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMissingClientConfig, a.cfg.ClientFile, err)
	}
	return conf, nil
}

func (a *Authorizer) withHTTPClient(ctx context.Context) context.Context {
	if a.cfg.HTTPClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, a.cfg.HTTPClient)
}

func authFailed(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrAuthorizationFailed, step, err)
}
