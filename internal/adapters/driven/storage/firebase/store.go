// Package firebase stores the credential record in a Firebase Realtime
// Database through its REST API.
//
// The record lives at {databaseURL}{recordPath}.json. Reads of an absent
// path return the JSON literal null. Requests are authorised with a
// service-account key.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
	"github.com/custodia-labs/shoplist/internal/logger"
)

// Scopes required by the Realtime Database REST API.
var Scopes = []string{
	"https://www.googleapis.com/auth/firebase.database",
	"https://www.googleapis.com/auth/userinfo.email",
}

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 512

// Ensure Store implements the interface.
var _ driven.CredentialStore = (*Store)(nil)

// Store is a Realtime Database backed credential store.
type Store struct {
	client   *http.Client
	endpoint string
}

// NewStore creates a store that issues requests with client, which must
// already carry authorisation.
func NewStore(client *http.Client, databaseURL, recordPath string) (*Store, error) {
	if client == nil {
		client = http.DefaultClient
	}
	endpoint, err := recordEndpoint(databaseURL, recordPath)
	if err != nil {
		return nil, err
	}
	return &Store{client: client, endpoint: endpoint}, nil
}

// NewStoreFromServiceAccount creates a store authorised by a service-account
// key file's contents.
func NewStoreFromServiceAccount(ctx context.Context, key []byte, databaseURL, recordPath string) (*Store, error) {
	conf, err := google.JWTConfigFromJSON(key, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parse service account key: %w", domain.ErrStoreUnavailable, err)
	}
	return NewStore(conf.Client(ctx), databaseURL, recordPath)
}

// recordEndpoint joins the database URL and record path into the REST URL.
func recordEndpoint(databaseURL, recordPath string) (string, error) {
	if databaseURL == "" {
		return "", fmt.Errorf("%w: database URL not configured", domain.ErrStoreUnavailable)
	}
	u, err := url.Parse(databaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: invalid database URL %q", domain.ErrStoreUnavailable, databaseURL)
	}
	if recordPath == "" {
		recordPath = domain.DefaultAppSettings().Store.RecordPath
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Trim(recordPath, "/") + ".json"
	return u.String(), nil
}

// Endpoint returns the REST URL of the record.
func (s *Store) Endpoint() string {
	return s.endpoint
}

// Save replaces the record.
func (s *Store) Save(ctx context.Context, record domain.CredentialRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	_, err = s.do(ctx, http.MethodPut, body)
	return err
}

// Load returns the record, or nil if the path holds nothing.
func (s *Store) Load(ctx context.Context) (*domain.CredentialRecord, error) {
	body, err := s.do(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}

	var record domain.CredentialRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return &record, nil
}

// Delete removes the record. Deleting an absent path succeeds.
func (s *Store) Delete(ctx context.Context) error {
	_, err := s.do(ctx, http.MethodDelete, nil)
	return err
}

func (s *Store) do(ctx context.Context, method string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrStoreUnavailable, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("Firebase %s %s", method, s.endpoint)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrStoreUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, fmt.Errorf("%w: %s %s: %s",
			domain.ErrStoreUnavailable, method, resp.Status, strings.TrimSpace(string(data)))
	}
	return data, nil
}
