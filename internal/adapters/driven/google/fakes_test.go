package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
)

// fakeGoogle serves the token, userinfo and Gmail send endpoints.
type fakeGoogle struct {
	*httptest.Server

	mu           sync.Mutex
	tokenCalls   []string // grant_type of each token request
	verifiers    []string
	sent         [][]byte
	sendStatus   int
	badTokens    map[string]bool
	revoked      map[string]bool
	email        string
	lastAuthUser string
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()
	f := &fakeGoogle{
		badTokens: map[string]bool{},
		revoked:   map[string]bool{},
		email:     "shopper@example.com",
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", f.handleToken)
	mux.HandleFunc("GET /oauth2/v2/userinfo", f.handleUserinfo)
	mux.HandleFunc("POST /gmail/v1/users/{user}/messages/send", f.handleSend)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeGoogle) endpoint() string { return f.URL + "/" }

func (f *fakeGoogle) clientDescriptor() []byte {
	return []byte(fmt.Sprintf(`{"installed":{
		"client_id":"client-123.apps.googleusercontent.com",
		"client_secret":"shh",
		"auth_uri":"%[1]s/auth",
		"token_uri":"%[1]s/token",
		"redirect_uris":["http://localhost"]
	}}`, f.URL))
}

func (f *fakeGoogle) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	grantType := r.PostForm.Get("grant_type")

	f.mu.Lock()
	f.tokenCalls = append(f.tokenCalls, grantType)
	f.verifiers = append(f.verifiers, r.PostForm.Get("code_verifier"))
	revoked := f.revoked[r.PostForm.Get("refresh_token")]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case grantType == "authorization_code" && r.PostForm.Get("code") == "good-code":
		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","token_type":"Bearer","expires_in":3600}`))
	case grantType == "refresh_token" && !revoked:
		_, _ = w.Write([]byte(`{"access_token":"at-refreshed","token_type":"Bearer","expires_in":3600}`))
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Bad Request"}`))
	}
}

func (f *fakeGoogle) handleUserinfo(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	f.mu.Lock()
	f.lastAuthUser = token
	bad := f.badTokens[token]
	email := f.email
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if bad || token == "" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"email": email, "verified_email": true})
}

func (f *fakeGoogle) handleSend(w http.ResponseWriter, r *http.Request) {
	var msg struct {
		Raw string `json:"raw"`
	}
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	status := f.sendStatus
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"rejected"}}`, status)
		return
	}

	raw, err := base64.URLEncoding.DecodeString(msg.Raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.sent = append(f.sent, raw)
	f.mu.Unlock()
	_, _ = w.Write([]byte(`{"id":"msg-1","threadId":"thr-1"}`))
}

func (f *fakeGoogle) grantTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokenCalls...)
}

func (f *fakeGoogle) sentMessages() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.sent...)
}

// mapResources serves resource files from memory.
type mapResources map[string][]byte

func (m mapResources) Read(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("read resource %s: %w", name, os.ErrNotExist)
	}
	return data, nil
}

// fakeCallback answers WaitForCode with a fixed outcome.
type fakeCallback struct {
	mu       sync.Mutex
	state    string
	code     string
	err      error
	block    bool
	stopped  bool
	redirect string
}

func (c *fakeCallback) RedirectURI() string { return c.redirect }

func (c *fakeCallback) WaitForCode(ctx context.Context) (string, error) {
	if c.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return c.code, c.err
}

func (c *fakeCallback) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	return nil
}

func (c *fakeCallback) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func listenWith(cb *fakeCallback) func(string) (Callback, error) {
	return func(state string) (Callback, error) {
		cb.state = state
		return cb, nil
	}
}
