// Package oauth provides the loopback redirect listener and browser launcher
// used by the desktop sign-in flow.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// Errors reported by WaitForCode.
var (
	// ErrStateMismatch means the redirect did not carry the expected state.
	ErrStateMismatch = errors.New("oauth: state mismatch")
	// ErrMissingCode means the redirect carried no authorization code.
	ErrMissingCode = errors.New("oauth: no authorization code received")
	// ErrDenied means the provider redirected with an error, usually consent denied.
	ErrDenied = errors.New("oauth: authorization denied")
)

// CallbackServer receives the single OAuth redirect on 127.0.0.1.
type CallbackServer struct {
	mu            sync.Mutex
	port          int
	expectedState string
	codeChan      chan string
	errChan       chan error
	server        *http.Server
	listener      net.Listener
}

// NewCallbackServer creates a callback server. Port 0 picks a free port
// when started. expectedState must match the state sent with the consent URL.
func NewCallbackServer(port int, expectedState string) *CallbackServer {
	return &CallbackServer{
		port:          port,
		expectedState: expectedState,
		codeChan:      make(chan string, 1),
		errChan:       make(chan error, 1),
	}
}

// Listen creates and starts a callback server on a random port.
func Listen(expectedState string) (*CallbackServer, error) {
	s := NewCallbackServer(0, expectedState)
	if err := s.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins serving the redirect path "/".
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleCallback)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.report(err)
		}
	}()

	return nil
}

// report delivers the first outcome; later ones are dropped.
func (s *CallbackServer) report(err error) {
	select {
	case s.errChan <- err:
	default:
	}
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if errParam := q.Get("error"); errParam != "" {
		s.report(fmt.Errorf("%w: %s", ErrDenied, errParam))
		fmt.Fprint(w, resultHTML("Sign-in failed", "Google reported: "+errParam))
		return
	}

	if q.Get("state") != s.expectedState {
		s.report(ErrStateMismatch)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, resultHTML("Sign-in failed", "The response did not match this sign-in attempt."))
		return
	}

	code := q.Get("code")
	if code == "" {
		s.report(ErrMissingCode)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, resultHTML("Sign-in failed", "No authorization code was received."))
		return
	}

	select {
	case s.codeChan <- code:
	default:
	}

	fmt.Fprint(w, resultHTML("Signed in to Shopping List", "You can close this window and return to the terminal."))
}

// WaitForCode blocks until the redirect arrives or ctx is done.
func (s *CallbackServer) WaitForCode(ctx context.Context) (string, error) {
	select {
	case code := <-s.codeChan:
		return code, nil
	case err := <-s.errChan:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for authorization callback: %w", ctx.Err())
	}
}

// Stop shuts down the callback server. It is safe to call more than once.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.server = nil
	return err
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// RedirectURI returns the redirect URI registered for desktop clients.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://localhost:%d/", s.Port())
}

func resultHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Shopping List</title>
    <style>
        body { font-family: sans-serif; display: flex; justify-content: center;
               align-items: center; height: 100vh; margin: 0; background: #F5F5F5; }
        .card { text-align: center; background: #FFFFFF; padding: 40px 56px;
                border-radius: 12px; border: 1px solid #E0E0E0; }
        h1 { color: #000000; margin: 0 0 8px 0; font-size: 22px; }
        p { color: #555555; margin: 0; }
    </style>
</head>
<body>
    <div class="card">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(message))
}

// OpenBrowser opens the default browser at url.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
