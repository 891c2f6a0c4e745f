package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"golang.org/x/oauth2"
)

// TokenStorage handles storing and retrieving the OAuth token
type TokenStorage struct {
	path string
}

// NewTokenStorage creates a token storage backed by the given file
func NewTokenStorage(path string) (*TokenStorage, error) {
	if path == "" {
		return nil, errors.New("token path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create token directory: %w", err)
	}
	return &TokenStorage{path: path}, nil
}

// SaveToken saves the OAuth token to disk
func (s *TokenStorage) SaveToken(token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "   ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// LoadToken loads the OAuth token from disk. A missing file is not an error.
func (s *TokenStorage) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// CallbackPath returns the path component of a redirect URI, "/" when empty
func CallbackPath(redirectURI string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", fmt.Errorf("invalid redirect uri %q: %w", redirectURI, err)
	}
	if u.Path == "" {
		return "/", nil
	}
	return u.Path, nil
}

// CallbackPort returns the explicit port of a redirect URI, 80 otherwise
func CallbackPort(redirectURI string) (int, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return 0, fmt.Errorf("invalid redirect uri %q: %w", redirectURI, err)
	}
	if u.Port() == "" {
		return 80, nil
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return 0, fmt.Errorf("invalid port in redirect uri %q: %w", redirectURI, err)
	}
	return port, nil
}

// OAuthCallbackServer handles the OAuth callback and returns the authorization code
type OAuthCallbackServer struct {
	codeChan chan string
	state    string
	server   *http.Server
	wg       sync.WaitGroup
}

// NewOAuthCallbackServer creates a callback server expecting the given state value
func NewOAuthCallbackServer(state string) *OAuthCallbackServer {
	return &OAuthCallbackServer{
		codeChan: make(chan string, 1),
		state:    state,
	}
}

// Handler returns the callback handler mounted on path
func (s *OAuthCallbackServer) Handler(path string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(path, s.handleCallback)
	return mux
}

// Start starts the callback server on the specified port and path
func (s *OAuthCallbackServer) Start(port int, path string) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(path),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			LogError("Callback server error: %v", err)
		}
	}()

	LogInfo("Waiting for authorization on http://localhost:%d%s", port, path)
	return nil
}

func (s *OAuthCallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if s.state != "" && r.URL.Query().Get("state") != s.state {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "No authorization code received", http.StatusBadRequest)
		return
	}

	select {
	case s.codeChan <- code:
	default:
		LogWarning("Authorization code already received, ignoring callback")
	}

	w.Header().Set("Content-Type", "text/html")
	if _, err := fmt.Fprint(w, `<html><head><title>ytmanager</title></head>`+
		`<body><h1>Authorization Successful</h1>`+
		`<p>You can now close this window and return to the application.</p></body></html>`); err != nil {
		LogWarning("Failed to write response: %v", err)
	}
}

// WaitForCode waits for the authorization code
func (s *OAuthCallbackServer) WaitForCode() string {
	return <-s.codeChan
}

// Stop stops the callback server
func (s *OAuthCallbackServer) Stop() error {
	if s.server != nil {
		if err := s.server.Close(); err != nil {
			return fmt.Errorf("failed to stop callback server: %w", err)
		}
		s.wg.Wait()
	}
	return nil
}

// OpenURL opens the specified URL in the default browser
func (s *OAuthCallbackServer) OpenURL(url string) error {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("cannot open URL %s on this platform", url)
	}
	return err
}
