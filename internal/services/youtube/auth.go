package youtube

import (
	"context"
	"fmt"
	"os"

	"github.com/gnzdotmx/ytmanager/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Scope required for broadcast, video and playlist management
const Scope = youtube.YoutubeForceSslScope

// DefaultRedirectURL is used when the credentials file lists none
const DefaultRedirectURL = "http://localhost:8080"

// AuthOptions locates the OAuth client credentials and the cached token
type AuthOptions struct {
	CredentialsPath string
	TokenPath       string
	Retry           RetryPolicy
}

// OAuthConfig reads the client credentials file
func OAuthConfig(credentialsPath string) (*oauth2.Config, error) {
	credentials, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(credentials, Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAuth config: %w", err)
	}
	if config.RedirectURL == "" {
		config.RedirectURL = DefaultRedirectURL
	}
	return config, nil
}

// Token returns the cached token, running the consent flow in the browser
// when there is none or it can no longer be refreshed.
func Token(ctx context.Context, config *oauth2.Config, storage *utils.TokenStorage) (*oauth2.Token, error) {
	token, err := storage.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	if token != nil && (token.Valid() || token.RefreshToken != "") {
		utils.LogVerbose("Using existing authorization token")
		return token, nil
	}

	port, err := utils.CallbackPort(config.RedirectURL)
	if err != nil {
		return nil, err
	}
	path, err := utils.CallbackPath(config.RedirectURL)
	if err != nil {
		return nil, err
	}

	state := uuid.NewString()
	callbackServer := utils.NewOAuthCallbackServer(state)
	if err := callbackServer.Start(port, path); err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}
	defer func() {
		if err := callbackServer.Stop(); err != nil {
			utils.LogWarning("Failed to stop callback server: %v", err)
		}
	}()

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	utils.LogInfo("Authorize this app by visiting: %s", authURL)
	if err := callbackServer.OpenURL(authURL); err != nil {
		utils.LogWarning("Failed to open browser: %v", err)
	}

	codeCh := make(chan string, 1)
	go func() { codeCh <- callbackServer.WaitForCode() }()

	var code string
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case code = <-codeCh:
	}

	token, err = config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := storage.SaveToken(token); err != nil {
		utils.LogWarning("Failed to save token: %v", err)
	}
	return token, nil
}

// NewService authenticates and returns a ready Client
func NewService(ctx context.Context, opts AuthOptions) (*Service, error) {
	config, err := OAuthConfig(opts.CredentialsPath)
	if err != nil {
		return nil, err
	}

	storage, err := utils.NewTokenStorage(opts.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token storage: %w", err)
	}

	token, err := Token(ctx, config, storage)
	if err != nil {
		return nil, err
	}

	yt, err := youtube.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	retry := opts.Retry
	if retry.Attempts == 0 {
		retry = DefaultRetryPolicy
	}
	return NewWithService(yt, WithRetryPolicy(retry)), nil
}
