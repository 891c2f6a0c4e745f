package cmd

import (
	"context"

	"github.com/gnzdotmx/ytmanager/internal/actions"
	"github.com/gnzdotmx/ytmanager/internal/config"
	youtubesvc "github.com/gnzdotmx/ytmanager/internal/services/youtube"
	"github.com/gnzdotmx/ytmanager/internal/streamlib"
	"github.com/gnzdotmx/ytmanager/internal/utils"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if libraryPath != "" {
		cfg.LibraryPath = libraryPath
	}
	return cfg, nil
}

func retryPolicy(cfg *config.Config) youtubesvc.RetryPolicy {
	return youtubesvc.RetryPolicy{
		Attempts: cfg.Retry.Attempts,
		Min:      cfg.Retry.MinDelay,
		Max:      cfg.Retry.MaxDelay,
	}
}

func newClient(ctx context.Context, cfg *config.Config) (*youtubesvc.Service, error) {
	return youtubesvc.NewService(ctx, youtubesvc.AuthOptions{
		CredentialsPath: cfg.CredentialsPath,
		TokenPath:       cfg.TokenPath,
		Retry:           retryPolicy(cfg),
	})
}

// loadEnv reads the configuration and the stream library, authenticating
// against the platform when withClient is set.
func loadEnv(ctx context.Context, withClient bool) (*actions.Env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	env := &actions.Env{
		Library: streamlib.Load(cfg.LibraryPath),
		Config:  cfg,
	}
	if !withClient {
		if historyFlag {
			utils.LogWarning("--history ignored, this command does not reach the platform")
		}
		return env, nil
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	env.Client = client
	env.History = historyFlag
	return env, nil
}
