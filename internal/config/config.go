// Package config loads the application configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gnzdotmx/ytmanager/internal/streamlib"
	"github.com/gnzdotmx/ytmanager/internal/utils"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is read when no config path is given and it exists
	DefaultFile = "ytmanager.yaml"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "YTMANAGER_"
)

// Config holds the application configuration
type Config struct {
	CredentialsPath    string       `yaml:"credentialsPath"`
	TokenPath          string       `yaml:"tokenPath"`
	LibraryPath        string       `yaml:"libraryPath"`
	RegionCode         string       `yaml:"regionCode"`
	ThumbnailSizeLimit int          `yaml:"thumbnailSizeLimit"`
	Server             ServerConfig `yaml:"server"`
	Retry              RetryConfig  `yaml:"retry"`
}

// ServerConfig configures the REST server
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RetryConfig bounds retries of read-only API calls
type RetryConfig struct {
	Attempts int           `yaml:"attempts"`
	MinDelay time.Duration `yaml:"minDelay"`
	MaxDelay time.Duration `yaml:"maxDelay"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		CredentialsPath:    "creds.json",
		TokenPath:          defaultTokenPath(),
		LibraryPath:        streamlib.DefaultFile,
		RegionCode:         "fr",
		ThumbnailSizeLimit: utils.ThumbnailSizeLimit,
		Server: ServerConfig{
			Host: "localhost",
			Port: 3001,
		},
		Retry: RetryConfig{
			Attempts: 4,
			MinDelay: 500 * time.Millisecond,
			MaxDelay: 10 * time.Second,
		},
	}
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".ytmanager-token.json"
	}
	return filepath.Join(dir, "ytmanager", "token.json")
}

// Load builds the configuration from the defaults, the config file and
// the environment, in that order, and validates the result. An empty path
// reads DefaultFile when it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
		utils.LogVerbose("Loaded configuration from %s", path)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	path, err := utils.ExpandHomeDir(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from YTMANAGER_* variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"CREDENTIALS_PATH": &c.CredentialsPath,
		"TOKEN_PATH":       &c.TokenPath,
		"LIBRARY_PATH":     &c.LibraryPath,
		"REGION_CODE":      &c.RegionCode,
		"SERVER_HOST":      &c.Server.Host,
	}
	for key, field := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*field = v
		}
	}

	ints := map[string]*int{
		"SERVER_PORT":          &c.Server.Port,
		"THUMBNAIL_SIZE_LIMIT": &c.ThumbnailSizeLimit,
		"RETRY_ATTEMPTS":       &c.Retry.Attempts,
	}
	for key, field := range ints {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return &utils.ValidationError{
				Field:   EnvPrefix + key,
				Message: fmt.Sprintf("invalid integer %q", v),
				Err:     err,
			}
		}
		*field = n
	}
	return nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	var errs []error

	if err := utils.ValidateRequired("credentialsPath", c.CredentialsPath); err != nil {
		errs = append(errs, err)
	}
	if err := utils.ValidateRequired("tokenPath", c.TokenPath); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, &utils.ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Server.Port),
		})
	}
	if c.ThumbnailSizeLimit <= 0 {
		errs = append(errs, &utils.ValidationError{
			Field:   "thumbnailSizeLimit",
			Message: "must be positive",
		})
	}
	if c.Retry.Attempts < 1 {
		errs = append(errs, &utils.ValidationError{
			Field:   "retry.attempts",
			Message: "must be at least 1",
		})
	}
	if c.Retry.MaxDelay < c.Retry.MinDelay {
		errs = append(errs, &utils.ValidationError{
			Field:   "retry.maxDelay",
			Message: "must not be lower than retry.minDelay",
		})
	}

	return errors.Join(errs...)
}
