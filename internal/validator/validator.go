package validator

import (
	"errors"
	"path/filepath"

	"github.com/gnzdotmx/ytmanager/internal/config"
	youtubesvc "github.com/gnzdotmx/ytmanager/internal/services/youtube"
	"github.com/gnzdotmx/ytmanager/internal/streamlib"
	"github.com/gnzdotmx/ytmanager/internal/utils"
)

// ValidateCredentials checks that the OAuth client file parses and reports
// whether a token is cached. A missing token is not an error, the next
// command runs the consent flow.
func ValidateCredentials(cfg *config.Config) error {
	if err := utils.ValidateFileExists("credentialsPath", cfg.CredentialsPath); err != nil {
		return err
	}
	if _, err := youtubesvc.OAuthConfig(cfg.CredentialsPath); err != nil {
		return &utils.ValidationError{Field: "credentialsPath", Message: "invalid OAuth client file", Err: err}
	}
	utils.LogVerbose("✓ credentials found at %s", cfg.CredentialsPath)

	storage, err := utils.NewTokenStorage(cfg.TokenPath)
	if err != nil {
		return &utils.ValidationError{Field: "tokenPath", Message: "cannot use token location", Err: err}
	}
	token, err := storage.LoadToken()
	if err != nil {
		return &utils.ValidationError{Field: "tokenPath", Message: "unreadable token", Err: err}
	}
	if token == nil {
		utils.LogWarning("No token at %s, run the auth command to authorize", cfg.TokenPath)
		return nil
	}

	utils.LogVerbose("✓ token found at %s", cfg.TokenPath)
	return nil
}

// ValidateLibrary checks the paths stored in the library settings. Unset
// paths are skipped.
func ValidateLibrary(lib *streamlib.StreamLib) error {
	var errs []error

	if dir := lib.VerticalsOptions.Path; dir != "" {
		if err := utils.ValidateDirectory("verticalsOptions.path", dir); err != nil {
			errs = append(errs, err)
		}
	}
	if dir := lib.ThumbPath; dir != "" {
		if err := utils.ValidateDirectory("thumbPath", dir); err != nil {
			errs = append(errs, err)
		}
	}
	if path := lib.TimestampsPath; path != "" {
		if err := utils.ValidateFileExists("timestampsPath", path); err != nil {
			errs = append(errs, err)
		}
	}
	if path := lib.PageDock; path != "" {
		if err := utils.ValidateDirectory("pageDock", filepath.Dir(path)); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := streamlib.ParseVisibility(string(lib.VerticalsOptions.Visibility)); err != nil {
		errs = append(errs, &utils.ValidationError{Field: "verticalsOptions.visibility", Message: err.Error()})
	}

	return errors.Join(errs...)
}
