package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateRequired checks that a required value is set
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// ValidateChoice checks that value is one of the alternatives. Empty values pass.
func ValidateChoice(field, value string, alternatives []string) error {
	if value == "" {
		return nil
	}
	for _, alt := range alternatives {
		if value == alt {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("invalid value %q, expected one of %v", value, alternatives),
	}
}

// ValidateFileExists checks that path points to a regular file
func ValidateFileExists(field, path string) error {
	if path == "" {
		return &ValidationError{Field: field, Message: "path is required"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("file does not exist: %s", path),
			Err:     err,
		}
	}
	if info.IsDir() {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("expected a file, got a directory: %s", path),
		}
	}
	return nil
}

// ValidateDirectory checks that path points to an existing directory
func ValidateDirectory(field, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("directory does not exist: %s", path),
			Err:     err,
		}
	}
	if !info.IsDir() {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("not a directory: %s", path),
		}
	}
	return nil
}

// ValidateFileExtension checks if a file has one of the allowed extensions
func ValidateFileExtension(filePath string, allowedExts []string) error {
	if hasExtension(filePath, allowedExts) {
		return nil
	}
	return &ValidationError{
		Field:   "extension",
		Message: fmt.Sprintf("file extension %s not allowed. Allowed extensions: %v", filepath.Ext(filePath), allowedExts),
	}
}
