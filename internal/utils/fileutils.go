package utils

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ImageExtensions are the file types accepted as thumbnails
	ImageExtensions = []string{"png", "jpeg", "jpg"}
	// VideoExtensions are the file types accepted as verticals
	VideoExtensions = []string{"mkv", "mp4", "mov", "avi"}
)

// ErrNoMatchingFile is returned when a directory holds no file of the wanted type
var ErrNoMatchingFile = errors.New("no matching file")

// LatestFile returns the name of the most recently modified regular file in dir.
// When exts is empty every regular file is a candidate. The scan is not recursive.
func LatestFile(dir string, exts []string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var (
		latest      string
		latestMtime time.Time
	)
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !hasExtension(entry.Name(), exts) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			LogWarning("Failed to stat %s: %v", entry.Name(), err)
			continue
		}
		if latest == "" || info.ModTime().After(latestMtime) {
			latest = entry.Name()
			latestMtime = info.ModTime()
		}
	}

	if latest == "" {
		return "", fmt.Errorf("%w in %s", ErrNoMatchingFile, dir)
	}

	LogDebug("Latest file in %s is %s", dir, latest)
	return latest, nil
}

func hasExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, allowed := range exts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ResolveFile returns file when set, otherwise the newest file of the given types in dir
func ResolveFile(file, dir string, exts []string) (string, error) {
	if file != "" {
		return file, nil
	}
	if dir == "" {
		return "", &ValidationError{Field: "path", Message: "a file or a directory is required"}
	}
	name, err := LatestFile(dir, exts)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ReadTextFile reads a text file and normalizes its line endings
func ReadTextFile(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			LogWarning("Failed to close file: %v", err)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	LogDebug("Read %d lines from %s", len(lines), filePath)
	return strings.Join(lines, "\n"), nil
}

// WriteTextFile writes text to a file, replacing its content
func WriteTextFile(filePath string, content string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			LogWarning("Failed to close file: %v", err)
		}
	}()

	writer := bufio.NewWriter(f)
	if _, err := writer.WriteString(content); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	LogDebug("Successfully wrote content to %s", filePath)
	return nil
}

// ExpandHomeDir expands a path if it starts with "~/"
func ExpandHomeDir(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
