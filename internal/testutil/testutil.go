// Package testutil provides helper functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TempDir creates a temporary directory and registers a cleanup function.
// The directory is automatically deleted when the test completes.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "formatify-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Errorf("failed to cleanup temp dir %s: %v", dir, err)
		}
	})

	return dir
}

// WriteFile writes content to name inside a fresh temporary directory and
// returns the path. The extension of name selects the value file format.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(TempDir(t), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}

	return path
}

// IsolateConfig points the config lookup at an empty directory and blanks
// every FORMATIFY_* variable for the duration of the test, so the user's
// own configuration cannot leak in. It returns the config directory.
func IsolateConfig(t *testing.T) string {
	t.Helper()

	dir := TempDir(t)
	t.Setenv("XDG_CONFIG_HOME", dir)

	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "FORMATIFY_") {
			// Empty values are ignored by the config loader.
			t.Setenv(name, "")
		}
	}

	return dir
}
