package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// WriteFile creates path with content and mode, making parent directories.
// It fails the test if the file cannot be created.
func WriteFile(t *testing.T, fsys afero.Fs, path, content string, mode os.FileMode) {
	t.Helper()

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), mode); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
}

// MkdirAll creates a directory tree
func MkdirAll(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()

	if err := fsys.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
}

// ReadString returns the content of path
func ReadString(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// AssertFileContent checks that a file exists and has the expected content.
func AssertFileContent(t *testing.T, fsys afero.Fs, path, expected string) {
	t.Helper()

	actual := ReadString(t, fsys, path)
	if actual != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertNoFile checks that a file does not exist.
func AssertNoFile(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()

	if ok, _ := afero.Exists(fsys, path); ok {
		t.Errorf("File %s exists but should not", path)
	}
}
