package models

import (
	"os"
	"path/filepath"
	"testing"
)

// FixturePath resolves a file under the repository's testdata directory. It
// assumes the calling test runs two levels below the root, as every package
// under internal/ and cmd/ does.
func FixturePath(t *testing.T, name string) string {
	t.Helper()

	path, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	if err != nil {
		t.Fatalf("resolving fixture %s: %v", name, err)
	}
	return path
}

// OpenFixture opens a testdata file for reading and closes it when the test
// ends.
func OpenFixture(t *testing.T, name string) *os.File {
	t.Helper()

	f, err := os.Open(FixturePath(t, name))
	if err != nil {
		t.Fatalf("opening fixture %s: %v", name, err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}
