package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteBankingFile writes raw JSON into a fresh temp dir and returns its path
func WriteBankingFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "banking.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// BankingFilePath returns a path inside a fresh temp dir that does not exist yet
func BankingFilePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data", "banking.json")
}

// BreakDirectory replaces dir with a regular file so later writes inside it fail
func BreakDirectory(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("not a directory"), 0o644))
}
