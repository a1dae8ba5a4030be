package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	resolved, err := ResolvePath("~/Documents")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Documents"), resolved)

	_, err = ResolvePath("")
	assert.Error(t, err)

	abs, err := ResolvePath(".")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, EnsureDir(dir))
	assert.True(t, DirExists(dir))

	// idempotent
	require.NoError(t, EnsureDir(dir))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(filepath.Join(dir, "nope")))
	assert.False(t, FileExists(dir), "directories are not files")

	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, FileExists(path))
}
