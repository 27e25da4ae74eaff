package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_WriteReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0644))

	var fsys FileSystem
	require.NoError(t, fsys.WriteFile(path, []byte("new")))

	got, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestFileSystem_WriteCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qr", "0_ETH.png")

	var fsys FileSystem
	require.NoError(t, fsys.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileSystem_ReadStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	require.NoError(t, os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, "abc"...), 0600))

	var fsys FileSystem
	got, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileSystem_ReadMissing(t *testing.T) {
	var fsys FileSystem
	_, err := fsys.ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
