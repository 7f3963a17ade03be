package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"parcelas/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	err := os.WriteFile(testFile, []byte("test"), 0600)
	assert.NoError(t, err)

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.txt")
	err := os.WriteFile(testFile, []byte("test"), 0600)
	assert.NoError(t, err)
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "new", "nested", "dir")
	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	// Existing directory is fine
	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.json")
	require.NoError(t, os.WriteFile(testFile, []byte("[]"), 0600))

	data, err := fileutils.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = fileutils.ReadFile(filepath.Join(tmpDir, "missing.json"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "sub", "out.csv")
	require.NoError(t, fileutils.WriteFile(testFile, []byte("a,b"), 0644))

	data, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "a,b", string(data))
}

func TestWriteFileAtomic(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "data", "compras_parceladas_data.json")

	require.NoError(t, fileutils.WriteFileAtomic(target, []byte("[1]"), 0600))
	require.NoError(t, fileutils.WriteFileAtomic(target, []byte("[2]"), 0600))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "[2]", string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestListFilesWithExtension(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"b.json", "a.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "dir.json"), 0750))

	files, err := fileutils.ListFilesWithExtension(tmpDir, ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "a.json"), filepath.Join(tmpDir, "b.json")}, files)

	_, err = fileutils.ListFilesWithExtension(filepath.Join(tmpDir, "missing"), ".json")
	assert.Error(t, err)
}
