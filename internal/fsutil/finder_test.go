package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	for _, name := range []string{"a.hcl", "b.yaml", "sub/c.hcl", "sub/d.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}

	// --- Act ---
	files, err := FindFilesByExtension([]string{dir}, ".hcl")

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.hcl"), files[0])
	assert.Equal(t, filepath.Join(dir, "sub", "c.hcl"), files[1])
}

func TestFindFilesByExtension_MultipleExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml", "c.hcl"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	files, err := FindFilesByExtension([]string{dir}, ".yaml", ".yml")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindFilesByExtension_DeduplicatesOverlappingPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.hcl")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	// The same file is reachable both via the directory walk and directly.
	files, err := FindFilesByExtension([]string{dir, file}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
}

func TestFindFilesByExtension_MissingPathIsSkipped(t *testing.T) {
	t.Parallel()

	files, err := FindFilesByExtension([]string{filepath.Join(t.TempDir(), "ghost")}, ".hcl")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFilesByExtension_SingleFilePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	files, err := FindFilesByExtension([]string{file}, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)

	none, err := FindFilesByExtension([]string{file}, ".hcl")
	require.NoError(t, err)
	assert.Empty(t, none)
}
