package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_CreatesParentsAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "lead-index.txt")

	require.NoError(t, WriteFileAtomic(path, []byte("first\n"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("second\n"), 0o644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files may be left behind")
	assert.Equal(t, "lead-index.txt", entries[0].Name())
}

func TestWriteFileAtomic_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")

	require.NoError(t, WriteFileAtomic(path, nil, 0o644))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWriteFileAtomic_TargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644))

	err := WriteFileAtomic(target, []byte("data"), 0o644)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "the temporary file must be removed on failure")
}

func TestWriteFileAtomic_ReplacesSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.txt")
	link := filepath.Join(dir, "lead-index.txt")
	require.NoError(t, os.WriteFile(target, []byte("original\n"), 0o644))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	require.NoError(t, WriteFileAtomic(link, []byte("new\n"), 0o644))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular(), "the link itself is replaced")

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(got))
}

func TestTempPath(t *testing.T) {
	a := TempPath(filepath.Join("out", "details.txt"))
	b := TempPath(filepath.Join("out", "details.txt"))

	assert.NotEqual(t, a, b)
	assert.Equal(t, "out", filepath.Dir(a))
	assert.True(t, strings.HasPrefix(filepath.Base(a), ".details.txt."))
	assert.True(t, strings.HasSuffix(a, ".tmp"))
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	assert.True(t, FileExists(path))
}
