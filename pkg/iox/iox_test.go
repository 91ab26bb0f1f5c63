package iox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "0.jpg")
	require.NoError(t, os.WriteFile(src, []byte("not really a jpeg"), 0640))
	mtime := time.Date(2021, time.March, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	n, err := CopyFile(dst, src)
	require.NoError(t, err)
	require.Equal(t, int64(17), n)

	raw, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "not really a jpeg", string(raw))
	st, err := os.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0640), st.Mode().Perm())
	require.True(t, st.ModTime().Equal(mtime))

	// Overwrite an existing destination
	require.NoError(t, os.WriteFile(src, []byte("v2"), 0640))
	_, err = CopyFile(dst, src)
	require.NoError(t, err)
	raw, err = os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "v2", string(raw))
}

func TestCopyFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := CopyFile(filepath.Join(dir, "out"), filepath.Join(dir, "missing"))
	require.Error(t, err)
	_, err = CopyFile(filepath.Join(dir, "out"), dir)
	require.Error(t, err)

	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("0 0.5 0.5 0.1 0.1\n"), 0644))
	_, err = CopyFile(filepath.Join(dir, "nodir", "out.txt"), src)
	require.Error(t, err)
}

func TestWriteStreamToFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "x")
	n, err := WriteStreamToFile(dst, strings.NewReader("hello"), 0644)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	raw, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "hello", string(raw))
}
