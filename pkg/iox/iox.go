package iox

import (
	"fmt"
	"io"
	"os"
)

// WriteStreamToFile writes src into dstFilename, creating it with the given permissions.
// A partially written file is removed. Returns the number of bytes written.
func WriteStreamToFile(dstFilename string, src io.Reader, perm os.FileMode) (int64, error) {
	dstFile, err := os.OpenFile(dstFilename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(dstFile, src)
	errClose := dstFile.Close()
	if err == nil {
		err = errClose
	}
	if err != nil {
		os.Remove(dstFilename)
		return 0, err
	}
	return n, nil
}

// CopyFile copies the content of srcFilename to dstFilename, and then copies the
// permission bits and modification time over as well. Returns the number of bytes copied.
func CopyFile(dstFilename, srcFilename string) (int64, error) {
	src, err := os.Open(srcFilename)
	if err != nil {
		return 0, err
	}
	defer src.Close()
	st, err := src.Stat()
	if err != nil {
		return 0, err
	}
	if !st.Mode().IsRegular() {
		return 0, fmt.Errorf("Cannot copy '%v': not a regular file", srcFilename)
	}
	n, err := WriteStreamToFile(dstFilename, src, st.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("Failed to copy '%v' to '%v': %w", srcFilename, dstFilename, err)
	}
	// OpenFile's perm is filtered by umask, so set it explicitly
	if err := os.Chmod(dstFilename, st.Mode().Perm()); err != nil {
		return 0, err
	}
	return n, os.Chtimes(dstFilename, st.ModTime(), st.ModTime())
}
