// Package storage is a small blob store abstraction, used to ship a finished
// dataset to wherever the training machines read it from.
package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cyclopcam/logs"
)

var ErrInvalidName = errors.New("Invalid file name")

// Storage is an abstraction of a blob store (eg GCS).
// Names always use forward slashes.
type Storage interface {
	// When finished, you must close the WriteCloser
	WriteFile(name string) (io.WriteCloser, error)

	// When finished, you must close File.Reader
	ReadFile(name string) (*File, error)

	DeleteFile(name string) error

	// List returns the names of all files whose name starts with prefix
	List(prefix string) ([]string, error)
}

// File is an element in blob storage.
type File struct {
	Reader     io.ReadCloser
	ModifiedAt time.Time
	Size       int64
}

func WriteFile(s Storage, name string, content io.Reader) error {
	f, err := s.WriteFile(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(f, content)
	errClose := f.Close()
	if err != nil {
		return err
	}
	return errClose
}

func ReadFile(s Storage, name string) ([]byte, error) {
	f, err := s.ReadFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Reader.Close()
	return io.ReadAll(f.Reader)
}

// Open returns a GCS store for targets of the form gs://bucket/prefix,
// and a filesystem store rooted at target for anything else.
func Open(log logs.Log, target string) (Storage, error) {
	if bucket, prefix, ok := ParseGCSTarget(target); ok {
		if bucket == "" {
			return nil, fmt.Errorf("No bucket in '%v'", target)
		}
		return NewStorageGCS(log, bucket, prefix)
	}
	return NewStorageFS(log, target)
}

// ParseGCSTarget splits gs://bucket/some/prefix into "bucket" and "some/prefix"
func ParseGCSTarget(target string) (bucket, prefix string, ok bool) {
	rest, found := strings.CutPrefix(target, "gs://")
	if !found {
		return "", "", false
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	return bucket, strings.Trim(prefix, "/"), true
}

func validateName(name string) error {
	if name == "" || strings.Contains(name, "..") || strings.HasPrefix(name, "/") {
		return fmt.Errorf("%w %v", ErrInvalidName, name)
	}
	return nil
}
