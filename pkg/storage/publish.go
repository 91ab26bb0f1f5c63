package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cyclopcam/logs"
)

// CheckTarget returns an error if s is a filesystem store whose dir/ tree overlaps localRoot/dir.
func CheckTarget(s Storage, localRoot, dir string) error {
	store, ok := s.(*StorageFS)
	if !ok {
		return nil
	}
	src, err := filepath.Abs(filepath.Join(localRoot, dir))
	if err != nil {
		return err
	}
	dst := filepath.Join(store.Root, dir)
	if isInside(src, dst) || isInside(dst, src) {
		return fmt.Errorf("Publish target %v overlaps the dataset at %v", dst, src)
	}
	return nil
}

// isInside returns true if path is dir or anything below it. Both must be absolute.
func isInside(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Publish uploads every file below localRoot/dir into s, under names of the form dir/...
// Files that already exist in s under dir/ but not locally are deleted, so the
// published tree matches the local one exactly.
// Returns the number of files uploaded.
func Publish(log logs.Log, s Storage, localRoot, dir string) (int, error) {
	if err := CheckTarget(s, localRoot, dir); err != nil {
		return 0, err
	}
	local := map[string]string{} // name in store -> local path
	srcDir := filepath.Join(localRoot, dir)
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(localRoot, path)
		if err != nil {
			return err
		}
		local[filepath.ToSlash(rel)] = path
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("Failed to scan %v: %w", srcDir, err)
	}

	existing, err := s.List(dir + "/")
	if err != nil {
		return 0, fmt.Errorf("Failed to list existing files: %w", err)
	}
	nDeleted := 0
	for _, name := range existing {
		if _, ok := local[name]; !ok {
			if err := s.DeleteFile(name); err != nil {
				return 0, fmt.Errorf("Failed to delete stale file %v: %w", name, err)
			}
			nDeleted++
		}
	}
	if nDeleted != 0 {
		log.Infof("Deleted %v stale files", nDeleted)
	}

	n := 0
	for name, path := range local {
		if err := uploadFile(s, name, path); err != nil {
			return n, fmt.Errorf("Failed to upload %v: %w", path, err)
		}
		n++
		if n%1000 == 0 {
			log.Infof("Uploaded %v/%v files", n, len(local))
		}
	}
	log.Infof("Published %v files", n)
	return n, nil
}

func uploadFile(s Storage, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteFile(s, name, f)
}
