// Package numsort orders file and folder names by the integer embedded in them,
// so that "frame-9.jpg" comes before "frame-10.jpg".
package numsort

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrNoDigits is returned by Key for a name without any decimal digit
var ErrNoDigits = errors.New("No numeric identifier")

// Key returns the integer formed by every decimal digit in the base name of path.
// Digits in parent directories are ignored.
// "batch_12/img-003.jpg" yields 3, and "2023_batch_7" yields 20237.
func Key(path string) (int64, error) {
	name := filepath.Base(path)
	var digits strings.Builder
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, fmt.Errorf("%w in '%v'", ErrNoDigits, path)
	}
	v, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("Numeric identifier of '%v' is out of range: %w", path, err)
	}
	return v, nil
}

type keyed struct {
	path     string
	key      int64
	numbered bool
}

// Sort sorts paths in place by Key.
// Names without digits come after all numbered names, ordered by name.
// Paths with equal keys are ordered by name, so the result never depends on the input order.
// If a key is out of range, paths is left untouched and the error is returned.
func Sort(paths []string) error {
	items := make([]keyed, len(paths))
	for i, p := range paths {
		k, err := Key(p)
		if err != nil && !errors.Is(err, ErrNoDigits) {
			return err
		}
		items[i] = keyed{path: p, key: k, numbered: err == nil}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.numbered != b.numbered {
			return a.numbered
		}
		if a.key != b.key {
			return a.key < b.key
		}
		return a.path < b.path
	})
	for i := range items {
		paths[i] = items[i].path
	}
	return nil
}
