package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cyclopcam/darknetds/pkg/numsort"
)

// PairMismatchError is returned when a samples folder has a different number of
// images and annotations. Missing lists the counterpart files that don't exist.
type PairMismatchError struct {
	Folder         string
	NumImages      int
	NumAnnotations int
	Missing        []string
}

func (e *PairMismatchError) Error() string {
	return fmt.Sprintf("%v has %v images but %v annotations (%v counterparts missing)", e.Folder, e.NumImages, e.NumAnnotations, len(e.Missing))
}

// ListSamples returns the images and annotations directly inside folder, each
// sorted by the number embedded in the file name
func ListSamples(folder string) (images, annotations []string, err error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to read samples folder '%v': %w", folder, err)
	}
	for _, e := range entries {
		p := filepath.Join(folder, e.Name())
		if e.IsDir() || !isFile(p) {
			continue
		}
		ext := filepath.Ext(p)
		if IsImageExtension(ext) {
			images = append(images, p)
		} else if ext == AnnotationExtension {
			annotations = append(annotations, p)
		}
	}
	if err := numsort.Sort(images); err != nil {
		return nil, nil, err
	}
	if err := numsort.Sort(annotations); err != nil {
		return nil, nil, err
	}
	return images, annotations, nil
}

// FindMissing returns the counterpart paths that do not exist.
// The counterpart of an image is its sibling annotation file.
// The counterpart of an annotation is a sibling image with any recognized extension,
// and is reported under the first recognized extension.
func FindMissing(paths []string) []string {
	missing := []string{}
	for _, p := range paths {
		noExt := strings.TrimSuffix(p, filepath.Ext(p))
		if filepath.Ext(p) == AnnotationExtension {
			found := false
			for _, ext := range ImageExtensions {
				if isFile(noExt + ext) {
					found = true
					break
				}
			}
			if !found {
				missing = append(missing, noExt+ImageExtensions[0])
			}
		} else if !isFile(noExt + AnnotationExtension) {
			missing = append(missing, noExt+AnnotationExtension)
		}
	}
	return missing
}

// checkPairing returns a PairMismatchError if the lists have different lengths
func checkPairing(folder string, images, annotations []string) error {
	if len(images) == len(annotations) {
		return nil
	}
	longer := images
	if len(annotations) > len(images) {
		longer = annotations
	}
	return &PairMismatchError{
		Folder:         folder,
		NumImages:      len(images),
		NumAnnotations: len(annotations),
		Missing:        FindMissing(longer),
	}
}

func stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
