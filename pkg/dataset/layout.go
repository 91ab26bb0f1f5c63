// Package dataset assembles validated image/annotation batches into a
// Darknet detection dataset.
//
// Input layout:
//
//	<parent>/<batch>/image_samples/{*.jpg,*.png,*.txt}
//
// Output layout:
//
//	<output>/data/obj.names
//	<output>/data/obj.data
//	<output>/data/train.txt
//	<output>/data/valid.txt
//	<output>/data/obj/<id>.{jpg,png,txt}
package dataset

import (
	"path"
	"path/filepath"
	"strconv"
)

const (
	DataFolderName    = "data"
	ObjectsFolderName = "obj"
	NamesFileName     = "obj.names"
	DataFileName      = "obj.data"
	TrainFileName     = "train.txt"
	ValidFileName     = "valid.txt"
	BackupFolderName  = "backup"

	// DefaultSamplesFolderName is the subdirectory of each batch folder that holds human-validated samples
	DefaultSamplesFolderName = "image_samples"

	// AnnotationExtension is the extension of a YOLO label file
	AnnotationExtension = ".txt"

	// DefaultValidFraction is the share of samples routed to the validation list
	DefaultValidFraction = 0.10
)

// ImageExtensions are the recognized image extensions. Matching is case sensitive.
var ImageExtensions = []string{".jpg", ".png"}

// IsImageExtension returns true if ext is one of ImageExtensions
func IsImageExtension(ext string) bool {
	for _, e := range ImageExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Layout resolves the paths of the output tree under an output root
type Layout struct {
	Root string
}

// DataDir is the manifest directory, which is wiped at the start of every run
func (l Layout) DataDir() string {
	return filepath.Join(l.Root, DataFolderName)
}

func (l Layout) ObjectsDir() string {
	return filepath.Join(l.Root, DataFolderName, ObjectsFolderName)
}

func (l Layout) NamesFile() string {
	return filepath.Join(l.Root, DataFolderName, NamesFileName)
}

func (l Layout) DataFile() string {
	return filepath.Join(l.Root, DataFolderName, DataFileName)
}

func (l Layout) TrainFile() string {
	return filepath.Join(l.Root, DataFolderName, TrainFileName)
}

func (l Layout) ValidFile() string {
	return filepath.Join(l.Root, DataFolderName, ValidFileName)
}

// ObjectPath is the on-disk path of a copied file with the given pair ID and extension
func (l Layout) ObjectPath(id int, ext string) string {
	return filepath.Join(l.ObjectsDir(), strconv.Itoa(id)+ext)
}

// RelativeObjectPath is the path written into train.txt and valid.txt.
// It is relative to the output root and always uses forward slashes.
func RelativeObjectPath(id int, ext string) string {
	return path.Join(DataFolderName, ObjectsFolderName, strconv.Itoa(id)+ext)
}

// relativeManifestPath is a path relative to the output root, as written into obj.data
func relativeManifestPath(name string) string {
	return path.Join(DataFolderName, name)
}
