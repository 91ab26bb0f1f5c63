package dataset

import (
	"fmt"
	"os"
	"strings"

	"github.com/cyclopcam/logs"
)

// InitializeOutput recreates the manifest directory from scratch.
// Any existing data directory under the layout root is deleted first.
// On return obj.names, obj.data, the empty train.txt and valid.txt, and the obj directory exist.
func InitializeOutput(log logs.Log, layout Layout, classNames []string) error {
	dataDir := layout.DataDir()
	if _, err := os.Stat(dataDir); err == nil {
		log.Infof("%v already exists. Deleting it and creating a new one", dataDir)
		if err := os.RemoveAll(dataDir); err != nil {
			return fmt.Errorf("Failed to delete old data folder '%v': %w", dataDir, err)
		}
	}
	if err := os.MkdirAll(layout.ObjectsDir(), 0755); err != nil {
		return fmt.Errorf("Failed to create '%v': %w", layout.ObjectsDir(), err)
	}

	var names strings.Builder
	for _, n := range classNames {
		names.WriteString(n)
		names.WriteString("\n")
	}
	if err := os.WriteFile(layout.NamesFile(), []byte(names.String()), 0644); err != nil {
		return err
	}
	log.Infof("Created %v with %v classes", layout.NamesFile(), len(classNames))

	for _, fn := range []string{layout.TrainFile(), layout.ValidFile()} {
		if err := os.WriteFile(fn, nil, 0644); err != nil {
			return err
		}
	}

	if err := os.WriteFile(layout.DataFile(), []byte(DataFileContent(len(classNames))), 0644); err != nil {
		return err
	}
	return nil
}

// DataFileContent is the content of obj.data. The final line has no line break.
func DataFileContent(numClasses int) string {
	s := fmt.Sprintf("classes = %v\n", numClasses)
	s += fmt.Sprintf("train = %v\n", relativeManifestPath(TrainFileName))
	s += fmt.Sprintf("valid = %v\n", relativeManifestPath(ValidFileName))
	s += fmt.Sprintf("names = %v\n", relativeManifestPath(NamesFileName))
	s += fmt.Sprintf("backup = %v/", BackupFolderName)
	return s
}
