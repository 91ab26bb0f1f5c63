package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cyclopcam/darknetds/pkg/numsort"
	"github.com/cyclopcam/logs"
)

// DiscoverSubfolders returns the validated-samples folder of every immediate
// subdirectory of parent that has one, ordered by the number embedded in the batch
// folder name. Batch folders without a samples folder are logged and skipped.
func DiscoverSubfolders(log logs.Log, parent, samplesFolderName string) ([]string, error) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil, fmt.Errorf("Failed to read parent folder '%v': %w", parent, err)
	}
	batches := []string{}
	for _, e := range entries {
		batch := filepath.Join(parent, e.Name())
		if !isDir(batch) {
			continue
		}
		if !isDir(filepath.Join(batch, samplesFolderName)) {
			log.Warnf("No '%v' folder in %v. Skipping it", samplesFolderName, batch)
			continue
		}
		batches = append(batches, batch)
	}

	// Sort on the batch folder name, not the fixed samples folder name below it
	if err := numsort.Sort(batches); err != nil {
		return nil, fmt.Errorf("Cannot order batch folders: %w", err)
	}

	result := make([]string, len(batches))
	for i, b := range batches {
		result[i] = filepath.Join(b, samplesFolderName)
	}
	return result, nil
}

// isDir follows symlinks, like the directory test of a shell
func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
