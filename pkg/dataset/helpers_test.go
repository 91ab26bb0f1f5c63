package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeBatch creates <parent>/<batch>/image_samples with numImages images and
// numAnnotations annotations, named 1.jpg, 2.jpg ... and 1.txt, 2.txt ...
// Returns the samples folder.
func makeBatch(t *testing.T, parent, batch string, numImages, numAnnotations int) string {
	folder := filepath.Join(parent, batch, DefaultSamplesFolderName)
	require.NoError(t, os.MkdirAll(folder, 0755))
	for i := 1; i <= numImages; i++ {
		content := fmt.Sprintf("%v/%v image", batch, i)
		require.NoError(t, os.WriteFile(filepath.Join(folder, fmt.Sprintf("%v.jpg", i)), []byte(content), 0644))
	}
	for i := 1; i <= numAnnotations; i++ {
		content := fmt.Sprintf("%v 0.5 0.5 0.25 0.25\n", i%2)
		require.NoError(t, os.WriteFile(filepath.Join(folder, fmt.Sprintf("%v.txt", i)), []byte(content), 0644))
	}
	return folder
}

func writeConfig(t *testing.T, dir string, content string) string {
	fn := filepath.Join(dir, "configuration.json")
	require.NoError(t, os.WriteFile(fn, []byte(content), 0644))
	return fn
}

func testConfig() *Config {
	return &Config{Classes: map[string]string{"0": "person", "1": "car"}}
}

func readLines(t *testing.T, fn string) []string {
	raw, err := os.ReadFile(fn)
	require.NoError(t, err)
	s := strings.TrimSuffix(string(raw), "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
