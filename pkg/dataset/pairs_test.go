package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListSamples(t *testing.T) {
	folder := makeBatch(t, t.TempDir(), "b1", 11, 11)
	require.NoError(t, os.WriteFile(filepath.Join(folder, "12.png"), []byte("png"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "12.txt"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "notes.md"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "13.JPG"), []byte(""), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(folder, "14.txt"), 0755))

	images, annotations, err := ListSamples(folder)
	require.NoError(t, err)
	require.Len(t, images, 12)
	require.Len(t, annotations, 12)
	require.Equal(t, filepath.Join(folder, "1.jpg"), images[0])
	require.Equal(t, filepath.Join(folder, "2.jpg"), images[1])
	require.Equal(t, filepath.Join(folder, "10.jpg"), images[9])
	require.Equal(t, filepath.Join(folder, "12.png"), images[11])
	require.Equal(t, filepath.Join(folder, "10.txt"), annotations[9])
}

func TestFindMissing(t *testing.T) {
	folder := makeBatch(t, t.TempDir(), "b1", 3, 2)
	images, annotations, err := ListSamples(folder)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(folder, "3.txt")}, FindMissing(images))

	err = checkPairing(folder, images, annotations)
	var mismatch *PairMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, 3, mismatch.NumImages)
	require.Equal(t, 2, mismatch.NumAnnotations)
	require.Equal(t, []string{filepath.Join(folder, "3.txt")}, mismatch.Missing)

	// More annotations than images
	folder = makeBatch(t, t.TempDir(), "b2", 1, 3)
	require.NoError(t, os.Rename(filepath.Join(folder, "1.jpg"), filepath.Join(folder, "1.png")))
	images, annotations, err = ListSamples(folder)
	require.NoError(t, err)
	err = checkPairing(folder, images, annotations)
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, []string{filepath.Join(folder, "2.jpg"), filepath.Join(folder, "3.jpg")}, mismatch.Missing)

	require.NoError(t, checkPairing(folder, []string{"a"}, []string{"b"}))
}
