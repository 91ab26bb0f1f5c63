package numsort

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	k, err := Key("/data/batch_12/image_samples/img-003.jpg")
	require.NoError(t, err)
	require.Equal(t, int64(3), k)

	k, err = Key("2023_batch_7")
	require.NoError(t, err)
	require.Equal(t, int64(20237), k)

	k, err = Key("42")
	require.NoError(t, err)
	require.Equal(t, int64(42), k)

	_, err = Key("/data/7/samples.txt")
	require.True(t, errors.Is(err, ErrNoDigits))

	_, err = Key("99999999999999999999999.jpg")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNoDigits))
}

func TestSort(t *testing.T) {
	paths := []string{"x/frame-10.jpg", "x/frame-9.jpg", "x/frame-100.jpg", "x/frame-1.jpg"}
	require.NoError(t, Sort(paths))
	require.Equal(t, []string{"x/frame-1.jpg", "x/frame-9.jpg", "x/frame-10.jpg", "x/frame-100.jpg"}, paths)

	// Equal keys fall back to the name
	paths = []string{"b1", "a1", "c0"}
	require.NoError(t, Sort(paths))
	require.Equal(t, []string{"c0", "a1", "b1"}, paths)

	// Leading zeros don't change the order
	paths = []string{"s/003.txt", "s/10.txt", "s/2.txt"}
	require.NoError(t, Sort(paths))
	require.Equal(t, []string{"s/2.txt", "s/003.txt", "s/10.txt"}, paths)

	// Unnumbered names go last
	paths = []string{"b.jpg", "7.jpg", "a.jpg"}
	require.NoError(t, Sort(paths))
	require.Equal(t, []string{"7.jpg", "a.jpg", "b.jpg"}, paths)

	paths = []string{"b2", "99999999999999999999999"}
	require.Error(t, Sort(paths))
	require.Equal(t, []string{"b2", "99999999999999999999999"}, paths)
}
