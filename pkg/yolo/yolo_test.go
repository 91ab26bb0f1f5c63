package yolo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := "0 0.5 0.5 0.2 0.4\n\n  2 0.1 0.2 0.05 0.05  \n"
	a, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, a.Invalid, 0)
	require.Equal(t, []Box{
		{Class: 0, CenterX: 0.5, CenterY: 0.5, Width: 0.2, Height: 0.4},
		{Class: 2, CenterX: 0.1, CenterY: 0.2, Width: 0.05, Height: 0.05},
	}, a.Boxes)
}

func TestParseInvalidLines(t *testing.T) {
	src := "0 0.5 0.5 0.2\nx 0.5 0.5 0.2 0.2\n1 0.5 0.5 1.5 0.2\n-1 0.5 0.5 0.2 0.2\n3 0.5 0.5 0.2 0.2\n"
	a, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, a.Boxes, 1)
	require.Equal(t, 3, a.Boxes[0].Class)
	require.Len(t, a.Invalid, 4)
	require.Equal(t, 1, a.Invalid[0].Line)
	require.Equal(t, 4, a.Invalid[3].Line)
	require.Contains(t, a.Invalid[2].Error(), "outside")
}

func TestRect(t *testing.T) {
	b := Box{Class: 0, CenterX: 0.5, CenterY: 0.5, Width: 0.5, Height: 0.25}
	x, y, w, h := b.Rect(200, 100)
	require.Equal(t, 50.0, x)
	require.Equal(t, 37.5, y)
	require.Equal(t, 100.0, w)
	require.Equal(t, 25.0, h)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 0.5 0.5 0.1 0.1\n"), 0644))
	a, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, a.Boxes, 1)

	_, err = ParseFile(path + ".missing")
	require.Error(t, err)
}
