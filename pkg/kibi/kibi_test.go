package kibi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "0 bytes", FormatBytes(0))
	require.Equal(t, "1023 bytes", FormatBytes(1023))
	require.Equal(t, "1.0 KB", FormatBytes(1024))
	require.Equal(t, "1.4 KB", FormatBytes(1024+500))
	require.Equal(t, "1023.9 KB", FormatBytes(1024*1024-1))
	require.Equal(t, "35.5 MB", FormatBytes(35*1024*1024+512*1024))
	require.Equal(t, "1.0 GB", FormatBytes(1024*1024*1024))
	require.Equal(t, "1.0 TB", FormatBytes(1024*1024*1024*1024))
	require.Equal(t, "1.0 PB", FormatBytes(1024*1024*1024*1024*1024))
	require.Equal(t, "7.9 EB", FormatBytes(1<<63-1))
}
