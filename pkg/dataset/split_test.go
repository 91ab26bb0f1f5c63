package dataset

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

func TestValidationInterval(t *testing.T) {
	require.Equal(t, 10, ValidationInterval(2, 0.10))
	require.Equal(t, 10, ValidationInterval(1000, 0.10))
	require.Equal(t, 3, ValidationInterval(7, 0.3))
	require.Equal(t, 5, ValidationInterval(3, 0.2))
	// 2.5 rounds to even
	require.Equal(t, 2, ValidationInterval(4, 0.4))
	require.Equal(t, 1, ValidationInterval(9, 1))
	require.Equal(t, 0, ValidationInterval(0, 0.1))
}

func TestChooseSplit(t *testing.T) {
	require.Equal(t, SplitValid, ChooseSplit(0, 10))
	require.Equal(t, SplitTrain, ChooseSplit(1, 10))
	require.Equal(t, SplitTrain, ChooseSplit(9, 10))
	require.Equal(t, SplitValid, ChooseSplit(20, 10))
	require.Equal(t, SplitValid, ChooseSplit(3, 1))
}

func TestParseSplitIndex(t *testing.T) {
	s, err := ParseSplitIndex("")
	require.NoError(t, err)
	require.Equal(t, SplitIndexGlobal, s)
	s, err = ParseSplitIndex("local")
	require.NoError(t, err)
	require.Equal(t, SplitIndexLocal, s)
	_, err = ParseSplitIndex("random")
	require.Error(t, err)
}

func TestValidateFraction(t *testing.T) {
	require.NoError(t, validateFraction(0.1))
	require.NoError(t, validateFraction(1))
	require.Error(t, validateFraction(0))
	require.Error(t, validateFraction(-0.1))
	require.Error(t, validateFraction(1.5))
}
