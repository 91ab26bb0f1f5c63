package dataset

import (
	"fmt"
	"math"
)

// SplitIndex selects which index the validation modulo test is applied to
type SplitIndex string

const (
	// SplitIndexGlobal tests the run-wide pair ID.
	// Because the interval is recomputed per batch but the ID carries over between
	// batches, the validation share of a single batch can drift from the configured fraction.
	SplitIndexGlobal SplitIndex = "global"

	// SplitIndexLocal tests the position of the pair inside its batch,
	// so every batch contributes ceil(n/K) validation samples.
	SplitIndexLocal SplitIndex = "local"
)

// ParseSplitIndex accepts "global" or "local". An empty string means global.
func ParseSplitIndex(s string) (SplitIndex, error) {
	switch SplitIndex(s) {
	case "", SplitIndexGlobal:
		return SplitIndexGlobal, nil
	case SplitIndexLocal:
		return SplitIndexLocal, nil
	}
	return "", fmt.Errorf("Unknown split index '%v' (must be '%v' or '%v')", s, SplitIndexGlobal, SplitIndexLocal)
}

// Split is the list a sample is written to
type Split string

const (
	SplitTrain Split = "train"
	SplitValid Split = "valid"
)

// ValidationInterval returns K, where every K-th sample of a batch with numImages
// images goes to validation. K = round(n / (n * fraction)), rounding half to even.
// Returns 0 when numImages is 0.
func ValidationInterval(numImages int, fraction float64) int {
	if numImages == 0 {
		return 0
	}
	n := float64(numImages)
	k := int(math.RoundToEven(n / (n * fraction)))
	if k < 1 {
		k = 1
	}
	return k
}

// ChooseSplit decides the list for a sample with the given index and interval
func ChooseSplit(index, interval int) Split {
	if index%interval == 0 {
		return SplitValid
	}
	return SplitTrain
}

func validateFraction(fraction float64) error {
	if math.IsNaN(fraction) || fraction <= 0 || fraction > 1 {
		return fmt.Errorf("Validation fraction %v must be greater than 0 and at most 1", fraction)
	}
	return nil
}
