// Package kibi formats byte counts in powers of 1024
package kibi

import "fmt"

var units = []string{"KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes returns a size such as "512 bytes" or "35.4 MB".
// Above 1023 bytes the value carries one decimal, truncated rather than rounded.
func FormatBytes(b int64) string {
	if b < 1024 {
		return fmt.Sprintf("%v bytes", b)
	}
	unit := 0
	scale := int64(1024)
	for unit < len(units)-1 && b/scale >= 1024 {
		scale *= 1024
		unit++
	}
	whole := b / scale
	rem, div := b%scale, scale
	if div > 1024 {
		// keep rem*10 inside int64 for the larger units
		rem >>= 10
		div >>= 10
	}
	tenths := rem * 10 / div
	return fmt.Sprintf("%v.%v %v", whole, tenths, units[unit])
}
