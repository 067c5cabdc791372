// Package format turns stored release fields into display strings.
package format

import (
	"fmt"
	"math"
)

// binaryPrefixes are the IEC prefixes tried in order before falling back to Yi
var binaryPrefixes = []string{"", "Ki", "Mi", "Gi", "Ti", "Pi", "Ei", "Zi"}

const byteSuffix = "B"

// FormatSize renders a byte count with base-1024 prefixes, e.g. "1.5 MiB"
func FormatSize(n int64) string {
	return FormatSizeFloat(float64(n))
}

// FormatSizeFloat is FormatSize for magnitudes beyond int64 range.
// Once every prefix up to Zi is exhausted the value is printed in Yi
// regardless of how large it still is.
func FormatSizeFloat(num float64) string {
	for _, unit := range binaryPrefixes {
		if math.Abs(num) < 1024.0 {
			return fmt.Sprintf("%3.1f %s%s", num, unit, byteSuffix)
		}
		num /= 1024.0
	}
	return fmt.Sprintf("%.1f %s%s", num, "Yi", byteSuffix)
}
