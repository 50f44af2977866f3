// Package fileaddr keeps an address book of file paths and sizes in a CSV
// file and indexes it into a browsable tree.
package fileaddr

import (
	"math"
	"strconv"
	"strings"
)

const bytesPerMB = 1024 * 1024

// Record is one row of an address book: a file or directory path and its size
// in megabytes.
type Record struct {
	Path   string  `csv:"File Path"`
	SizeMB float64 `csv:"Size (MB)"`
}

// ParseSize parses the size column of an address book row. Anything that is
// not a finite number (empty, "N/A", "NaN") is recorded as zero.
func ParseSize(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FormatSize renders a size the way it is stored in the size column.
func FormatSize(mb float64) string {
	return strconv.FormatFloat(mb, 'f', -1, 64)
}

// SizeMB converts a byte count to megabytes rounded to two decimals.
func SizeMB(bytes int64) float64 {
	return math.Round(float64(bytes)/bytesPerMB*100) / 100
}
