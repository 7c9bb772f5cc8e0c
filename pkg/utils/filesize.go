package utils

import "fmt"

const (
	B  = 1
	KB = 1024 * B
	MB = 1024 * KB
	GB = 1024 * MB
	TB = 1024 * GB
)

var units = []struct {
	size int64
	name string
}{
	{TB, "TB"},
	{GB, "GB"},
	{MB, "MB"},
	{KB, "KB"},
}

// FormatBytes renders a byte count the way pass reports show moved sizes:
// whole bytes below 1 KB, otherwise two decimals in the largest binary
// unit that fits ("2.10 KB"). Negative counts render as "0 B".
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	for _, unit := range units {
		if bytes >= unit.size {
			return fmt.Sprintf("%.2f %s", float64(bytes)/float64(unit.size), unit.name)
		}
	}
	return fmt.Sprintf("%d B", bytes)
}
