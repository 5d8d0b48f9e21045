package adapters

import "fmt"

// FormatSizeBytes renders a byte count as a human-readable size with one
// decimal, stepping through KB/MB/GB and stopping at TB.
func FormatSizeBytes(bytes int64) string {
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}
