package scanners

import (
	"strings"
	"time"
)

// maxObjectSample caps per-bucket object listing; beyond it the count is
// reported as "1000+".
const maxObjectSample = 1000

const gib = 1 << 30

// lastSegment extracts the resource name from a fully qualified API URL,
// e.g. ".../zones/us-central1-a" -> "us-central1-a".
func lastSegment(url string) string {
	if url == "" {
		return ""
	}
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}

func parseTimestamp(ts string) time.Time {
	t, _ := time.Parse(time.RFC3339, ts)
	return t
}
