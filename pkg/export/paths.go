package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const timestampLayout = "20060102_150405"

// sanitizeAccount keeps billing account IDs safe to embed in file names.
func sanitizeAccount(account string) string {
	return strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(account)
}

func artifactPath(dir, pattern, account string, ts time.Time) string {
	name := fmt.Sprintf(pattern, sanitizeAccount(account), ts.Format(timestampLayout))
	return filepath.Join(dir, name)
}

func ScanReportPath(dir, account string, ts time.Time) string {
	return artifactPath(dir, "unused_resources_report_%s_%s.xlsx", account, ts)
}

func CandidatesCSVPath(dir, account string, ts time.Time) string {
	return artifactPath(dir, "delink_candidates_%s_%s.csv", account, ts)
}

func ResultsCSVPath(dir, account string, ts time.Time) string {
	return artifactPath(dir, "delink_results_%s_%s.csv", account, ts)
}

func OutcomesCSVPath(dir, account string, ts time.Time) string {
	return artifactPath(dir, "delink_outcomes_%s_%s.csv", account, ts)
}

func ExecutionLogPath(dir, account string, ts time.Time) string {
	return artifactPath(dir, "delink_execution_%s_%s.log", account, ts)
}
