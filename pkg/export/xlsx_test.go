package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Scenario: P1 has one unattached 100GB disk, P2 a 45-day snapshot, P3 a
// permission error on disk listing.
func scenarioResults() []domain.ScanResult {
	created := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	return []domain.ScanResult{
		{
			ProjectID: "p1",
			Disks: []domain.DiskFinding{{
				ProjectID: "p1", Name: "disk-1", Zone: "us-central1-a",
				Type: "pd-standard", SizeGB: 100, Created: created, MonthlyCost: 4.0,
			}},
			Attempted: 4,
		},
		{
			ProjectID: "p2",
			Snapshots: []domain.SnapshotFinding{{
				ProjectID: "p2", Name: "snap-1", SourceDisk: "disk-2",
				AgeDays: 45, StorageGB: 20, Created: created, MonthlyCost: 0.52,
			}},
			Attempted: 4,
		},
		{
			ProjectID: "p3",
			Errors:    []domain.ScanError{{Category: "disks", Message: "permission denied: compute"}},
			Attempted: 4,
		},
	}
}

func TestWriteScanReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	generated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, WriteScanReport(path, "01ABCD-234567-89EFGH", scenarioResults(), generated))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	t.Run("sheet set and order", func(t *testing.T) {
		assert.Equal(t,
			[]string{SheetSummary, SheetDisks, SheetAddresses, SheetSnapshots, SheetBuckets},
			f.GetSheetList())
	})

	t.Run("detail sheets carry one row per finding", func(t *testing.T) {
		disks, err := f.GetRows(SheetDisks)
		require.NoError(t, err)
		require.Len(t, disks, 2) // header + p1's disk
		assert.Equal(t, "p1", disks[1][0])
		assert.Equal(t, "disk-1", disks[1][1])
		assert.Equal(t, "100", disks[1][4])

		snapshots, err := f.GetRows(SheetSnapshots)
		require.NoError(t, err)
		require.Len(t, snapshots, 2)
		assert.Equal(t, "p2", snapshots[1][0])
		assert.Equal(t, "45", snapshots[1][3])

		addresses, err := f.GetRows(SheetAddresses)
		require.NoError(t, err)
		assert.Len(t, addresses, 1) // header only
	})

	t.Run("summary has one row per project, error project included", func(t *testing.T) {
		rows, err := f.GetRows(SheetSummary)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(rows), 4)

		byProject := map[string][]string{}
		for _, row := range rows[1:4] {
			byProject[row[0]] = row
		}
		require.Contains(t, byProject, "p3")
		assert.Equal(t, "1", byProject["p3"][6], "p3 error count")
		assert.Equal(t, "0", byProject["p3"][5], "p3 total findings")
		assert.Equal(t, "partial", byProject["p3"][8])
		assert.Equal(t, "1", byProject["p1"][5])
	})

	t.Run("summary sorted by findings then project id", func(t *testing.T) {
		rows, err := f.GetRows(SheetSummary)
		require.NoError(t, err)
		assert.Equal(t, "p1", rows[1][0])
		assert.Equal(t, "p2", rows[2][0])
		assert.Equal(t, "p3", rows[3][0])
	})

	t.Run("bucket sheet documents the activity heuristic", func(t *testing.T) {
		rows, err := f.GetRows(SheetBuckets)
		require.NoError(t, err)
		var found bool
		for _, row := range rows {
			if len(row) > 0 && row[0] == bucketHeuristicNote {
				found = true
			}
		}
		assert.True(t, found)
	})
}
