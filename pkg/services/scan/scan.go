package scan

import (
	"context"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
)

// Scanner lists one resource category in a project and filters it down to
// unused findings. Implementations issue read-only calls only and must be
// safe for concurrent use across projects.
type Scanner interface {
	Category() string
	Scan(ctx context.Context, projectID string) (Findings, error)
}

// Findings aggregates the four finding kinds a scanner can produce. Each
// concrete scanner fills exactly one slice.
type Findings struct {
	Disks     []domain.DiskFinding
	Addresses []domain.AddressFinding
	Snapshots []domain.SnapshotFinding
	Buckets   []domain.BucketFinding
}

func (f Findings) Count() int {
	return len(f.Disks) + len(f.Addresses) + len(f.Snapshots) + len(f.Buckets)
}

func (f *Findings) Merge(other Findings) {
	f.Disks = append(f.Disks, other.Disks...)
	f.Addresses = append(f.Addresses, other.Addresses...)
	f.Snapshots = append(f.Snapshots, other.Snapshots...)
	f.Buckets = append(f.Buckets, other.Buckets...)
}
