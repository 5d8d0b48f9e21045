package scanners

import (
	"context"
	"time"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/de-tools/gcp-janitor/pkg/services/scan"
	"github.com/de-tools/gcp-janitor/pkg/store/pricing"
	"github.com/rs/zerolog"
	compute "google.golang.org/api/compute/v1"
)

// SnapshotScanner finds snapshots strictly older than the configured age
// threshold.
type SnapshotScanner struct {
	service *compute.Service
	pricing pricing.Store
	ageDays int
	now     func() time.Time
}

func NewSnapshotScanner(ctx context.Context, session *gcp.Session, cfg domain.ScanConfig) (scan.Scanner, error) {
	svc, err := session.Compute(ctx)
	if err != nil {
		return nil, gcp.Classify(err, "compute")
	}
	return &SnapshotScanner{
		service: svc,
		pricing: pricing.NewStore(),
		ageDays: cfg.SnapshotAgeDays,
		now:     time.Now,
	}, nil
}

func (s *SnapshotScanner) Category() string {
	return scan.CategorySnapshots
}

func (s *SnapshotScanner) Scan(ctx context.Context, projectID string) (scan.Findings, error) {
	var findings scan.Findings
	now := s.now()

	req := s.service.Snapshots.List(projectID)
	err := req.Pages(ctx, func(page *compute.SnapshotList) error {
		for _, snapshot := range page.Items {
			created, err := time.Parse(time.RFC3339, snapshot.CreationTimestamp)
			if err != nil {
				zerolog.Ctx(ctx).Debug().
					Str("project", projectID).
					Str("snapshot", snapshot.Name).
					Msg("unparseable creation timestamp, skipping")
				continue
			}

			if !snapshotOutdated(created, now, s.ageDays) {
				continue
			}

			age := now.Sub(created)
			storageGB := float64(snapshot.StorageBytes) / gib
			findings.Snapshots = append(findings.Snapshots, domain.SnapshotFinding{
				ProjectID:   projectID,
				Name:        snapshot.Name,
				SourceDisk:  lastSegment(snapshot.SourceDisk),
				AgeDays:     int(age.Hours() / 24),
				StorageGB:   storageGB,
				Created:     created,
				MonthlyCost: storageGB * s.pricing.SnapshotGBMonth().PricePerUnit,
			})
		}
		return nil
	})
	if err != nil {
		return scan.Findings{}, gcp.Classify(err, "compute")
	}

	return findings, nil
}

// snapshotOutdated uses a strict comparison: age exactly equal to the
// threshold is not flagged.
func snapshotOutdated(created, now time.Time, ageDays int) bool {
	return now.Sub(created) > time.Duration(ageDays)*24*time.Hour
}
