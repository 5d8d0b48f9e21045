package scanners

import (
	"context"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/de-tools/gcp-janitor/pkg/services/scan"
	"github.com/de-tools/gcp-janitor/pkg/store/pricing"
	compute "google.golang.org/api/compute/v1"
)

// DiskScanner finds persistent disks with no attached instances.
type DiskScanner struct {
	service *compute.Service
	pricing pricing.Store
}

func NewDiskScanner(ctx context.Context, session *gcp.Session, _ domain.ScanConfig) (scan.Scanner, error) {
	svc, err := session.Compute(ctx)
	if err != nil {
		return nil, gcp.Classify(err, "compute")
	}
	return &DiskScanner{service: svc, pricing: pricing.NewStore()}, nil
}

func (s *DiskScanner) Category() string {
	return scan.CategoryDisks
}

func (s *DiskScanner) Scan(ctx context.Context, projectID string) (scan.Findings, error) {
	var findings scan.Findings

	req := s.service.Disks.AggregatedList(projectID)
	err := req.Pages(ctx, func(page *compute.DiskAggregatedList) error {
		for _, scopedList := range page.Items {
			for _, disk := range scopedList.Disks {
				if !diskUnattached(disk) {
					continue
				}
				findings.Disks = append(findings.Disks, s.toFinding(projectID, disk))
			}
		}
		return nil
	})
	if err != nil {
		return scan.Findings{}, gcp.Classify(err, "compute")
	}

	return findings, nil
}

// diskUnattached is the inclusion predicate: a disk is unused iff no
// instance references it at scan time.
func diskUnattached(disk *compute.Disk) bool {
	return len(disk.Users) == 0
}

func (s *DiskScanner) toFinding(projectID string, disk *compute.Disk) domain.DiskFinding {
	diskType := lastSegment(disk.Type)
	zone := lastSegment(disk.Zone)
	if zone == "" {
		zone = lastSegment(disk.Region)
	}

	return domain.DiskFinding{
		ProjectID:   projectID,
		Name:        disk.Name,
		Zone:        zone,
		Type:        diskType,
		SizeGB:      disk.SizeGb,
		Created:     parseTimestamp(disk.CreationTimestamp),
		MonthlyCost: float64(disk.SizeGb) * s.pricing.DiskGBMonth(diskType).PricePerUnit,
	}
}
