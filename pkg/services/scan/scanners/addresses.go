package scanners

import (
	"context"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/de-tools/gcp-janitor/pkg/services/scan"
	"github.com/de-tools/gcp-janitor/pkg/store/pricing"
	compute "google.golang.org/api/compute/v1"
)

// AddressScanner finds reserved static addresses with no users.
type AddressScanner struct {
	service *compute.Service
	pricing pricing.Store
}

func NewAddressScanner(ctx context.Context, session *gcp.Session, _ domain.ScanConfig) (scan.Scanner, error) {
	svc, err := session.Compute(ctx)
	if err != nil {
		return nil, gcp.Classify(err, "compute")
	}
	return &AddressScanner{service: svc, pricing: pricing.NewStore()}, nil
}

func (s *AddressScanner) Category() string {
	return scan.CategoryAddresses
}

func (s *AddressScanner) Scan(ctx context.Context, projectID string) (scan.Findings, error) {
	var findings scan.Findings

	req := s.service.Addresses.AggregatedList(projectID)
	err := req.Pages(ctx, func(page *compute.AddressAggregatedList) error {
		for _, scopedList := range page.Items {
			for _, addr := range scopedList.Addresses {
				if !addressUnused(addr) {
					continue
				}
				findings.Addresses = append(findings.Addresses, s.toFinding(projectID, addr))
			}
		}
		return nil
	})
	if err != nil {
		return scan.Findings{}, gcp.Classify(err, "compute")
	}

	return findings, nil
}

// addressUnused: RESERVED means allocated but not IN_USE; no users means no
// resource is bound to it.
func addressUnused(addr *compute.Address) bool {
	return addr.Status == "RESERVED" && len(addr.Users) == 0
}

func (s *AddressScanner) toFinding(projectID string, addr *compute.Address) domain.AddressFinding {
	addressType := addr.AddressType
	if addressType == "" {
		addressType = "EXTERNAL"
	}

	cost := 0.0
	if addressType == "EXTERNAL" {
		cost = s.pricing.StaticIPMonth().PricePerUnit
	}

	return domain.AddressFinding{
		ProjectID:   projectID,
		Name:        addr.Name,
		Region:      lastSegment(addr.Region),
		Address:     addr.Address,
		AddressType: addressType,
		Created:     parseTimestamp(addr.CreationTimestamp),
		MonthlyCost: cost,
	}
}
