package adapters

import (
	"fmt"
	"strconv"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/models/export"
)

const dateLayout = "2006-01-02"

func MapScanResultToSummaryRow(r domain.ScanResult) export.SummaryRow {
	return export.SummaryRow{
		ProjectID:     r.ProjectID,
		DiskCount:     len(r.Disks),
		AddressCount:  len(r.Addresses),
		SnapshotCount: len(r.Snapshots),
		BucketCount:   len(r.Buckets),
		TotalCount:    r.TotalFindings(),
		ErrorCount:    len(r.Errors),
		MonthlyCost:   r.MonthlyCost(),
		Status:        string(r.Status()),
	}
}

func MapDiskFindingToRow(f domain.DiskFinding) export.DiskRow {
	return export.DiskRow{
		ProjectID:   f.ProjectID,
		Name:        f.Name,
		Zone:        f.Zone,
		Type:        f.Type,
		SizeGB:      f.SizeGB,
		Created:     f.Created.Format(dateLayout),
		MonthlyCost: f.MonthlyCost,
	}
}

func MapAddressFindingToRow(f domain.AddressFinding) export.AddressRow {
	return export.AddressRow{
		ProjectID:   f.ProjectID,
		Name:        f.Name,
		Region:      f.Region,
		Address:     f.Address,
		AddressType: f.AddressType,
		Created:     f.Created.Format(dateLayout),
		MonthlyCost: f.MonthlyCost,
	}
}

func MapSnapshotFindingToRow(f domain.SnapshotFinding) export.SnapshotRow {
	return export.SnapshotRow{
		ProjectID:   f.ProjectID,
		Name:        f.Name,
		SourceDisk:  f.SourceDisk,
		AgeDays:     f.AgeDays,
		StorageGB:   f.StorageGB,
		Created:     f.Created.Format(dateLayout),
		MonthlyCost: f.MonthlyCost,
	}
}

func MapBucketFindingToRow(f domain.BucketFinding) export.BucketRow {
	objectCount := strconv.FormatInt(f.ObjectCount, 10)
	if f.ObjectCountCapped {
		objectCount = fmt.Sprintf("%d+", f.ObjectCount)
	}
	if f.Empty {
		objectCount = "0 (empty)"
	}

	lastActivity := ""
	if !f.LastActivity.IsZero() {
		lastActivity = f.LastActivity.Format(dateLayout)
	}

	return export.BucketRow{
		ProjectID:    f.ProjectID,
		Name:         f.Name,
		Location:     f.Location,
		StorageClass: f.StorageClass,
		ObjectCount:  objectCount,
		TotalSize:    FormatSizeBytes(f.TotalSizeBytes),
		LastActivity: lastActivity,
		MonthlyCost:  f.MonthlyCost,
	}
}
