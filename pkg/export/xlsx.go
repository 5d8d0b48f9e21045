package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/de-tools/gcp-janitor/pkg/adapters"
	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the scan report workbook, in workbook order.
const (
	SheetSummary   = "Summary"
	SheetDisks     = "Unattached Disks"
	SheetAddresses = "Unused IPs"
	SheetSnapshots = "Outdated Snapshots"
	SheetBuckets   = "Unaccessed Buckets"
)

const bucketHeuristicNote = "Note: last activity is derived from object metadata and undercounts access visible only in audit logs."

// WriteScanReport renders the aggregated scan results into a multi-sheet
// xlsx workbook. The Summary sheet carries one row per scanned project,
// sorted by total findings descending then project ID; detail sheets carry
// one row per finding.
func WriteScanReport(path, account string, results []domain.ScanResult, generated time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	for _, sheet := range []string{SheetDisks, SheetAddresses, SheetSnapshots, SheetBuckets} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	if err := writeSummarySheet(f, account, results, generated); err != nil {
		return err
	}
	if err := writeDetailSheets(f, results); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, account string, results []domain.ScanResult, generated time.Time) error {
	rows := make([][]interface{}, 0, len(results))

	summaries := make([]domain.ScanResult, len(results))
	copy(summaries, results)
	sort.Slice(summaries, func(i, j int) bool {
		ti, tj := summaries[i].TotalFindings(), summaries[j].TotalFindings()
		if ti != tj {
			return ti > tj
		}
		return summaries[i].ProjectID < summaries[j].ProjectID
	})

	for _, r := range summaries {
		row := adapters.MapScanResultToSummaryRow(r)
		rows = append(rows, []interface{}{
			row.ProjectID, row.DiskCount, row.AddressCount, row.SnapshotCount,
			row.BucketCount, row.TotalCount, row.ErrorCount, row.MonthlyCost, row.Status,
		})
	}

	headers := []string{
		"Project ID", "Unattached Disks", "Unused IPs", "Outdated Snapshots",
		"Unaccessed Buckets", "Total Findings", "Errors", "Est. Monthly Cost (USD)", "Status",
	}
	if err := writeSheet(f, SheetSummary, headers, rows); err != nil {
		return err
	}

	// Report provenance below the table.
	meta := fmt.Sprintf("Billing account %s, generated %s", account, generated.Format("2006-01-02 15:04:05"))
	cell, _ := excelize.CoordinatesToCellName(1, len(rows)+3)
	return f.SetCellValue(SheetSummary, cell, meta)
}

func writeDetailSheets(f *excelize.File, results []domain.ScanResult) error {
	var (
		diskRows     [][]interface{}
		addressRows  [][]interface{}
		snapshotRows [][]interface{}
		bucketRows   [][]interface{}
	)

	for _, result := range results {
		for _, finding := range result.Disks {
			r := adapters.MapDiskFindingToRow(finding)
			diskRows = append(diskRows, []interface{}{
				r.ProjectID, r.Name, r.Zone, r.Type, r.SizeGB, r.Created, r.MonthlyCost,
			})
		}
		for _, finding := range result.Addresses {
			r := adapters.MapAddressFindingToRow(finding)
			addressRows = append(addressRows, []interface{}{
				r.ProjectID, r.Name, r.Region, r.Address, r.AddressType, r.Created, r.MonthlyCost,
			})
		}
		for _, finding := range result.Snapshots {
			r := adapters.MapSnapshotFindingToRow(finding)
			snapshotRows = append(snapshotRows, []interface{}{
				r.ProjectID, r.Name, r.SourceDisk, r.AgeDays, r.StorageGB, r.Created, r.MonthlyCost,
			})
		}
		for _, finding := range result.Buckets {
			r := adapters.MapBucketFindingToRow(finding)
			bucketRows = append(bucketRows, []interface{}{
				r.ProjectID, r.Name, r.Location, r.StorageClass, r.ObjectCount,
				r.TotalSize, r.LastActivity, r.MonthlyCost,
			})
		}
	}

	if err := writeSheet(f, SheetDisks,
		[]string{"Project ID", "Disk Name", "Zone", "Type", "Size (GB)", "Created", "Est. Monthly Cost (USD)"},
		diskRows); err != nil {
		return err
	}
	if err := writeSheet(f, SheetAddresses,
		[]string{"Project ID", "Address Name", "Region", "Address", "Type", "Created", "Est. Monthly Cost (USD)"},
		addressRows); err != nil {
		return err
	}
	if err := writeSheet(f, SheetSnapshots,
		[]string{"Project ID", "Snapshot Name", "Source Disk", "Age (Days)", "Storage (GB)", "Created", "Est. Monthly Cost (USD)"},
		snapshotRows); err != nil {
		return err
	}
	if err := writeSheet(f, SheetBuckets,
		[]string{"Project ID", "Bucket Name", "Location", "Storage Class", "Objects", "Total Size", "Last Activity", "Est. Monthly Cost (USD)"},
		bucketRows); err != nil {
		return err
	}

	cell, _ := excelize.CoordinatesToCellName(1, len(bucketRows)+3)
	return f.SetCellValue(SheetBuckets, cell, bucketHeuristicNote)
}

// writeSheet lays out one table: bold frozen header on row 1, one data row
// per entry, column widths fitted to content.
func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	headerCells := make([]interface{}, len(headers))
	widths := make([]int, len(headers))
	for i, h := range headers {
		headerCells[i] = h
		widths[i] = len(h)
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
		for col, value := range row {
			if col < len(widths) {
				if n := len(fmt.Sprint(value)); n > widths[col] {
					widths[col] = n
				}
			}
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, boldStyle); err != nil {
		return err
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		w := float64(width) + 2
		if w > 50 {
			w = 50
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}
