package domain

type ScanStatus string

const (
	ScanStatusSuccess ScanStatus = "success"
	ScanStatusPartial ScanStatus = "partial"
	ScanStatusError   ScanStatus = "error"
)

// ScanError records one failed category for a project.
type ScanError struct {
	Category string
	Message  string
}

func (e ScanError) String() string {
	return e.Category + ": " + e.Message
}

// ScanResult aggregates one project's findings. Exactly one per project per
// run, produced whether the scan succeeded, partially failed or failed.
type ScanResult struct {
	ProjectID string
	Disks     []DiskFinding
	Addresses []AddressFinding
	Snapshots []SnapshotFinding
	Buckets   []BucketFinding
	Errors    []ScanError
	// Attempted counts the categories that were enabled for this run.
	Attempted int
}

func (r ScanResult) TotalFindings() int {
	return len(r.Disks) + len(r.Addresses) + len(r.Snapshots) + len(r.Buckets)
}

func (r ScanResult) MonthlyCost() float64 {
	var total float64
	for _, d := range r.Disks {
		total += d.MonthlyCost
	}
	for _, a := range r.Addresses {
		total += a.MonthlyCost
	}
	for _, s := range r.Snapshots {
		total += s.MonthlyCost
	}
	for _, b := range r.Buckets {
		total += b.MonthlyCost
	}
	return total
}

func (r ScanResult) Status() ScanStatus {
	switch {
	case len(r.Errors) == 0:
		return ScanStatusSuccess
	case r.Attempted > 0 && len(r.Errors) >= r.Attempted:
		return ScanStatusError
	default:
		return ScanStatusPartial
	}
}
