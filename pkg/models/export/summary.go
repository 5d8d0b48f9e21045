package export

// ScanSummary is the end-of-run terminal view of a scan.
type ScanSummary struct {
	BillingAccount string
	Projects       int
	DiskCount      int
	AddressCount   int
	SnapshotCount  int
	BucketCount    int
	ErrorCount     int
	MonthlyCost    float64
	ReportPath     string
}

// DelinkSummary is the end-of-run terminal view of a delink flow.
type DelinkSummary struct {
	BillingAccount string
	Inspected      int
	Candidates     int
	HighRisk       int
	Labeled        int
	Errors         int
	Attempted      int
	Succeeded      int
	DryRun         bool
	CandidatesPath string
	TracePath      string
	OutcomesPath   string
	LogPath        string
}
