package export

// Row projections for the xlsx sheets, the delink CSVs and the terminal
// tables. Values are pre-formatted; writers only lay them out.

type SummaryRow struct {
	ProjectID     string
	DiskCount     int
	AddressCount  int
	SnapshotCount int
	BucketCount   int
	TotalCount    int
	ErrorCount    int
	MonthlyCost   float64
	Status        string
}

type DiskRow struct {
	ProjectID   string
	Name        string
	Zone        string
	Type        string
	SizeGB      int64
	Created     string
	MonthlyCost float64
}

type AddressRow struct {
	ProjectID   string
	Name        string
	Region      string
	Address     string
	AddressType string
	Created     string
	MonthlyCost float64
}

type SnapshotRow struct {
	ProjectID   string
	Name        string
	SourceDisk  string
	AgeDays     int
	StorageGB   float64
	Created     string
	MonthlyCost float64
}

type BucketRow struct {
	ProjectID    string
	Name         string
	Location     string
	StorageClass string
	ObjectCount  string
	TotalSize    string
	LastActivity string
	MonthlyCost  float64
}

type CandidateRow struct {
	ProjectID        string
	Name             string
	Created          string
	State            string
	RiskTier         string
	ResourcePresence string
	Decision         string
}

// TraceRow is the comprehensive classification record for one project.
type TraceRow struct {
	ProjectID        string
	Name             string
	Created          string
	State            string
	HasLabels        string
	Labels           string
	ResourcePresence string
	Instances        string
	Disks            string
	Buckets          string
	SQLInstances     string
	Clusters         string
	RiskTier         string
	Decision         string
	Error            string
}

type OutcomeRow struct {
	ProjectID string
	Attempted string
	Succeeded string
	DryRun    string
	Confirmed string
	Error     string
}
