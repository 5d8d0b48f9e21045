package domain

import "time"

// DiskFinding is a persistent disk with no attached instances.
type DiskFinding struct {
	ProjectID   string
	Name        string
	Zone        string
	Type        string
	SizeGB      int64
	Created     time.Time
	MonthlyCost float64
}

// AddressFinding is a reserved static address with no users.
type AddressFinding struct {
	ProjectID   string
	Name        string
	Region      string
	Address     string
	AddressType string
	Created     time.Time
	MonthlyCost float64
}

// SnapshotFinding is a snapshot older than the configured age threshold.
type SnapshotFinding struct {
	ProjectID   string
	Name        string
	SourceDisk  string
	AgeDays     int
	StorageGB   float64
	Created     time.Time
	MonthlyCost float64
}

// BucketFinding is a bucket whose last recorded activity is older than the
// configured inactivity threshold, or an empty bucket.
type BucketFinding struct {
	ProjectID         string
	Name              string
	Location          string
	StorageClass      string
	ObjectCount       int64
	ObjectCountCapped bool
	TotalSizeBytes    int64
	LastActivity      time.Time
	Empty             bool
	MonthlyCost       float64
}
