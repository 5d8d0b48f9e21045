package domain

import "fmt"

// ScanConfig is the run configuration. It is an explicit value handed to the
// orchestrator and the delink executor at construction time, never a
// process-wide singleton.
type ScanConfig struct {
	BillingAccountID   string `mapstructure:"billing_account_id"`
	SnapshotAgeDays    int    `mapstructure:"snapshot_age_days"`
	BucketInactiveDays int    `mapstructure:"bucket_inactive_days"`
	MaxWorkers         int    `mapstructure:"max_workers"`

	DryRun              bool `mapstructure:"dry_run"`
	RequireConfirmation bool `mapstructure:"require_confirmation"`
	MaxDelinkProjects   int  `mapstructure:"max_delink_projects"`

	ScanDisks              bool `mapstructure:"scan_disks"`
	ScanAddresses          bool `mapstructure:"scan_addresses"`
	ScanSnapshots          bool `mapstructure:"scan_snapshots"`
	ScanBuckets            bool `mapstructure:"scan_buckets"`
	DetailedBucketAnalysis bool `mapstructure:"detailed_bucket_analysis"`

	OutputDir string `mapstructure:"output_dir"`
}

// GCloudProfile is one configuration of the gcloud CLI, used for identity
// context only.
type GCloudProfile struct {
	Name    string
	Account string
	Project string
}

func (p GCloudProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.Account)
}
