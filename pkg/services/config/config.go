package config

import (
	"fmt"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables recognized for
// them. Flags override env, env overrides the file, the file overrides
// defaults.
var envBindings = map[string]string{
	"billing_account_id":       "BILLING_ACCOUNT_ID",
	"snapshot_age_days":        "SNAPSHOT_AGE_DAYS",
	"bucket_inactive_days":     "BUCKET_INACTIVE_DAYS",
	"max_workers":              "MAX_WORKERS",
	"dry_run":                  "DRY_RUN",
	"require_confirmation":     "REQUIRE_CONFIRMATION",
	"scan_disks":               "SCAN_UNATTACHED_DISKS",
	"scan_addresses":           "SCAN_UNUSED_IPS",
	"scan_snapshots":           "SCAN_OUTDATED_SNAPSHOTS",
	"scan_buckets":             "SCAN_UNACCESSED_BUCKETS",
	"detailed_bucket_analysis": "DETAILED_BUCKET_ANALYSIS",
	"max_delink_projects":      "MAX_DELINK_PROJECTS",
	"output_dir":               "OUTPUT_DIR",
}

// LoadConfig builds the run configuration from defaults, an optional YAML
// file and the environment. An empty path skips the file entirely.
func LoadConfig(path string) (domain.ScanConfig, error) {
	v := viper.New()

	v.SetDefault("snapshot_age_days", 30)
	v.SetDefault("bucket_inactive_days", 90)
	v.SetDefault("max_workers", 10)
	v.SetDefault("dry_run", true)
	v.SetDefault("require_confirmation", true)
	v.SetDefault("max_delink_projects", 100)
	v.SetDefault("scan_disks", true)
	v.SetDefault("scan_addresses", true)
	v.SetDefault("scan_snapshots", true)
	v.SetDefault("scan_buckets", true)
	v.SetDefault("detailed_bucket_analysis", true)
	v.SetDefault("output_dir", ".")

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return domain.ScanConfig{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg domain.ScanConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.ScanConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations that cannot produce a meaningful run.
// Violations are fatal at startup, before any API call.
func Validate(cfg domain.ScanConfig) error {
	switch {
	case cfg.BillingAccountID == "":
		return fmt.Errorf("%w: billing_account_id is required", gcp.ErrConfig)
	case cfg.SnapshotAgeDays <= 0:
		return fmt.Errorf("%w: snapshot_age_days must be positive, got %d", gcp.ErrConfig, cfg.SnapshotAgeDays)
	case cfg.BucketInactiveDays <= 0:
		return fmt.Errorf("%w: bucket_inactive_days must be positive, got %d", gcp.ErrConfig, cfg.BucketInactiveDays)
	case cfg.MaxWorkers <= 0:
		return fmt.Errorf("%w: max_workers must be positive, got %d", gcp.ErrConfig, cfg.MaxWorkers)
	case cfg.MaxDelinkProjects <= 0:
		return fmt.Errorf("%w: max_delink_projects must be positive, got %d", gcp.ErrConfig, cfg.MaxDelinkProjects)
	}
	return nil
}
