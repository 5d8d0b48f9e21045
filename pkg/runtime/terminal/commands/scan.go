package commands

import (
	"fmt"
	"time"

	reports "github.com/de-tools/gcp-janitor/pkg/export"
	model "github.com/de-tools/gcp-janitor/pkg/models/export"
	"github.com/de-tools/gcp-janitor/pkg/runtime/terminal/export"
	"github.com/de-tools/gcp-janitor/pkg/services/config"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/de-tools/gcp-janitor/pkg/services/projects"
	"github.com/de-tools/gcp-janitor/pkg/services/scan"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ScanCmd struct {
	configPath         string
	billingAccount     string
	outputDir          string
	snapshotAgeDays    int
	bucketInactiveDays int
	workers            int
	skipDisks          bool
	skipIPs            bool
	skipSnapshots      bool
	skipBuckets        bool

	registry scan.Registry
	reporter *export.Reporter
}

func NewScanCmd(registry scan.Registry, reporter *export.Reporter) *cobra.Command {
	sc := &ScanCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan all projects under a billing account for unused resources",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&sc.billingAccount, "billing-account", "", "Billing account ID to scan")
	cmd.Flags().StringVar(&sc.outputDir, "output", "", "Directory for the xlsx report")
	cmd.Flags().IntVar(&sc.snapshotAgeDays, "snapshot-age-days", 0, "Snapshot age threshold in days")
	cmd.Flags().IntVar(&sc.bucketInactiveDays, "bucket-inactive-days", 0, "Bucket inactivity threshold in days")
	cmd.Flags().IntVar(&sc.workers, "workers", 0, "Concurrent project scan workers")
	cmd.Flags().BoolVar(&sc.skipDisks, "skip-disks", false, "Skip the unattached disk scan")
	cmd.Flags().BoolVar(&sc.skipIPs, "skip-ips", false, "Skip the unused static IP scan")
	cmd.Flags().BoolVar(&sc.skipSnapshots, "skip-snapshots", false, "Skip the outdated snapshot scan")
	cmd.Flags().BoolVar(&sc.skipBuckets, "skip-buckets", false, "Skip the inactive bucket scan")

	return cmd
}

func (sc *ScanCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)

	cfg, err := config.LoadConfig(sc.configPath)
	if err != nil {
		return err
	}
	if sc.billingAccount != "" {
		cfg.BillingAccountID = sc.billingAccount
	}
	if sc.outputDir != "" {
		cfg.OutputDir = sc.outputDir
	}
	if sc.snapshotAgeDays > 0 {
		cfg.SnapshotAgeDays = sc.snapshotAgeDays
	}
	if sc.bucketInactiveDays > 0 {
		cfg.BucketInactiveDays = sc.bucketInactiveDays
	}
	if sc.workers > 0 {
		cfg.MaxWorkers = sc.workers
	}
	cfg.ScanDisks = cfg.ScanDisks && !sc.skipDisks
	cfg.ScanAddresses = cfg.ScanAddresses && !sc.skipIPs
	cfg.ScanSnapshots = cfg.ScanSnapshots && !sc.skipSnapshots
	cfg.ScanBuckets = cfg.ScanBuckets && !sc.skipBuckets

	if err := config.Validate(cfg); err != nil {
		return err
	}

	session, err := gcp.NewSession(ctx)
	if err != nil {
		return err
	}

	explorer := projects.NewExplorer(session, cfg.BillingAccountID)
	projectSet, err := explorer.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects for billing account %s: %w", cfg.BillingAccountID, err)
	}
	if len(projectSet) == 0 {
		log.Warn().Str("billing_account", cfg.BillingAccountID).Msg("no billing-enabled projects found")
	}

	orchestrator := scan.NewOrchestrator(session, sc.registry, cfg)
	go func() {
		for p := range orchestrator.Progress() {
			log.Info().
				Str("project", p.ProjectID).
				Int("completed", p.Completed).
				Int("total", p.Total).
				Msg("project scanned")
		}
	}()

	results, err := orchestrator.Run(ctx, projectSet)
	if err != nil {
		return err
	}

	reportPath := reports.ScanReportPath(cfg.OutputDir, cfg.BillingAccountID, time.Now())
	if err := reports.WriteScanReport(reportPath, cfg.BillingAccountID, results, time.Now()); err != nil {
		return err
	}
	log.Info().Str("path", reportPath).Msg("scan report written")

	summary := model.ScanSummary{
		BillingAccount: cfg.BillingAccountID,
		Projects:       len(results),
		ReportPath:     reportPath,
	}
	for _, r := range results {
		summary.DiskCount += len(r.Disks)
		summary.AddressCount += len(r.Addresses)
		summary.SnapshotCount += len(r.Snapshots)
		summary.BucketCount += len(r.Buckets)
		summary.MonthlyCost += r.MonthlyCost()
		if len(r.Errors) > 0 {
			summary.ErrorCount++
		}
	}

	return sc.reporter.HandleScanSummary(summary)
}
