package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/de-tools/gcp-janitor/pkg/adapters"
	reports "github.com/de-tools/gcp-janitor/pkg/export"
	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	model "github.com/de-tools/gcp-janitor/pkg/models/export"
	"github.com/de-tools/gcp-janitor/pkg/runtime/terminal/export"
	"github.com/de-tools/gcp-janitor/pkg/services/config"
	"github.com/de-tools/gcp-janitor/pkg/services/delink"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/de-tools/gcp-janitor/pkg/services/projects"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type DelinkCmd struct {
	configPath     string
	billingAccount string
	outputDir      string
	dryRun         bool
	noConfirm      bool
	maxProjects    int

	reporter *export.Reporter
}

func NewDelinkCmd(reporter *export.Reporter) *cobra.Command {
	dc := &DelinkCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "delink",
		Short: "Classify unlabeled projects and disassociate low-risk ones from billing",
		Long: "Inspects every project under the billing account for user-defined labels and " +
			"billable resources, then simulates (default) or executes billing disassociation " +
			"for low-risk candidates. Live mode requires --dry-run=false and keeps per-project " +
			"confirmation unless --no-confirm is set.",
		RunE: dc.run,
	}

	cmd.Flags().StringVar(&dc.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&dc.billingAccount, "billing-account", "", "Billing account ID to audit")
	cmd.Flags().StringVar(&dc.outputDir, "output", "", "Directory for the CSV and log artifacts")
	cmd.Flags().BoolVar(&dc.dryRun, "dry-run", true, "Simulate delinking without touching billing state")
	cmd.Flags().BoolVar(&dc.noConfirm, "no-confirm", false, "Skip per-project operator confirmation")
	cmd.Flags().IntVar(&dc.maxProjects, "max-projects", 0, "Cap on projects to inspect")

	return cmd
}

func (dc *DelinkCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)

	cfg, err := config.LoadConfig(dc.configPath)
	if err != nil {
		return err
	}
	if dc.billingAccount != "" {
		cfg.BillingAccountID = dc.billingAccount
	}
	if dc.outputDir != "" {
		cfg.OutputDir = dc.outputDir
	}
	if dc.maxProjects > 0 {
		cfg.MaxDelinkProjects = dc.maxProjects
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dc.dryRun
	}
	if dc.noConfirm {
		cfg.RequireConfirmation = false
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if !cfg.DryRun {
		log.Warn().Msg("LIVE MODE: billing will actually be disabled for confirmed candidates")
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

	started := time.Now()
	runLog, err := reports.NewRunLog(reports.ExecutionLogPath(cfg.OutputDir, cfg.BillingAccountID, started))
	if err != nil {
		return err
	}
	defer runLog.Close()
	runLog.Logf("delink audit started for billing account %s (dry_run=%t)", cfg.BillingAccountID, cfg.DryRun)
	runLog.Logf("found %d billing-enabled projects", len(projectSet))

	auditor := delink.NewAuditor(explorer, cfg)
	candidates := auditor.BuildCandidates(ctx, projectSet)
	runLog.Logf("inspected %d projects", len(candidates))

	candidateRows := make([]model.CandidateRow, 0)
	traceRows := make([]model.TraceRow, 0, len(candidates))
	for _, c := range candidates {
		traceRows = append(traceRows, adapters.MapCandidateToTraceRow(c))
		if c.Decision == domain.DecisionCandidate {
			candidateRows = append(candidateRows, adapters.MapCandidateToRow(c))
		}
	}

	candidatesPath := reports.CandidatesCSVPath(cfg.OutputDir, cfg.BillingAccountID, started)
	if err := reports.WriteCandidatesCSV(candidatesPath, candidateRows); err != nil {
		return err
	}
	tracePath := reports.ResultsCSVPath(cfg.OutputDir, cfg.BillingAccountID, started)
	if err := reports.WriteTraceCSV(tracePath, traceRows); err != nil {
		return err
	}
	runLog.Logf("%d low-risk candidates written to %s", len(candidateRows), candidatesPath)

	updater, err := delink.NewBillingUpdater(ctx, session)
	if err != nil {
		return err
	}
	confirmer := delink.NewTerminalConfirmer(os.Stdin, cmd.OutOrStdout())
	executor := delink.NewExecutor(updater, confirmer, cfg)

	outcomes := executor.Execute(ctx, candidates)
	outcomeRows := make([]model.OutcomeRow, 0, len(outcomes))
	for _, o := range outcomes {
		outcomeRows = append(outcomeRows, adapters.MapOutcomeToRow(o))
		switch {
		case o.Err != "":
			runLog.Logf("FAILED %s: %s", o.ProjectID, o.Err)
		case o.Succeeded && o.DryRun:
			runLog.Logf("SIMULATED %s: would disable billing", o.ProjectID)
		case o.Succeeded:
			runLog.Logf("DELINKED %s", o.ProjectID)
		default:
			runLog.Logf("SKIPPED %s", o.ProjectID)
		}
	}

	outcomesPath := reports.OutcomesCSVPath(cfg.OutputDir, cfg.BillingAccountID, started)
	if err := reports.WriteOutcomesCSV(outcomesPath, outcomeRows); err != nil {
		return err
	}
	runLog.Logf("delink run complete: %d outcomes recorded", len(outcomes))

	summary := model.DelinkSummary{
		BillingAccount: cfg.BillingAccountID,
		Inspected:      len(candidates),
		DryRun:         cfg.DryRun,
		CandidatesPath: candidatesPath,
		TracePath:      tracePath,
		OutcomesPath:   outcomesPath,
		LogPath:        reports.ExecutionLogPath(cfg.OutputDir, cfg.BillingAccountID, started),
	}
	for _, c := range candidates {
		switch {
		case c.Err != "":
			summary.Errors++
		case c.Decision == domain.DecisionCandidate:
			summary.Candidates++
		case c.HasLabels:
			summary.Labeled++
		default:
			summary.HighRisk++
		}
	}
	for _, o := range outcomes {
		if o.Attempted {
			summary.Attempted++
		}
		if o.Succeeded {
			summary.Succeeded++
		}
	}

	return dc.reporter.HandleDelinkSummary(summary)
}
