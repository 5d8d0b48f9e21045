package commands

import (
	"fmt"

	"github.com/de-tools/gcp-janitor/pkg/runtime/terminal/export"
	"github.com/de-tools/gcp-janitor/pkg/services/config"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/de-tools/gcp-janitor/pkg/services/projects"
	"github.com/spf13/cobra"
)

type ProjectsCmd struct {
	configPath     string
	billingAccount string

	reporter *export.Reporter
}

func NewProjectsCmd(reporter *export.Reporter) *cobra.Command {
	pc := &ProjectsCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List billing-enabled projects under a billing account",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&pc.billingAccount, "billing-account", "", "Billing account ID")

	return cmd
}

func (pc *ProjectsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(pc.configPath)
	if err != nil {
		return err
	}
	if pc.billingAccount != "" {
		cfg.BillingAccountID = pc.billingAccount
	}
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

	return pc.reporter.HandleProjects(cfg.BillingAccountID, projectSet)
}
