package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/gcp-janitor/pkg/runtime/terminal/commands"
	"github.com/de-tools/gcp-janitor/pkg/runtime/terminal/export"
	"github.com/de-tools/gcp-janitor/pkg/services/scan"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry scan.Registry
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry scan.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gcp-janitor",
		Short: "Scan GCP billing accounts for unused resources and delink unowned projects",
	}

	cmd.AddCommand(commands.NewScanCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewDelinkCmd(cli.reporter))
	cmd.AddCommand(commands.NewProjectsCmd(cli.reporter))

	return cmd
}
