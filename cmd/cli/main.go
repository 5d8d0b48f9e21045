package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/gcp-janitor/pkg/runtime/terminal"
	"github.com/de-tools/gcp-janitor/pkg/services/config"
	"github.com/de-tools/gcp-janitor/pkg/services/scan"
	"github.com/de-tools/gcp-janitor/pkg/services/scan/scanners"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// A missing .env is fine; the environment may be set by the shell.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	logGCloudContext(ctx, logger)

	cli := terminal.NewCLI(terminal.Options{
		Registry: scan.NewRegistry(map[string]scan.ScannerFactory{
			scan.CategoryDisks:     scanners.NewDiskScanner,
			scan.CategoryAddresses: scanners.NewAddressScanner,
			scan.CategorySnapshots: scanners.NewSnapshotScanner,
			scan.CategoryBuckets:   scanners.NewBucketScanner,
		}),
		Output: os.Stdout,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logGCloudContext reports which gcloud configurations exist so operators
// can tell which identity ADC is likely to resolve. Best effort only.
func logGCloudContext(ctx context.Context, logger zerolog.Logger) {
	registry := config.NewGCloudRegistry("")
	profiles, err := registry.GetProfiles(ctx)
	if err != nil || len(profiles) == 0 {
		return
	}
	for _, profile := range profiles {
		logger.Info().Msgf("gcloud configuration found: `%s`", profile)
	}
}
