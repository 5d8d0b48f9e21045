package export

import (
	"encoding/csv"
	"fmt"
	"os"

	model "github.com/de-tools/gcp-janitor/pkg/models/export"
)

// csvFile opens a CSV artifact. Files are UTF-8 with BOM so Excel opens
// them cleanly on Windows.
func csvFile(path string) (*os.File, *csv.Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	_, _ = f.Write([]byte{0xEF, 0xBB, 0xBF})
	return f, csv.NewWriter(f), nil
}

func WriteCandidatesCSV(path string, rows []model.CandidateRow) error {
	f, w, err := csvFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_ = w.Write([]string{"project_id", "name", "created", "state", "risk_tier", "resource_presence", "decision"})
	for _, r := range rows {
		_ = w.Write([]string{r.ProjectID, r.Name, r.Created, r.State, r.RiskTier, r.ResourcePresence, r.Decision})
	}
	w.Flush()
	return w.Error()
}

func WriteTraceCSV(path string, rows []model.TraceRow) error {
	f, w, err := csvFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_ = w.Write([]string{
		"project_id", "name", "created", "state", "has_labels", "labels",
		"resource_presence", "instances", "disks", "buckets", "sql_instances",
		"clusters", "risk_tier", "decision", "error",
	})
	for _, r := range rows {
		_ = w.Write([]string{
			r.ProjectID, r.Name, r.Created, r.State, r.HasLabels, r.Labels,
			r.ResourcePresence, r.Instances, r.Disks, r.Buckets, r.SQLInstances,
			r.Clusters, r.RiskTier, r.Decision, r.Error,
		})
	}
	w.Flush()
	return w.Error()
}

func WriteOutcomesCSV(path string, rows []model.OutcomeRow) error {
	f, w, err := csvFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_ = w.Write([]string{"project_id", "attempted", "succeeded", "dry_run", "confirmed", "error"})
	for _, r := range rows {
		_ = w.Write([]string{r.ProjectID, r.Attempted, r.Succeeded, r.DryRun, r.Confirmed, r.Error})
	}
	w.Flush()
	return w.Error()
}
