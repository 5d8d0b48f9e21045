package adapters

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/models/export"
)

func MapCandidateToRow(c domain.DelinkCandidate) export.CandidateRow {
	return export.CandidateRow{
		ProjectID:        c.Project.ID,
		Name:             c.Project.Name,
		Created:          formatDate(c),
		State:            c.Project.State,
		RiskTier:         string(c.RiskTier),
		ResourcePresence: strconv.FormatBool(c.ResourcePresence),
		Decision:         string(c.Decision),
	}
}

// MapCandidateToTraceRow projects the full classification trace, label blob
// and per-category counts included.
func MapCandidateToTraceRow(c domain.DelinkCandidate) export.TraceRow {
	return export.TraceRow{
		ProjectID:        c.Project.ID,
		Name:             c.Project.Name,
		Created:          formatDate(c),
		State:            c.Project.State,
		HasLabels:        strconv.FormatBool(c.HasLabels),
		Labels:           formatLabels(c.Project.Labels),
		ResourcePresence: strconv.FormatBool(c.ResourcePresence),
		Instances:        strconv.Itoa(c.Resources.Instances),
		Disks:            strconv.Itoa(c.Resources.Disks),
		Buckets:          strconv.Itoa(c.Resources.Buckets),
		SQLInstances:     strconv.Itoa(c.Resources.SQLInstances),
		Clusters:         strconv.Itoa(c.Resources.Clusters),
		RiskTier:         string(c.RiskTier),
		Decision:         string(c.Decision),
		Error:            c.Err,
	}
}

func MapOutcomeToRow(o domain.DelinkOutcome) export.OutcomeRow {
	return export.OutcomeRow{
		ProjectID: o.ProjectID,
		Attempted: strconv.FormatBool(o.Attempted),
		Succeeded: strconv.FormatBool(o.Succeeded),
		DryRun:    strconv.FormatBool(o.DryRun),
		Confirmed: strconv.FormatBool(o.Confirmed),
		Error:     o.Err,
	}
}

func formatDate(c domain.DelinkCandidate) string {
	if c.Project.CreateTime.IsZero() {
		return ""
	}
	return c.Project.CreateTime.Format(dateLayout)
}

// formatLabels renders a label map as "k1=v1;k2=v2" with stable key order.
func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, labels[k]))
	}
	return strings.Join(pairs, ";")
}
