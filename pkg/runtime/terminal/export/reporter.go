package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	model "github.com/de-tools/gcp-janitor/pkg/models/export"
)

// Reporter renders end-of-run summaries to the console.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) HandleScanSummary(summary model.ScanSummary) error {
	tmpl := `
Unused resources scan - billing account {{.BillingAccount}}

Projects scanned:     {{.Projects}}
Unattached disks:     {{.DiskCount}}
Unused static IPs:    {{.AddressCount}}
Outdated snapshots:   {{.SnapshotCount}}
Unaccessed buckets:   {{.BucketCount}}
Projects with errors: {{.ErrorCount}}

Estimated monthly waste: USD {{printf "%.2f" .MonthlyCost}}

Report written to {{.ReportPath}}
`
	return r.render("scan", tmpl, summary)
}

func (r *Reporter) HandleDelinkSummary(summary model.DelinkSummary) error {
	tmpl := `
Delink audit - billing account {{.BillingAccount}}{{if .DryRun}} (DRY RUN){{end}}

Projects inspected:   {{.Inspected}}
Delink candidates:    {{.Candidates}}
High risk (manual):   {{.HighRisk}}
Labeled (skipped):    {{.Labeled}}
Inspection errors:    {{.Errors}}

Delinks attempted:    {{.Attempted}}
Delinks succeeded:    {{.Succeeded}}

Artifacts:
  candidates: {{.CandidatesPath}}
  trace:      {{.TracePath}}
  outcomes:   {{.OutcomesPath}}
  log:        {{.LogPath}}
`
	return r.render("delink", tmpl, summary)
}

// HandleProjects prints the billing-enabled project listing.
func (r *Reporter) HandleProjects(account string, projects []domain.Project) error {
	tmpl := `
Projects with billing enabled under {{.Account}}: {{len .Projects}}
{{range .Projects}}
  {{.ID}}{{end}}
`
	return r.render("projects", tmpl, struct {
		Account  string
		Projects []domain.Project
	}{Account: account, Projects: projects})
}

func (r *Reporter) render(name, tmpl string, data any) error {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, data)
}
