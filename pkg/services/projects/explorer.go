package projects

import (
	"context"
	"time"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/rs/zerolog"
	cloudbilling "google.golang.org/api/cloudbilling/v1"
)

// Explorer discovers the projects attached to a billing account and their
// metadata. Listing is the hard prerequisite of every run: its errors are
// fatal, the caller aborts with no partial report.
type Explorer interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProjectInfo(ctx context.Context, projectID string) (domain.ProjectInfo, error)
	CheckResourcePresence(ctx context.Context, projectID string) (domain.ResourcePresence, error)
}

type explorer struct {
	session          *gcp.Session
	billingAccountID string
}

func NewExplorer(session *gcp.Session, billingAccountID string) Explorer {
	return &explorer{session: session, billingAccountID: billingAccountID}
}

// ListProjects returns the billing-enabled projects under the account.
// Associations whose billing is already disabled are dropped.
func (e *explorer) ListProjects(ctx context.Context) ([]domain.Project, error) {
	svc, err := e.session.Billing(ctx)
	if err != nil {
		return nil, gcp.Classify(err, "cloudbilling")
	}

	var projects []domain.Project
	req := svc.BillingAccounts.Projects.List("billingAccounts/" + e.billingAccountID)
	err = req.Pages(ctx, func(page *cloudbilling.ListProjectBillingInfoResponse) error {
		for _, info := range page.ProjectBillingInfo {
			if !info.BillingEnabled {
				continue
			}
			projects = append(projects, domain.Project{
				ID:             info.ProjectId,
				BillingEnabled: true,
			})
		}
		return nil
	})
	if err != nil {
		return nil, gcp.Classify(err, "cloudbilling")
	}

	zerolog.Ctx(ctx).Info().
		Str("billing_account", e.billingAccountID).
		Int("projects", len(projects)).
		Msg("billing-enabled projects discovered")
	return projects, nil
}

// GetProjectInfo fetches labels, create time and lifecycle state for one
// project.
func (e *explorer) GetProjectInfo(ctx context.Context, projectID string) (domain.ProjectInfo, error) {
	svc, err := e.session.ResourceManager(ctx)
	if err != nil {
		return domain.ProjectInfo{}, gcp.Classify(err, "cloudresourcemanager")
	}

	project, err := svc.Projects.Get(projectID).Context(ctx).Do()
	if err != nil {
		return domain.ProjectInfo{}, gcp.Classify(err, "cloudresourcemanager")
	}

	created, _ := time.Parse(time.RFC3339, project.CreateTime)
	return domain.ProjectInfo{
		ID:         project.ProjectId,
		Name:       project.Name,
		CreateTime: created,
		State:      project.LifecycleState,
		Labels:     project.Labels,
	}, nil
}
