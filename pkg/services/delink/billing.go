package delink

import (
	"context"

	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	cloudbilling "google.golang.org/api/cloudbilling/v1"
)

type billingUpdater struct {
	service *cloudbilling.APIService
}

// NewBillingUpdater wires the cloudbilling API behind the BillingUpdater
// seam. This is the only mutating collaborator in the repository.
func NewBillingUpdater(ctx context.Context, session *gcp.Session) (BillingUpdater, error) {
	svc, err := session.Billing(ctx)
	if err != nil {
		return nil, gcp.Classify(err, "cloudbilling")
	}
	return &billingUpdater{service: svc}, nil
}

// DisableBilling clears the project's billing account association. An empty
// BillingAccountName is the documented way to disable billing.
func (u *billingUpdater) DisableBilling(ctx context.Context, projectID string) error {
	_, err := u.service.Projects.UpdateBillingInfo(
		"projects/"+projectID,
		&cloudbilling.ProjectBillingInfo{
			BillingAccountName: "",
			// Empty strings are dropped from the request body unless forced.
			ForceSendFields: []string{"BillingAccountName"},
		},
	).Context(ctx).Do()
	if err != nil {
		return gcp.Classify(err, "cloudbilling")
	}
	return nil
}
