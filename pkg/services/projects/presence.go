package projects

import (
	"context"
	"errors"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/rs/zerolog"
	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/iterator"
)

// errStopIteration short-circuits paged listing once presence is
// established. Never surfaces to callers.
var errStopIteration = errors.New("stop iteration")

// CheckResourcePresence reports whether the project holds any billable
// resource. Categories are checked in order and the check stops at the
// first non-empty one; counts therefore stop at the category that
// established presence. A category whose API is disabled cannot hold
// resources of that kind and counts as absent.
func (e *explorer) CheckResourcePresence(ctx context.Context, projectID string) (domain.ResourcePresence, error) {
	var presence domain.ResourcePresence

	checks := []struct {
		name string
		run  func(context.Context, string) (int, error)
	}{
		{"instances", e.countInstances},
		{"disks", e.countDisks},
		{"buckets", e.countBuckets},
		{"sql", e.countSQLInstances},
		{"clusters", e.countClusters},
	}

	for _, check := range checks {
		count, err := check.run(ctx, projectID)
		if err != nil {
			classified := gcp.Classify(err, check.name)
			if errors.Is(classified, gcp.ErrAPI) {
				presence.Checked = append(presence.Checked, check.name+" (unavailable)")
				zerolog.Ctx(ctx).Debug().
					Str("project", projectID).
					Str("category", check.name).
					Err(classified).
					Msg("presence category unavailable, counted as absent")
				continue
			}
			return presence, classified
		}

		presence.Checked = append(presence.Checked, check.name)
		switch check.name {
		case "instances":
			presence.Instances = count
		case "disks":
			presence.Disks = count
		case "buckets":
			presence.Buckets = count
		case "sql":
			presence.SQLInstances = count
		case "clusters":
			presence.Clusters = count
		}

		if count > 0 {
			break
		}
	}

	return presence, nil
}

func (e *explorer) countInstances(ctx context.Context, projectID string) (int, error) {
	svc, err := e.session.Compute(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	req := svc.Instances.AggregatedList(projectID)
	err = req.Pages(ctx, func(page *compute.InstanceAggregatedList) error {
		for _, scoped := range page.Items {
			count += len(scoped.Instances)
		}
		if count > 0 {
			return errStopIteration
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		return 0, err
	}
	return count, nil
}

func (e *explorer) countDisks(ctx context.Context, projectID string) (int, error) {
	svc, err := e.session.Compute(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	req := svc.Disks.AggregatedList(projectID)
	err = req.Pages(ctx, func(page *compute.DiskAggregatedList) error {
		for _, scoped := range page.Items {
			count += len(scoped.Disks)
		}
		if count > 0 {
			return errStopIteration
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		return 0, err
	}
	return count, nil
}

func (e *explorer) countBuckets(ctx context.Context, projectID string) (int, error) {
	client, err := e.session.Storage(ctx)
	if err != nil {
		return 0, err
	}

	it := client.Buckets(ctx, projectID)
	count := 0
	for {
		_, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, err
		}
		count++
		// Presence needs existence, not cardinality.
		break
	}
	return count, nil
}

func (e *explorer) countSQLInstances(ctx context.Context, projectID string) (int, error) {
	svc, err := e.session.SQLAdmin(ctx)
	if err != nil {
		return 0, err
	}

	resp, err := svc.Instances.List(projectID).MaxResults(1).Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	return len(resp.Items), nil
}

func (e *explorer) countClusters(ctx context.Context, projectID string) (int, error) {
	svc, err := e.session.Container(ctx)
	if err != nil {
		return 0, err
	}

	resp, err := svc.Projects.Locations.Clusters.List("projects/" + projectID + "/locations/-").Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	return len(resp.Clusters), nil
}
