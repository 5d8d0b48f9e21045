package scanners

import (
	"context"
	"time"

	"cloud.google.com/go/storage"
	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/de-tools/gcp-janitor/pkg/services/scan"
	"github.com/de-tools/gcp-janitor/pkg/store/pricing"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
)

// BucketScanner finds buckets whose last recorded activity is older than
// the inactivity threshold, and empty buckets. Activity is a heuristic over
// object metadata; access patterns visible only in audit logs are not seen.
type BucketScanner struct {
	client       *storage.Client
	pricing      pricing.Store
	inactiveDays int
	detailed     bool
	now          func() time.Time
}

func NewBucketScanner(ctx context.Context, session *gcp.Session, cfg domain.ScanConfig) (scan.Scanner, error) {
	client, err := session.Storage(ctx)
	if err != nil {
		return nil, gcp.Classify(err, "storage")
	}
	return &BucketScanner{
		client:       client,
		pricing:      pricing.NewStore(),
		inactiveDays: cfg.BucketInactiveDays,
		detailed:     cfg.DetailedBucketAnalysis,
		now:          time.Now,
	}, nil
}

func (s *BucketScanner) Category() string {
	return scan.CategoryBuckets
}

func (s *BucketScanner) Scan(ctx context.Context, projectID string) (scan.Findings, error) {
	var findings scan.Findings

	it := s.client.Buckets(ctx, projectID)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return scan.Findings{}, gcp.Classify(err, "storage")
		}

		finding, inactive := s.analyzeBucket(ctx, projectID, attrs)
		if inactive {
			findings.Buckets = append(findings.Buckets, finding)
		}
	}

	return findings, nil
}

// objectSample is what a bounded object listing observed. complete is false
// when the listing failed partway (permission split between buckets.list and
// objects.list is common); an incomplete sample can never prove emptiness.
type objectSample struct {
	count    int64
	bytes    int64
	capped   bool
	newest   time.Time
	complete bool
}

func (s *BucketScanner) analyzeBucket(ctx context.Context, projectID string, attrs *storage.BucketAttrs) (domain.BucketFinding, bool) {
	var sample objectSample
	if s.detailed {
		sample = s.sampleObjects(ctx, projectID, attrs.Name)
	}
	return s.toFinding(projectID, attrs, sample)
}

func (s *BucketScanner) sampleObjects(ctx context.Context, projectID, bucket string) objectSample {
	sample := objectSample{complete: true}

	objects := s.client.Bucket(bucket).Objects(ctx, nil)
	for {
		obj, err := objects.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			// Best effort: bucket metadata still decides below.
			zerolog.Ctx(ctx).Debug().
				Str("project", projectID).
				Str("bucket", bucket).
				Err(err).
				Msg("object listing failed, falling back to bucket metadata")
			sample.complete = false
			break
		}

		sample.count++
		sample.bytes += obj.Size
		if obj.Updated.After(sample.newest) {
			sample.newest = obj.Updated
		}
		if sample.count >= maxObjectSample {
			sample.capped = true
			break
		}
	}
	return sample
}

func (s *BucketScanner) toFinding(projectID string, attrs *storage.BucketAttrs, sample objectSample) (domain.BucketFinding, bool) {
	lastActivity := sample.newest
	if lastActivity.IsZero() {
		lastActivity = attrs.Updated
	}
	if lastActivity.IsZero() {
		lastActivity = attrs.Created
	}

	// Only a cleanly completed listing can establish emptiness.
	empty := s.detailed && sample.complete && sample.count == 0
	cutoff := s.now().Add(-time.Duration(s.inactiveDays) * 24 * time.Hour)
	inactive := empty || lastActivity.Before(cutoff)
	if !inactive {
		return domain.BucketFinding{}, false
	}

	return domain.BucketFinding{
		ProjectID:         projectID,
		Name:              attrs.Name,
		Location:          attrs.Location,
		StorageClass:      attrs.StorageClass,
		ObjectCount:       sample.count,
		ObjectCountCapped: sample.capped,
		TotalSizeBytes:    sample.bytes,
		LastActivity:      lastActivity,
		Empty:             empty,
		MonthlyCost:       float64(sample.bytes) / gib * s.pricing.BucketGBMonth().PricePerUnit,
	}, true
}
