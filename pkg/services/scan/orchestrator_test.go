package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScanner struct {
	category string
	scanFn   func(ctx context.Context, projectID string) (Findings, error)
}

func (s *stubScanner) Category() string { return s.category }

func (s *stubScanner) Scan(ctx context.Context, projectID string) (Findings, error) {
	return s.scanFn(ctx, projectID)
}

func stubFactory(scanner Scanner) ScannerFactory {
	return func(_ context.Context, _ *gcp.Session, _ domain.ScanConfig) (Scanner, error) {
		return scanner, nil
	}
}

func scanConfig() domain.ScanConfig {
	return domain.ScanConfig{
		BillingAccountID:   "01ABCD-234567-89EFGH",
		SnapshotAgeDays:    30,
		BucketInactiveDays: 90,
		MaxWorkers:         4,
		ScanDisks:          true,
	}
}

func projectSet(n int) []domain.Project {
	projects := make([]domain.Project, 0, n)
	for i := 0; i < n; i++ {
		projects = append(projects, domain.Project{ID: fmt.Sprintf("project-%02d", i), BillingEnabled: true})
	}
	return projects
}

func TestOrchestrator_OneResultPerProject(t *testing.T) {
	disks := &stubScanner{category: CategoryDisks, scanFn: func(_ context.Context, projectID string) (Findings, error) {
		return Findings{Disks: []domain.DiskFinding{{ProjectID: projectID, Name: "d", SizeGB: 10}}}, nil
	}}
	registry := NewRegistry(map[string]ScannerFactory{CategoryDisks: stubFactory(disks)})

	o := NewOrchestrator(nil, registry, scanConfig())
	results, err := o.Run(context.Background(), projectSet(25))
	require.NoError(t, err)
	require.Len(t, results, 25)

	seen := map[string]bool{}
	for _, r := range results {
		assert.False(t, seen[r.ProjectID], "duplicate result for %s", r.ProjectID)
		seen[r.ProjectID] = true
		assert.Equal(t, 1, r.TotalFindings())
	}
	assert.Len(t, seen, 25)
}

func TestOrchestrator_ErrorIsolation(t *testing.T) {
	disks := &stubScanner{category: CategoryDisks, scanFn: func(_ context.Context, projectID string) (Findings, error) {
		if projectID == "project-02" {
			return Findings{}, gcp.Classify(errors.New("PERMISSION_DENIED"), "compute")
		}
		return Findings{Disks: []domain.DiskFinding{{ProjectID: projectID, Name: "d"}}}, nil
	}}
	registry := NewRegistry(map[string]ScannerFactory{CategoryDisks: stubFactory(disks)})

	o := NewOrchestrator(nil, registry, scanConfig())
	results, err := o.Run(context.Background(), projectSet(3))
	require.NoError(t, err)
	require.Len(t, results, 3)

	byProject := map[string]domain.ScanResult{}
	for _, r := range results {
		byProject[r.ProjectID] = r
	}

	failed := byProject["project-02"]
	assert.Len(t, failed.Errors, 1)
	assert.Equal(t, CategoryDisks, failed.Errors[0].Category)
	assert.Equal(t, 0, failed.TotalFindings())
	assert.Equal(t, domain.ScanStatusError, failed.Status())

	assert.Equal(t, 1, byProject["project-00"].TotalFindings())
	assert.Equal(t, 1, byProject["project-01"].TotalFindings())
	assert.Equal(t, domain.ScanStatusSuccess, byProject["project-00"].Status())
}

func TestOrchestrator_PartialCategoryFailure(t *testing.T) {
	disks := &stubScanner{category: CategoryDisks, scanFn: func(_ context.Context, _ string) (Findings, error) {
		return Findings{}, gcp.Classify(errors.New("SERVICE_DISABLED"), "compute")
	}}
	snapshots := &stubScanner{category: CategorySnapshots, scanFn: func(_ context.Context, projectID string) (Findings, error) {
		return Findings{Snapshots: []domain.SnapshotFinding{{ProjectID: projectID, Name: "snap", AgeDays: 45}}}, nil
	}}
	registry := NewRegistry(map[string]ScannerFactory{
		CategoryDisks:     stubFactory(disks),
		CategorySnapshots: stubFactory(snapshots),
	})

	cfg := scanConfig()
	cfg.ScanSnapshots = true

	o := NewOrchestrator(nil, registry, cfg)
	results, err := o.Run(context.Background(), projectSet(1))
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Len(t, r.Errors, 1)
	assert.Len(t, r.Snapshots, 1)
	assert.Equal(t, domain.ScanStatusPartial, r.Status())
}

func TestOrchestrator_WorkerPoolBounded(t *testing.T) {
	var active, peak int64
	var mu sync.Mutex

	disks := &stubScanner{category: CategoryDisks, scanFn: func(_ context.Context, _ string) (Findings, error) {
		n := atomic.AddInt64(&active, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		defer atomic.AddInt64(&active, -1)
		return Findings{}, nil
	}}
	registry := NewRegistry(map[string]ScannerFactory{CategoryDisks: stubFactory(disks)})

	cfg := scanConfig()
	cfg.MaxWorkers = 3

	o := NewOrchestrator(nil, registry, cfg)
	results, err := o.Run(context.Background(), projectSet(30))
	require.NoError(t, err)
	assert.Len(t, results, 30)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int64(3))
}

func TestOrchestrator_DisabledCategoriesAreNotBuilt(t *testing.T) {
	var bucketFactoryCalls int64
	registry := NewRegistry(map[string]ScannerFactory{
		CategoryDisks: stubFactory(&stubScanner{category: CategoryDisks, scanFn: func(_ context.Context, _ string) (Findings, error) {
			return Findings{}, nil
		}}),
		CategoryBuckets: func(_ context.Context, _ *gcp.Session, _ domain.ScanConfig) (Scanner, error) {
			atomic.AddInt64(&bucketFactoryCalls, 1)
			return nil, errors.New("should not be called")
		},
	})

	cfg := scanConfig()
	cfg.ScanBuckets = false

	o := NewOrchestrator(nil, registry, cfg)
	_, err := o.Run(context.Background(), projectSet(2))
	require.NoError(t, err)
	assert.Equal(t, int64(0), atomic.LoadInt64(&bucketFactoryCalls))
}

func TestOrchestrator_UnregisteredCategoryFailsBeforeDispatch(t *testing.T) {
	registry := NewRegistry(nil)

	o := NewOrchestrator(nil, registry, scanConfig())
	_, err := o.Run(context.Background(), projectSet(2))
	assert.Error(t, err)
}

func TestOrchestrator_RecoversPanickingScanner(t *testing.T) {
	disks := &stubScanner{category: CategoryDisks, scanFn: func(_ context.Context, projectID string) (Findings, error) {
		if projectID == "project-01" {
			panic("scanner bug")
		}
		return Findings{Disks: []domain.DiskFinding{{ProjectID: projectID}}}, nil
	}}
	registry := NewRegistry(map[string]ScannerFactory{CategoryDisks: stubFactory(disks)})

	o := NewOrchestrator(nil, registry, scanConfig())
	results, err := o.Run(context.Background(), projectSet(2))
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		if r.ProjectID == "project-01" {
			assert.Len(t, r.Errors, 1)
			assert.Contains(t, r.Errors[0].Message, "panic")
		} else {
			assert.Equal(t, 1, r.TotalFindings())
		}
	}
}

func TestOrchestrator_ProgressReportsEveryProject(t *testing.T) {
	disks := &stubScanner{category: CategoryDisks, scanFn: func(_ context.Context, _ string) (Findings, error) {
		return Findings{}, nil
	}}
	registry := NewRegistry(map[string]ScannerFactory{CategoryDisks: stubFactory(disks)})

	o := NewOrchestrator(nil, registry, scanConfig())

	var drained sync.WaitGroup
	drained.Add(1)
	var count int
	go func() {
		defer drained.Done()
		for p := range o.Progress() {
			count++
			assert.Equal(t, 5, p.Total)
		}
	}()

	_, err := o.Run(context.Background(), projectSet(5))
	require.NoError(t, err)
	drained.Wait()
	assert.Equal(t, 5, count)
}
