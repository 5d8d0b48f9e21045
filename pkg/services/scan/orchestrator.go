package scan

import (
	"context"
	"fmt"
	"sync"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"github.com/rs/zerolog"
)

// Category names shared between the registry, the config flags and the
// report writer.
const (
	CategoryDisks     = "disks"
	CategoryAddresses = "addresses"
	CategorySnapshots = "snapshots"
	CategoryBuckets   = "buckets"
)

// Progress reports one completed project.
type Progress struct {
	ProjectID string
	Completed int
	Total     int
}

// Orchestrator fans the enabled scanners out across projects on a bounded
// worker pool. One ScanResult per project, success or error; a failing
// project never aborts its siblings.
type Orchestrator struct {
	session  *gcp.Session
	registry Registry
	cfg      domain.ScanConfig
	progress chan Progress
}

func NewOrchestrator(session *gcp.Session, registry Registry, cfg domain.ScanConfig) *Orchestrator {
	return &Orchestrator{
		session:  session,
		registry: registry,
		cfg:      cfg,
		progress: make(chan Progress, 100),
	}
}

// Progress emits one entry per completed project. Entries are dropped, not
// blocked on, when nobody is draining the channel. Closed when Run returns.
func (o *Orchestrator) Progress() <-chan Progress {
	return o.progress
}

// Run scans every project and returns exactly one result per project.
// Completion order is not significant. The only error paths are scanner
// construction failures before any dispatch.
func (o *Orchestrator) Run(ctx context.Context, projects []domain.Project) ([]domain.ScanResult, error) {
	defer close(o.progress)

	scanners, err := o.buildScanners(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		results = make([]domain.ScanResult, 0, len(projects))
		wg      sync.WaitGroup
		done    int
	)
	sem := make(chan struct{}, o.cfg.MaxWorkers)

	for _, project := range projects {
		wg.Add(1)
		go func(p domain.Project) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result := o.scanProject(ctx, scanners, p.ID)

			mu.Lock()
			results = append(results, result)
			done++
			completed := done
			mu.Unlock()

			select {
			case o.progress <- Progress{ProjectID: p.ID, Completed: completed, Total: len(projects)}:
			default:
			}
		}(project)
	}

	wg.Wait()
	return results, nil
}

// enabledCategories preserves the scan order of the report sheets.
func (o *Orchestrator) enabledCategories() []string {
	var categories []string
	if o.cfg.ScanDisks {
		categories = append(categories, CategoryDisks)
	}
	if o.cfg.ScanAddresses {
		categories = append(categories, CategoryAddresses)
	}
	if o.cfg.ScanSnapshots {
		categories = append(categories, CategorySnapshots)
	}
	if o.cfg.ScanBuckets {
		categories = append(categories, CategoryBuckets)
	}
	return categories
}

func (o *Orchestrator) buildScanners(ctx context.Context) ([]Scanner, error) {
	var scanners []Scanner
	for _, category := range o.enabledCategories() {
		scanner, err := o.registry.Create(ctx, category, o.session, o.cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s scanner: %w", category, err)
		}
		scanners = append(scanners, scanner)
	}
	return scanners, nil
}

func (o *Orchestrator) scanProject(ctx context.Context, scanners []Scanner, projectID string) (result domain.ScanResult) {
	result = domain.ScanResult{ProjectID: projectID, Attempted: len(scanners)}
	log := zerolog.Ctx(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("project", projectID).Msgf("scan worker recovered: %v", r)
			result.Errors = append(result.Errors, domain.ScanError{
				Category: "scan",
				Message:  fmt.Sprintf("panic: %v", r),
			})
		}
	}()

	for _, scanner := range scanners {
		findings, err := scanner.Scan(ctx, projectID)
		if err != nil {
			log.Warn().
				Str("project", projectID).
				Str("category", scanner.Category()).
				Str("kind", gcp.Kind(err)).
				Err(err).
				Msg("category scan failed, continuing")
			result.Errors = append(result.Errors, domain.ScanError{
				Category: scanner.Category(),
				Message:  err.Error(),
			})
			continue
		}

		result.Disks = append(result.Disks, findings.Disks...)
		result.Addresses = append(result.Addresses, findings.Addresses...)
		result.Snapshots = append(result.Snapshots, findings.Snapshots...)
		result.Buckets = append(result.Buckets, findings.Buckets...)
	}

	return result
}
