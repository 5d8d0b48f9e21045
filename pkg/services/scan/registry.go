package scan

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/services/gcp"
	"golang.org/x/exp/maps"
)

// ScannerFactory builds a scanner bound to a session and the run
// configuration.
type ScannerFactory func(ctx context.Context, session *gcp.Session, cfg domain.ScanConfig) (Scanner, error)

// Registry manages scanner factories per resource category.
type Registry interface {
	// Register adds a factory for a new category
	Register(category string, factory ScannerFactory) error
	// Create instantiates the scanner for the category
	Create(ctx context.Context, category string, session *gcp.Session, cfg domain.ScanConfig) (Scanner, error)
	// ListCategories returns the registered categories, sorted
	ListCategories() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]ScannerFactory
}

// NewRegistry creates a registry pre-populated with the given factories.
func NewRegistry(factories map[string]ScannerFactory) Registry {
	r := &registry{factories: make(map[string]ScannerFactory)}
	for category, factory := range factories {
		r.factories[category] = factory
	}
	return r
}

func (r *registry) Register(category string, factory ScannerFactory) error {
	if category == "" {
		return fmt.Errorf("category name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[category]; exists {
		return fmt.Errorf("category %q is already registered", category)
	}

	r.factories[category] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, category string, session *gcp.Session, cfg domain.ScanConfig) (Scanner, error) {
	r.mu.RLock()
	factory, exists := r.factories[category]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("category %q is not registered", category)
	}

	return factory(ctx, session, cfg)
}

func (r *registry) ListCategories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := maps.Keys(r.factories)
	sort.Strings(categories)
	return categories
}
