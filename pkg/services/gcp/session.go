package gcp

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	cloudbilling "google.golang.org/api/cloudbilling/v1"
	cloudresourcemanager "google.golang.org/api/cloudresourcemanager/v1"
	compute "google.golang.org/api/compute/v1"
	container "google.golang.org/api/container/v1"
	"google.golang.org/api/option"
	sqladmin "google.golang.org/api/sqladmin/v1"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Session wraps Application Default Credentials and hands out API clients.
// Clients are constructed lazily, one per session, and are safe for
// concurrent use.
type Session struct {
	creds        *google.Credentials
	quotaProject string

	mu        sync.Mutex
	compute   *compute.Service
	billing   *cloudbilling.APIService
	sqlAdmin  *sqladmin.Service
	container *container.Service
	crm       *cloudresourcemanager.Service
	storage   *storage.Client
}

// NewSession resolves Application Default Credentials. A missing or broken
// credential chain is an auth error and aborts the run.
func NewSession(ctx context.Context) (*Session, error) {
	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v (run 'gcloud auth application-default login')", ErrAuth, err)
	}
	return &Session{creds: creds}, nil
}

// WithQuotaProject attributes API quota usage to the given project.
func (s *Session) WithQuotaProject(project string) *Session {
	s.quotaProject = project
	return s
}

func (s *Session) options() []option.ClientOption {
	opts := []option.ClientOption{option.WithCredentials(s.creds)}
	if s.quotaProject != "" {
		opts = append(opts, option.WithQuotaProject(s.quotaProject))
	}
	return opts
}

func (s *Session) Compute(ctx context.Context) (*compute.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.compute == nil {
		svc, err := compute.NewService(ctx, s.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create compute client: %w", err)
		}
		s.compute = svc
	}
	return s.compute, nil
}

func (s *Session) Billing(ctx context.Context) (*cloudbilling.APIService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.billing == nil {
		svc, err := cloudbilling.NewService(ctx, s.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create billing client: %w", err)
		}
		s.billing = svc
	}
	return s.billing, nil
}

func (s *Session) SQLAdmin(ctx context.Context) (*sqladmin.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sqlAdmin == nil {
		svc, err := sqladmin.NewService(ctx, s.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqladmin client: %w", err)
		}
		s.sqlAdmin = svc
	}
	return s.sqlAdmin, nil
}

func (s *Session) Container(ctx context.Context) (*container.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.container == nil {
		svc, err := container.NewService(ctx, s.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create container client: %w", err)
		}
		s.container = svc
	}
	return s.container, nil
}

func (s *Session) ResourceManager(ctx context.Context) (*cloudresourcemanager.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.crm == nil {
		svc, err := cloudresourcemanager.NewService(ctx, s.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource manager client: %w", err)
		}
		s.crm = svc
	}
	return s.crm, nil
}

func (s *Session) Storage(ctx context.Context) (*storage.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storage == nil {
		client, err := storage.NewClient(ctx, s.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		s.storage = client
	}
	return s.storage, nil
}
