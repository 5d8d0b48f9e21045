package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// GCloudRegistry reads the gcloud CLI's named configurations. Profiles are
// identity context only; credentials always come from ADC.
type GCloudRegistry interface {
	GetProfiles(ctx context.Context) ([]domain.GCloudProfile, error)
	GetProfile(ctx context.Context, name string) (domain.GCloudProfile, error)
}

type gcloudRegistry struct {
	dir string
}

// NewGCloudRegistry points at a gcloud configurations directory. An empty
// dir resolves to ~/.config/gcloud/configurations.
func NewGCloudRegistry(dir string) GCloudRegistry {
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config", "gcloud", "configurations")
		}
	}
	return &gcloudRegistry{dir: dir}
}

// GetProfiles lists every config_* file. A missing directory is not an
// error: ADC may come from a service account with no gcloud install.
func (gr *gcloudRegistry) GetProfiles(_ context.Context) ([]domain.GCloudProfile, error) {
	entries, err := os.ReadDir(gr.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var profiles []domain.GCloudProfile
	for _, entry := range entries {
		name, ok := strings.CutPrefix(entry.Name(), "config_")
		if !ok || entry.IsDir() {
			continue
		}
		profile, err := gr.load(name)
		if err != nil {
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (gr *gcloudRegistry) GetProfile(_ context.Context, name string) (domain.GCloudProfile, error) {
	return gr.load(name)
}

func (gr *gcloudRegistry) load(name string) (domain.GCloudProfile, error) {
	cfg, err := ini.Load(filepath.Join(gr.dir, "config_"+name))
	if err != nil {
		return domain.GCloudProfile{}, fmt.Errorf("profile %s not found: %w", name, err)
	}

	core := cfg.Section("core")
	return domain.GCloudProfile{
		Name:    name,
		Account: core.Key("account").String(),
		Project: core.Key("project").String(),
	}, nil
}
