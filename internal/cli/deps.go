package cli

import (
	"github.com/ksyq12/ood-portal-generator/internal/config"
	"github.com/ksyq12/ood-portal-generator/internal/filesystem"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	SettingsLoader SettingsLoader
	OptionsLoader  OptionsLoader
	FS             filesystem.FS
}

// SettingsLoader resolves default paths and environment overrides
type SettingsLoader interface {
	Load() (config.Settings, error)
}

// OptionsLoader reads the portal options file
type OptionsLoader interface {
	Load(path string) (*config.Portal, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = defaultDeps()

func defaultDeps() *Dependencies {
	return &Dependencies{
		SettingsLoader: &realSettingsLoader{},
		OptionsLoader:  &realOptionsLoader{},
		FS:             filesystem.NewOS(),
	}
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

type realSettingsLoader struct{}

func (r *realSettingsLoader) Load() (config.Settings, error) {
	return config.LoadSettings()
}

type realOptionsLoader struct{}

func (r *realOptionsLoader) Load(path string) (*config.Portal, error) {
	return config.Load(path)
}
