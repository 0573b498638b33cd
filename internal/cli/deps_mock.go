package cli

import (
	"github.com/ksyq12/ood-portal-generator/internal/config"
	"github.com/ksyq12/ood-portal-generator/internal/filesystem"
)

// Paths used by the mock settings loader
const (
	mockConfigPath   = "/etc/ood/config/ood_portal.yml"
	mockLivePath     = "/etc/httpd/conf.d/ood-portal.conf"
	mockChecksumPath = "/etc/ood/config/ood_portal.sha256sum"
)

// MockSettingsLoader is a test double for SettingsLoader
type MockSettingsLoader struct {
	Settings config.Settings
	Err      error
	Calls    int
}

func (m *MockSettingsLoader) Load() (config.Settings, error) {
	m.Calls++
	if m.Err != nil {
		return config.Settings{}, m.Err
	}
	return m.Settings, nil
}

// MockOptionsLoader is a test double for OptionsLoader
type MockOptionsLoader struct {
	Portal *config.Portal
	Err    error
	Calls  []string
}

func (m *MockOptionsLoader) Load(path string) (*config.Portal, error) {
	m.Calls = append(m.Calls, path)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Portal == nil {
		m.Portal = config.New()
	}
	return m.Portal, nil
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults:
// RHEL paths, default portal options and an empty in-memory filesystem.
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			SettingsLoader: &MockSettingsLoader{Settings: config.Settings{
				ConfigPath:   mockConfigPath,
				LivePath:     mockLivePath,
				ChecksumPath: mockChecksumPath,
			}},
			OptionsLoader: &MockOptionsLoader{Portal: config.New()},
			FS:            filesystem.NewMock(nil),
		},
	}
}

// WithSettings sets the settings returned by the loader
func (b *MockDependenciesBuilder) WithSettings(s config.Settings) *MockDependenciesBuilder {
	b.deps.SettingsLoader = &MockSettingsLoader{Settings: s}
	return b
}

// WithSettingsLoader sets a custom settings loader
func (b *MockDependenciesBuilder) WithSettingsLoader(loader SettingsLoader) *MockDependenciesBuilder {
	b.deps.SettingsLoader = loader
	return b
}

// WithPortal sets the portal options
func (b *MockDependenciesBuilder) WithPortal(p *config.Portal) *MockDependenciesBuilder {
	b.deps.OptionsLoader = &MockOptionsLoader{Portal: p}
	return b
}

// WithOptionsLoader sets a custom options loader
func (b *MockDependenciesBuilder) WithOptionsLoader(loader OptionsLoader) *MockDependenciesBuilder {
	b.deps.OptionsLoader = loader
	return b
}

// WithFS sets the filesystem
func (b *MockDependenciesBuilder) WithFS(fsys filesystem.FS) *MockDependenciesBuilder {
	b.deps.FS = fsys
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}
