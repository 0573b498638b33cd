package config

import (
	"github.com/caarlos0/env/v10"

	"github.com/ksyq12/ood-portal-generator/internal/errors"
	"github.com/ksyq12/ood-portal-generator/internal/platform"
)

// DefaultChecksumPath is the sidecar that records the last generated digest.
const DefaultChecksumPath = "/etc/ood/config/ood_portal.sha256sum"

// Settings are the resolved paths and switches for one generator run.
// Defaults come from the host layout, environment variables override them,
// and CLI flags override both.
type Settings struct {
	ConfigPath        string `env:"OOD_PORTAL_CONFIG"`
	LivePath          string `env:"OOD_PORTAL_APACHE"`
	Layout            string `env:"OOD_PORTAL_LAYOUT"`
	ChecksumPath      string `env:"OOD_PORTAL_SUM"`
	DetailedExitCodes bool   `env:"OOD_PORTAL_DETAILED_EXITCODES"`
	ForceReplace      bool   `env:"OOD_PORTAL_FORCE"`
}

// LoadSettings returns the default settings with environment overrides
// applied. The live path is OOD_PORTAL_APACHE if set, else the portal file of
// the layout named by OOD_PORTAL_LAYOUT, else that of the detected layout.
func LoadSettings() (Settings, error) {
	s := Settings{
		ConfigPath:   DefaultConfigPath,
		ChecksumPath: DefaultChecksumPath,
	}
	if err := env.Parse(&s); err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeConfig, "failed to parse environment", err)
	}

	if s.LivePath != "" {
		return s, nil
	}
	if s.Layout == "" {
		l, _ := platform.DetectLayout()
		s.Layout = l.Name
		s.LivePath = l.LivePath()
		return s, nil
	}
	l, err := platform.LayoutByName(s.Layout)
	if err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeConfig, "invalid OOD_PORTAL_LAYOUT", err)
	}
	s.LivePath = l.LivePath()
	return s, nil
}
