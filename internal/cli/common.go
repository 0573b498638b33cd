package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ksyq12/ood-portal-generator/internal/config"
	"github.com/ksyq12/ood-portal-generator/internal/logger"
	"github.com/ksyq12/ood-portal-generator/internal/output"
	"github.com/ksyq12/ood-portal-generator/internal/platform"
	"github.com/ksyq12/ood-portal-generator/internal/portal"
	"github.com/ksyq12/ood-portal-generator/internal/template"
)

// Flags shared by update, diff and checksum
var (
	livePath          string
	checksumPath      string
	forceReplace      bool
	detailedExitCodes bool
)

// resolveSettings layers command line flags over defaults and environment
func resolveSettings() (config.Settings, error) {
	s, err := deps.SettingsLoader.Load()
	if err != nil {
		return config.Settings{}, err
	}

	if configPath != "" {
		s.ConfigPath = configPath
	}
	if livePath != "" {
		s.LivePath = livePath
	}
	if checksumPath != "" {
		s.ChecksumPath = checksumPath
	}
	s.ForceReplace = s.ForceReplace || forceReplace
	s.DetailedExitCodes = s.DetailedExitCodes || detailedExitCodes

	if err := validatePath("live configuration", s.LivePath); err != nil {
		return config.Settings{}, err
	}
	if err := validatePath("checksum file", s.ChecksumPath); err != nil {
		return config.Settings{}, err
	}

	logger.Debug("settings resolved",
		"platform", platform.Platform(),
		"layout", s.Layout,
		"config", s.ConfigPath,
		"live", s.LivePath,
		"sum", s.ChecksumPath,
		"force", s.ForceReplace,
		"detailed_exitcodes", s.DetailedExitCodes)
	return s, nil
}

// newController loads the portal options and wires the update controller.
// The backup and staged paths are derived by the controller; read them back
// through its Settings.
func newController(s config.Settings) (*portal.Controller, error) {
	opts, err := deps.OptionsLoader.Load(s.ConfigPath)
	if err != nil {
		return nil, err
	}

	return portal.New(portal.Settings{
		LivePath:          s.LivePath,
		ChecksumPath:      s.ChecksumPath,
		DetailedExitCodes: s.DetailedExitCodes,
		ForceReplace:      s.ForceReplace,
	}, template.NewGenerator(opts, s.ConfigPath), deps.FS, portal.WithLogger(logger.L())), nil
}

// readContent returns the file at path, or "" if it can't be read
func readContent(path string) string {
	lines, err := deps.FS.ReadLines(path)
	if err != nil {
		logger.Debug("file not readable, treating as empty", "path", path, "error", err)
		return ""
	}
	return strings.Join(lines, "")
}

// validatePath checks that a configured path is absolute
func validatePath(what, path string) error {
	if path == "" {
		return fmt.Errorf("%s path cannot be empty", what)
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s path must be absolute: %s", what, path)
	}
	return nil
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}
