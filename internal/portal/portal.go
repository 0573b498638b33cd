package portal

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/ksyq12/ood-portal-generator/internal/checksum"
	"github.com/ksyq12/ood-portal-generator/internal/errors"
	"github.com/ksyq12/ood-portal-generator/internal/filesystem"
)

// Exit codes reported by Update when detailed exit codes are enabled.
const (
	ExitOK       = 0 // nothing to do, or detailed exit codes disabled
	ExitFailure  = 1 // a write failed; never returned by Update itself
	ExitReplaced = 3 // live file regenerated
	ExitStaged   = 4 // live file diverged; candidate written to the staged path
)

// Action is the branch Update took.
type Action string

// Update outcomes.
const (
	ActionNone     Action = "none"
	ActionReplaced Action = "replaced"
	ActionStaged   Action = "staged"
)

// Generator produces the candidate configuration text.
type Generator interface {
	Generate() (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate() (string, error) {
	return f()
}

// Settings are the paths and switches the controller works with.
type Settings struct {
	LivePath          string
	BackupPath        string // defaults to LivePath + ".bak"
	StagedPath        string // defaults to LivePath + ".new"
	ChecksumPath      string
	DetailedExitCodes bool
	ForceReplace      bool
}

// Result describes what Update did.
type Result struct {
	Action     Action `json:"action"`
	ExitCode   int    `json:"exit_code"`
	LivePath   string `json:"live_path"`
	BackupPath string `json:"backup_path,omitempty"`
	StagedPath string `json:"staged_path,omitempty"`
	Replace    bool   `json:"replace"`
	Changed    bool   `json:"changed"`
	Candidate  string `json:"-"`
}

// Controller decides whether a freshly rendered configuration may overwrite
// the live file.
//
// It is not safe to run two controllers against the same live path at the
// same time: nothing locks the live file or the checksum sidecar.
type Controller struct {
	settings  Settings
	generator Generator
	fs        filesystem.FS
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for decisions and degraded reads.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New creates a Controller. A nil fs uses the real filesystem.
func New(settings Settings, generator Generator, fsys filesystem.FS, opts ...Option) *Controller {
	if settings.BackupPath == "" {
		settings.BackupPath = settings.LivePath + ".bak"
	}
	if settings.StagedPath == "" {
		settings.StagedPath = settings.LivePath + ".new"
	}
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	c := &Controller{
		settings:  settings,
		generator: generator,
		fs:        fsys,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settings returns the resolved settings.
func (c *Controller) Settings() Settings {
	return c.settings
}

// records reads the sidecar. Any failure is reported as "no records".
func (c *Controller) records() []checksum.Record {
	lines, err := c.fs.ReadLines(c.settings.ChecksumPath)
	if err != nil {
		c.logReadFailure("checksum file unavailable", c.settings.ChecksumPath, err)
		return nil
	}
	return checksum.ParseLines(lines)
}

// ChecksumExists reports whether the sidecar holds at least one record, for
// any path.
func (c *Controller) ChecksumExists() bool {
	return len(c.records()) > 0
}

// ChecksumMatches reports whether the digest of path equals the digest
// recorded for the live path. It answers "has the file drifted since we last
// generated it", not "is it the same as the candidate".
func (c *Controller) ChecksumMatches(path string) bool {
	rec, ok := checksum.Lookup(c.records(), c.settings.LivePath)
	if !ok {
		c.logger.Debug("no checksum recorded for live path", "path", c.settings.LivePath)
		return false
	}
	lines, err := c.fs.ReadLines(path)
	if err != nil {
		c.logReadFailure("cannot digest file", path, err)
		return false
	}
	digest := checksum.Digest(lines)
	c.logger.Debug("comparing checksums", "path", path, "recorded", rec.Digest, "current", digest)
	return digest == rec.Digest
}

// SaveChecksum digests path and replaces the sidecar with a single record
// for the live path.
func (c *Controller) SaveChecksum(path string) error {
	lines, err := c.fs.ReadLines(path)
	if err != nil {
		return errors.WrapPath(errors.ErrCodeIO, "failed to read file for checksum", path, err)
	}
	rec := checksum.Record{Digest: checksum.Digest(lines), Path: c.settings.LivePath}
	if err := c.fs.Write(c.settings.ChecksumPath, []byte(checksum.Format(rec))); err != nil {
		return errors.WrapPath(errors.ErrCodeIO, "failed to write checksum file", c.settings.ChecksumPath, err)
	}
	c.logger.Debug("checksum saved", "path", c.settings.ChecksumPath, "digest", rec.Digest)
	return nil
}

// ShouldReplace reports whether the live file may be overwritten: forced,
// first run (no sidecar), or the live file still matches what was last
// generated.
func (c *Controller) ShouldReplace() bool {
	if c.settings.ForceReplace {
		return true
	}
	if !c.ChecksumExists() {
		return true
	}
	return c.ChecksumMatches(c.settings.LivePath)
}

// Plan renders the candidate and decides what Update would do, without
// writing anything.
func (c *Controller) Plan(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	candidate, err := c.generator.Generate()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTemplate, "failed to render configuration", err)
	}

	res := &Result{
		Action:    ActionNone,
		ExitCode:  ExitOK,
		LivePath:  c.settings.LivePath,
		Replace:   c.ShouldReplace(),
		Changed:   !c.fs.Identical(c.settings.LivePath, []byte(candidate)),
		Candidate: candidate,
	}

	switch {
	case !res.Changed:
	case res.Replace:
		res.Action = ActionReplaced
		res.ExitCode = c.exitCode(ExitReplaced)
		if c.fs.Exists(c.settings.LivePath) {
			res.BackupPath = c.settings.BackupPath
		}
	default:
		res.Action = ActionStaged
		res.ExitCode = c.exitCode(ExitStaged)
		res.StagedPath = c.settings.StagedPath
	}

	c.logger.Debug("update decision",
		"live", res.LivePath,
		"replace", res.Replace,
		"changed", res.Changed,
		"action", res.Action)
	return res, nil
}

// Update renders the candidate and applies the decision from Plan:
//   - identical to the live file: nothing is written
//   - replace allowed: back up the live file, overwrite it, record its checksum
//   - replace suppressed: write the candidate to the staged path only
//
// Write failures abort and are returned; the caller must not report success.
func (c *Controller) Update(ctx context.Context) (*Result, error) {
	res, err := c.Plan(ctx)
	if err != nil {
		return nil, err
	}

	switch res.Action {
	case ActionReplaced:
		if res.BackupPath != "" {
			if err := c.fs.Copy(c.settings.LivePath, res.BackupPath); err != nil {
				return nil, errors.WrapPath(errors.ErrCodeIO, "failed to back up live file", res.BackupPath, err)
			}
			c.logger.Info("live file backed up", "path", res.BackupPath)
		}
		if err := c.fs.Write(c.settings.LivePath, []byte(res.Candidate)); err != nil {
			return nil, errors.WrapPath(errors.ErrCodeIO, "failed to write live file", c.settings.LivePath, err)
		}
		if err := c.SaveChecksum(c.settings.LivePath); err != nil {
			return nil, err
		}
		c.logger.Info("live file replaced", "path", c.settings.LivePath)

	case ActionStaged:
		if err := c.fs.Write(res.StagedPath, []byte(res.Candidate)); err != nil {
			return nil, errors.WrapPath(errors.ErrCodeIO, "failed to write staged file", res.StagedPath, err)
		}
		c.logger.Warn("live file was modified since last generated; candidate staged",
			"live", c.settings.LivePath,
			"staged", res.StagedPath)

	default:
		c.logger.Info("live file already up to date", "path", c.settings.LivePath)
	}

	return res, nil
}

func (c *Controller) exitCode(code int) int {
	if c.settings.DetailedExitCodes {
		return code
	}
	return ExitOK
}

func (c *Controller) logReadFailure(msg, path string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		c.logger.Debug(msg, "path", path, "reason", "not found")
		return
	}
	c.logger.Warn(msg, "path", path, "error", err)
}
