// Package filesystem is the file access layer used by the update controller.
//
// FS is small on purpose: the controller only ever reads lines, writes whole
// files, copies one file to another and compares a file with in-memory
// content. OS implements it against the real disk; Mock keeps files in memory
// so the controller can be tested without touching the host.
package filesystem

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultMode is used for files that don't exist yet.
const DefaultMode fs.FileMode = 0644

// FS is the set of file operations the update controller needs.
type FS interface {
	// ReadLines returns the lines of path with their terminators kept.
	ReadLines(path string) ([]string, error)

	// Write replaces the contents of path.
	Write(path string, content []byte) error

	// Copy makes dst a byte-exact copy of src.
	Copy(src, dst string) error

	// Identical reports whether path exists and holds exactly content.
	Identical(path string, content []byte) bool

	// Exists reports whether path exists.
	Exists(path string) bool
}

// OS implements FS using the os package.
type OS struct{}

// NewOS creates a new OS filesystem
func NewOS() *OS {
	return &OS{}
}

// ReadLines reads path and splits it after each newline.
func (OS) ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return SplitLines(f)
}

// Write writes content to a temporary file next to path and renames it into
// place, so readers never observe a half-written configuration. A symlinked
// path is followed and the link is kept. The mode and owner of an existing
// file are kept.
func (OS) Write(path string, content []byte) error {
	target, err := resolve(path)
	if err != nil {
		return err
	}
	return writeAtomic(target, content, target)
}

// Copy copies src to dst, keeping the mode and owner of src.
func (OS) Copy(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	target, err := resolve(dst)
	if err != nil {
		return err
	}
	return writeAtomic(target, data, src)
}

// Identical compares the file at path with content. Unreadable files are
// never identical.
func (OS) Identical(path string, content []byte) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(data, content)
}

// Exists reports whether path exists.
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// resolve returns the file a write to path must replace. Symlinks are
// followed, including a link whose target does not exist yet.
func resolve(path string) (string, error) {
	target, err := filepath.EvalSymlinks(path)
	if err == nil {
		return target, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	link, err := os.Readlink(path)
	if err != nil {
		return path, nil
	}
	if !filepath.IsAbs(link) {
		link = filepath.Join(filepath.Dir(path), link)
	}
	return link, nil
}

// writeAtomic replaces path with content. Mode and owner are taken from ref
// when it exists.
func writeAtomic(path string, content []byte, ref string) error {
	mode := DefaultMode
	refInfo, err := os.Stat(ref)
	if err == nil {
		mode = refInfo.Mode().Perm()
	} else {
		refInfo = nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", tmpPath, err)
	}
	if refInfo != nil {
		if err := chownLike(tmpPath, refInfo); err != nil {
			return fmt.Errorf("failed to set owner on %s: %w", tmpPath, err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// SplitLines reads r and returns its lines, each ending in "\n" except
// possibly the last.
func SplitLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
