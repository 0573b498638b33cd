// Package platform detects where the host's Apache reads ood-portal.conf from.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// PortalFile is the file name of the generated virtual host.
const PortalFile = "ood-portal.conf"

// Layout describes one Apache packaging layout.
type Layout struct {
	Name    string // short identifier, e.g. "scl-httpd24"
	ConfDir string // directory Apache includes *.conf from
}

// LivePath returns the full path of the portal file for this layout.
func (l Layout) LivePath() string {
	return filepath.Join(l.ConfDir, PortalFile)
}

// Layouts lists known layouts in detection order.
var Layouts = []Layout{
	{Name: "scl-httpd24", ConfDir: "/opt/rh/httpd24/root/etc/httpd/conf.d"},
	{Name: "rhel-httpd", ConfDir: "/etc/httpd/conf.d"},
	{Name: "debian-apache2", ConfDir: "/etc/apache2/sites-available"},
}

// DefaultLayout is used when nothing on the host matches.
var DefaultLayout = Layouts[0]

// exists is swapped out by tests.
var exists = pathExists

// DetectLayout returns the first layout whose conf directory exists on this
// host, or DefaultLayout with ok=false.
func DetectLayout() (Layout, bool) {
	if runtime.GOOS != "linux" {
		return DefaultLayout, false
	}
	for _, l := range Layouts {
		if exists(l.ConfDir) {
			return l, true
		}
	}
	return DefaultLayout, false
}

// DefaultLivePath returns the live portal path for this host.
func DefaultLivePath() string {
	l, _ := DetectLayout()
	return l.LivePath()
}

// LayoutByName returns the layout with the given name.
func LayoutByName(name string) (Layout, error) {
	for _, l := range Layouts {
		if l.Name == name {
			return l, nil
		}
	}
	return Layout{}, fmt.Errorf("unknown apache layout: %s (available: scl-httpd24, rhel-httpd, debian-apache2)", name)
}

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
