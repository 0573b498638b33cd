package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ksyq12/ood-portal-generator/internal/errors"
)

func TestConfig(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("New", func(t *testing.T) {
		p := New()
		if p.LogRoot != "logs" {
			t.Errorf("expected logs logroot, got %s", p.LogRoot)
		}
		if !p.UseRewrites || !p.UseMaintenance {
			t.Error("rewrites and maintenance should default to on")
		}
		if p.HostRegex != "[^/]+" {
			t.Errorf("unexpected host_regex %s", p.HostRegex)
		}
		if p.EffectivePort() != 80 || p.Protocol() != "http://" {
			t.Errorf("default should be plain http on 80, got %d %s", p.EffectivePort(), p.Protocol())
		}
	})

	t.Run("LoadNonexistent", func(t *testing.T) {
		p, err := Load(filepath.Join(tempDir, "missing.yml"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !reflect.DeepEqual(p, New()) {
			t.Error("missing file should yield defaults")
		}
	})

	t.Run("LoadFile", func(t *testing.T) {
		path := filepath.Join(tempDir, "ood_portal.yml")
		content := `---
servername: ondemand.example.edu
ssl:
  - 'SSLCertificateFile "/etc/pki/tls/certs/ondemand.crt"'
  - 'SSLCertificateKeyFile "/etc/pki/tls/private/ondemand.key"'
node_uri: /node
rnode_uri: /rnode
use_maintenance: false
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write options: %v", err)
		}

		p, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if p.ServerName != "ondemand.example.edu" {
			t.Errorf("servername = %s", p.ServerName)
		}
		if len(p.SSL) != 2 || !p.HTTPS() {
			t.Errorf("expected 2 ssl directives, got %d", len(p.SSL))
		}
		if p.EffectivePort() != 443 {
			t.Errorf("ssl should imply port 443, got %d", p.EffectivePort())
		}
		if p.UseMaintenance {
			t.Error("use_maintenance should be overridden to false")
		}
		// Untouched keys keep their defaults
		if p.PunURI != "/pun" {
			t.Errorf("pun_uri = %s, want /pun", p.PunURI)
		}
	})

	t.Run("EmptyFile", func(t *testing.T) {
		p, err := Parse([]byte("# all commented out\n"))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if !reflect.DeepEqual(p, New()) {
			t.Error("comment-only file should yield defaults")
		}
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		_, err := Parse([]byte("- just\n- a\n- list\n"))
		if !errors.Is(err, errors.ErrConfigInvalid) {
			t.Errorf("expected config error, got %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Portal)
		wantErr bool
	}{
		{"defaults", func(*Portal) {}, false},
		{"explicit port", func(p *Portal) { p.Port = 8080 }, false},
		{"zero port means default", func(p *Portal) { p.Port = 0 }, false},
		{"port too large", func(p *Portal) { p.Port = 70000 }, true},
		{"negative port", func(p *Portal) { p.Port = -1 }, true},
		{"node uri without host regex", func(p *Portal) { p.NodeURI = "/node"; p.HostRegex = "" }, true},
		{"negative retries", func(p *Portal) { p.PunMaxRetries = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			tt.mutate(p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidOption) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidatePortMessage(t *testing.T) {
	p := New()
	p.Port = 70000
	err := p.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "0 for the default") {
		t.Errorf("message should allow 0 as the default port: %v", err)
	}
}

func TestLoadSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := LoadSettings()
		if err != nil {
			t.Fatalf("LoadSettings failed: %v", err)
		}
		if s.ChecksumPath != DefaultChecksumPath {
			t.Errorf("ChecksumPath = %s", s.ChecksumPath)
		}
		if s.ConfigPath != DefaultConfigPath {
			t.Errorf("ConfigPath = %s", s.ConfigPath)
		}
		if s.DetailedExitCodes || s.ForceReplace {
			t.Error("switches should default to off")
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("OOD_PORTAL_APACHE", "/tmp/ood-portal.conf")
		t.Setenv("OOD_PORTAL_SUM", "/tmp/ood_portal.sha256sum")
		t.Setenv("OOD_PORTAL_DETAILED_EXITCODES", "true")

		s, err := LoadSettings()
		if err != nil {
			t.Fatalf("LoadSettings failed: %v", err)
		}
		if s.LivePath != "/tmp/ood-portal.conf" {
			t.Errorf("LivePath = %s", s.LivePath)
		}
		if s.ChecksumPath != "/tmp/ood_portal.sha256sum" {
			t.Errorf("ChecksumPath = %s", s.ChecksumPath)
		}
		if !s.DetailedExitCodes {
			t.Error("DetailedExitCodes should be enabled from environment")
		}
	})

	t.Run("layout selects the live path", func(t *testing.T) {
		t.Setenv("OOD_PORTAL_LAYOUT", "debian-apache2")

		s, err := LoadSettings()
		if err != nil {
			t.Fatalf("LoadSettings failed: %v", err)
		}
		if s.LivePath != "/etc/apache2/sites-available/ood-portal.conf" {
			t.Errorf("LivePath = %s", s.LivePath)
		}
	})

	t.Run("explicit live path wins over layout", func(t *testing.T) {
		t.Setenv("OOD_PORTAL_LAYOUT", "debian-apache2")
		t.Setenv("OOD_PORTAL_APACHE", "/tmp/ood-portal.conf")

		s, err := LoadSettings()
		if err != nil {
			t.Fatalf("LoadSettings failed: %v", err)
		}
		if s.LivePath != "/tmp/ood-portal.conf" {
			t.Errorf("LivePath = %s", s.LivePath)
		}
	})

	t.Run("unknown layout", func(t *testing.T) {
		t.Setenv("OOD_PORTAL_LAYOUT", "nginx")
		if _, err := LoadSettings(); !errors.Is(err, errors.ErrConfigInvalid) {
			t.Errorf("expected config error, got %v", err)
		}
	})

	t.Run("bad boolean", func(t *testing.T) {
		t.Setenv("OOD_PORTAL_FORCE", "perhaps")
		if _, err := LoadSettings(); !errors.Is(err, errors.ErrConfigInvalid) {
			t.Errorf("expected config error, got %v", err)
		}
	})
}
