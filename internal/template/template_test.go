package template

import (
	"strings"
	"testing"

	"github.com/ksyq12/ood-portal-generator/internal/config"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		name        string
		portal      func() *config.Portal
		contains    []string
		notContains []string
	}{
		{
			name:   "defaults",
			portal: config.New,
			contains: []string{
				"<VirtualHost *:80>",
				`ErrorLog  "logs/error.log"`,
				"RewriteRule ^/$ /pun/sys/dashboard [R=302,L]",
				"RewriteCond /etc/ood/maintenance.enable -f",
				`LuaRoot "/opt/ood/mod_ood_proxy/lib"`,
				`<Location "/pun">`,
				`<Location "/nginx">`,
				"AuthType openid-connect",
				`SetEnv OOD_PUN_MAX_RETRIES "5"`,
				"</VirtualHost>\n",
			},
			notContains: []string{
				"SSLEngine On",
				"ServerName",
				"<LocationMatch",
			},
		},
		{
			name: "ssl with servername",
			portal: func() *config.Portal {
				p := config.New()
				p.ServerName = "ondemand.example.edu"
				p.SSL = []string{`SSLCertificateFile "/etc/pki/tls/certs/ondemand.crt"`}
				return p
			},
			contains: []string{
				"<VirtualHost *:80>",
				"RewriteRule ^(.*) https://%{HTTP_HOST}:443%{REQUEST_URI} [R=301,NE,L]",
				"<VirtualHost *:443>",
				"ServerName ondemand.example.edu",
				"SSLEngine On",
				`  SSLCertificateFile "/etc/pki/tls/certs/ondemand.crt"`,
				`ErrorLog  "logs/ondemand.example.edu_error.log"`,
			},
		},
		{
			name: "node proxies",
			portal: func() *config.Portal {
				p := config.New()
				p.NodeURI = "/node"
				p.RNodeURI = "/rnode"
				return p
			},
			contains: []string{
				`<LocationMatch "^/node/(?<host>[^/]+)/(?<port>\d+)">`,
				`<LocationMatch "^/rnode/(?<host>[^/]+)/(?<port>\d+)(?<uri>/.*|)">`,
				`SetEnv OOD_RNODE_URI "/rnode"`,
			},
		},
		{
			name: "maintenance disabled",
			portal: func() *config.Portal {
				p := config.New()
				p.UseMaintenance = false
				return p
			},
			notContains: []string{"maintenance.enable"},
		},
		{
			name: "custom directives and listen",
			portal: func() *config.Portal {
				p := config.New()
				p.ListenAddrPort = []string{"8443"}
				p.Port = 8443
				p.CustomVhostDirectives = []string{"KeepAlive On"}
				p.CustomLocationDirectives = []string{"ProxyTimeout 300"}
				p.MaintenanceAllowlist = []string{`10\.0\.0\.1`}
				return p
			},
			contains: []string{
				"Listen 8443",
				"<VirtualHost *:8443>",
				"  KeepAlive On\n</VirtualHost>",
				"    ProxyTimeout 300",
				`RewriteCond %{REMOTE_ADDR} !^10\.0\.0\.1$`,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Render(tc.portal(), "/etc/ood/config/ood_portal.yml")
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}

			for _, expected := range tc.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("expected output to contain %q\n%s", expected, result)
				}
			}
			for _, unexpected := range tc.notContains {
				if strings.Contains(result, unexpected) {
					t.Errorf("expected output not to contain %q", unexpected)
				}
			}
		})
	}
}

func TestRenderHeader(t *testing.T) {
	result, err := Render(config.New(), "/etc/ood/config/ood_portal.yml")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.HasPrefix(result, "#\n# Open OnDemand Portal\n") {
		t.Errorf("unexpected header:\n%s", result)
	}
	if !strings.Contains(result, "Generated using ood-portal-generator from /etc/ood/config/ood_portal.yml") {
		t.Error("header should name the options file")
	}
}

func TestRenderNilPortal(t *testing.T) {
	withNil, err := Render(nil, "x")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	withDefaults, err := Render(config.New(), "x")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if withNil != withDefaults {
		t.Error("nil options should render the defaults")
	}
}

func TestRenderDeterministic(t *testing.T) {
	p := config.New()
	p.ServerName = "ondemand.example.edu"
	first, err := Render(p, "x")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := Render(p, "x")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if first != second {
		t.Error("rendering the same options twice should produce identical output")
	}
}

func TestGenerator(t *testing.T) {
	g := NewGenerator(config.New(), "/etc/ood/config/ood_portal.yml")
	out, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "VirtualHost") {
		t.Error("expected a VirtualHost block")
	}
}
