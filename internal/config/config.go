package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ksyq12/ood-portal-generator/internal/errors"
	"github.com/ksyq12/ood-portal-generator/internal/logger"
)

// DefaultConfigPath is where the portal options live on an OnDemand host.
const DefaultConfigPath = "/etc/ood/config/ood_portal.yml"

// Portal holds the options the virtual host is rendered from.
type Portal struct {
	ListenAddrPort []string `yaml:"listen_addr_port"`
	ServerName     string   `yaml:"servername"`
	ServerAliases  []string `yaml:"server_aliases"`
	ProxyServer    string   `yaml:"proxy_server"`
	Port           int      `yaml:"port"`
	SSL            []string `yaml:"ssl"`
	LogRoot        string   `yaml:"logroot"`

	UseRewrites          bool     `yaml:"use_rewrites"`
	UseMaintenance       bool     `yaml:"use_maintenance"`
	MaintenanceAllowlist []string `yaml:"maintenance_ip_allowlist"`

	SecurityCSPFrameAncestors string `yaml:"security_csp_frame_ancestors"`
	SecurityStrictTransport   bool   `yaml:"security_strict_transport"`

	LuaRoot     string `yaml:"lua_root"`
	LuaLogLevel string `yaml:"lua_log_level"`
	UserMapCmd  string `yaml:"user_map_cmd"`
	UserEnv     string `yaml:"user_env"`
	MapFailURI  string `yaml:"map_fail_uri"`
	PunStageCmd string `yaml:"pun_stage_cmd"`

	Auth []string `yaml:"auth"`

	RootURI        string `yaml:"root_uri"`
	PublicURI      string `yaml:"public_uri"`
	PublicRoot     string `yaml:"public_root"`
	LogoutURI      string `yaml:"logout_uri"`
	LogoutRedirect string `yaml:"logout_redirect"`
	HostRegex      string `yaml:"host_regex"`
	NodeURI        string `yaml:"node_uri"`
	RNodeURI       string `yaml:"rnode_uri"`
	NginxURI       string `yaml:"nginx_uri"`
	PunURI         string `yaml:"pun_uri"`
	PunSocketRoot  string `yaml:"pun_socket_root"`
	PunMaxRetries  int    `yaml:"pun_max_retries"`

	CustomVhostDirectives    []string `yaml:"custom_vhost_directives"`
	CustomLocationDirectives []string `yaml:"custom_location_directives"`
}

// New creates a Portal with default values
func New() *Portal {
	return &Portal{
		LogRoot:        "logs",
		UseRewrites:    true,
		UseMaintenance: true,
		LuaRoot:        "/opt/ood/mod_ood_proxy/lib",
		UserMapCmd:     "/opt/ood/ood_auth_map/bin/ood_auth_map.regex",
		PunStageCmd:    "sudo /opt/ood/nginx_stage/sbin/nginx_stage",
		Auth: []string{
			"AuthType openid-connect",
			"Require valid-user",
		},
		RootURI:        "/pun/sys/dashboard",
		PublicURI:      "/public",
		PublicRoot:     "/var/www/ood/public",
		LogoutURI:      "/logout",
		LogoutRedirect: "/pun/sys/dashboard/logout",
		HostRegex:      "[^/]+",
		NginxURI:       "/nginx",
		PunURI:         "/pun",
		PunSocketRoot:  "/var/run/ondemand-nginx",
		PunMaxRetries:  5,
	}
}

// Load reads portal options from path. A missing file yields the defaults.
func Load(path string) (*Portal, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Warn("options file not found, using defaults", "path", path)
		return New(), nil
	}
	if err != nil {
		return nil, errors.WrapPath(errors.ErrCodeConfig, "failed to read options", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML options on top of the defaults.
func Parse(data []byte) (*Portal, error) {
	p := New()
	// An empty or all-comment file is valid and means "defaults"
	if strings.TrimSpace(string(data)) == "" {
		return p, nil
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to parse options", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the few options that would render a broken virtual host.
func (p *Portal) Validate() error {
	if p.Port < 0 || p.Port > 65535 {
		return errors.Validation(fmt.Sprintf("port must be between 1 and 65535, or 0 for the default, got %d", p.Port))
	}
	if p.HostRegex == "" && (p.NodeURI != "" || p.RNodeURI != "") {
		return errors.Validation("host_regex is required when node_uri or rnode_uri is set")
	}
	if p.PunMaxRetries < 0 {
		return errors.Validation("pun_max_retries cannot be negative")
	}
	return nil
}

// HTTPS reports whether the virtual host terminates TLS.
func (p *Portal) HTTPS() bool {
	return len(p.SSL) > 0
}

// EffectivePort returns the configured port, or 443/80 depending on SSL.
func (p *Portal) EffectivePort() int {
	if p.Port != 0 {
		return p.Port
	}
	if p.HTTPS() {
		return 443
	}
	return 80
}

// Protocol returns "https://" or "http://".
func (p *Portal) Protocol() string {
	if p.HTTPS() {
		return "https://"
	}
	return "http://"
}
