package template

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/ksyq12/ood-portal-generator/internal/config"
	"github.com/ksyq12/ood-portal-generator/internal/errors"
)

//go:embed templates/*.tmpl
var templates embed.FS

// portalTemplate is the embedded template for ood-portal.conf
const portalTemplate = "templates/ood-portal.conf.tmpl"

// TemplateData contains data for rendering templates
type TemplateData struct {
	Portal *config.Portal
	Source string // options file the output was generated from
}

// VirtualHostAddr returns the address of the main <VirtualHost> block.
func (d TemplateData) VirtualHostAddr() string {
	return fmt.Sprintf("*:%d", d.Portal.EffectivePort())
}

// LogPath returns the Apache log file for kind ("error" or "access").
// Relative log roots are left for Apache to resolve against ServerRoot.
func (d TemplateData) LogPath(kind string) string {
	name := kind + ".log"
	if d.Portal.ServerName != "" {
		name = d.Portal.ServerName + "_" + name
	}
	return filepath.Join(d.Portal.LogRoot, name)
}

// Render renders ood-portal.conf from portal options
func Render(p *config.Portal, source string) (string, error) {
	content, err := templates.ReadFile(portalTemplate)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTemplate, "template not found", err)
	}

	funcMap := template.FuncMap{
		"replace": strings.ReplaceAll,
		"join":    strings.Join,
	}

	tmpl, err := template.New("ood-portal.conf").Funcs(funcMap).Parse(string(content))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTemplate, "failed to parse template", err)
	}

	if p == nil {
		p = config.New()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, TemplateData{Portal: p, Source: source}); err != nil {
		return "", errors.Wrap(errors.ErrCodeTemplate, "failed to render template", err)
	}

	return buf.String(), nil
}

// Generator renders the portal configuration from a fixed set of options.
type Generator struct {
	Portal *config.Portal
	Source string
}

// NewGenerator creates a Generator for p, loaded from source.
func NewGenerator(p *config.Portal, source string) *Generator {
	return &Generator{Portal: p, Source: source}
}

// Generate renders the configuration text.
func (g *Generator) Generate() (string, error) {
	return Render(g.Portal, g.Source)
}
