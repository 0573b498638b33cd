// Package template renders ood-portal.conf, the Apache virtual host that
// fronts Open OnDemand.
//
// The template is embedded in the binary from templates/ood-portal.conf.tmpl
// and executed with text/template against TemplateData:
//
//	p, err := config.Load("/etc/ood/config/ood_portal.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	content, err := template.Render(p, "/etc/ood/config/ood_portal.yml")
//
// Generator wraps Render for the update controller, which only needs
// "give me the candidate text".
//
// # Template Data
//
// Templates receive TemplateData:
//   - Portal: the options (see config.Portal)
//   - Source: the options file path, written into the header comment
//   - VirtualHostAddr: "*:<port>" for the main virtual host
//   - LogPath "error"|"access": log file under logroot
//
// # Custom Functions
//
//   - replace: strings.ReplaceAll
//   - join: strings.Join
package template
