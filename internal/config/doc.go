// Package config loads the portal options and resolves the paths the
// generator works with.
//
// Portal options are read from /etc/ood/config/ood_portal.yml. A missing file
// is not an error: a fresh host renders the default virtual host. Any key that
// is absent keeps its default.
//
// Example ood_portal.yml:
//
//	servername: ondemand.example.edu
//	port: 443
//	ssl:
//	  - 'SSLCertificateFile "/etc/pki/tls/certs/ondemand.crt"'
//	  - 'SSLCertificateKeyFile "/etc/pki/tls/private/ondemand.key"'
//	auth:
//	  - 'AuthType openid-connect'
//	  - 'Require valid-user'
//	node_uri: /node
//	rnode_uri: /rnode
//
// # Settings
//
// Settings carry the live configuration path, the checksum sidecar path and
// the update switches. They are resolved in three layers:
//
//  1. defaults, with the live path taken from the detected Apache layout
//  2. environment variables (OOD_PORTAL_APACHE, OOD_PORTAL_LAYOUT,
//     OOD_PORTAL_SUM, OOD_PORTAL_CONFIG, OOD_PORTAL_DETAILED_EXITCODES,
//     OOD_PORTAL_FORCE)
//  3. command line flags, applied by the cli package
package config
