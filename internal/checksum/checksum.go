// Package checksum computes the semantic digest of an Apache configuration
// and reads/writes the sidecar file that records it.
//
// The digest covers only lines that carry configuration: blank lines and
// lines whose first non-whitespace character is '#' are skipped, so an
// administrator adding comments doesn't register as drift. Remaining lines
// are hashed with their line terminators, in order.
//
// The sidecar holds one record per line in sha256sum(1) style:
//
//	b5bb9d8014a0f9b1d61e21e796d78dccdf1352f23cd32812f4850b878ae4944c /opt/rh/httpd24/root/etc/httpd/conf.d/ood-portal.conf
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Record is a single line of the sidecar file.
type Record struct {
	Digest string
	Path   string
}

// String formats the record as it appears in the sidecar, including the newline.
func (r Record) String() string {
	return fmt.Sprintf("%s %s\n", r.Digest, r.Path)
}

// Significant reports whether line counts towards the digest.
func Significant(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "#")
}

// Digest returns the lowercase hex SHA-256 of the significant lines.
func Digest(lines []string) string {
	h := sha256.New()
	for _, line := range lines {
		if Significant(line) {
			_, _ = io.WriteString(h, line)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ParseLine parses one sidecar line. The digest must be 64 hex characters.
// sha256sum(1) output is accepted too: its two-space and binary-mode ("*")
// separators are stripped from the path, which may itself contain spaces.
func ParseLine(line string) (Record, bool) {
	line = strings.TrimRight(line, "\r\n")
	digest, path, ok := strings.Cut(line, " ")
	if !ok || !validDigest(digest) {
		return Record{}, false
	}
	path = strings.TrimLeft(path, " *")
	if path == "" {
		return Record{}, false
	}
	return Record{Digest: strings.ToLower(digest), Path: path}, true
}

func validDigest(s string) bool {
	if len(s) != hex.EncodedLen(sha256.Size) {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// ParseLines parses sidecar lines, skipping any that are not records.
func ParseLines(lines []string) []Record {
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		if rec, ok := ParseLine(line); ok {
			records = append(records, rec)
		}
	}
	return records
}

// Lookup returns the record for path. The first match wins.
func Lookup(records []Record, path string) (Record, bool) {
	for _, rec := range records {
		if rec.Path == path {
			return rec, true
		}
	}
	return Record{}, false
}

// Format renders records as sidecar contents.
func Format(records ...Record) string {
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(rec.String())
	}
	return b.String()
}
