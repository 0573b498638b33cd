package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	hunkColor    = color.New(color.FgCyan)
	addColor     = color.New(color.FgGreen)
	delColor     = color.New(color.FgRed)
	headColor    = color.New(color.Bold)
)

// out is where all user-facing output goes
var out io.Writer = color.Output

// SetOutput redirects output (for testing). nil restores the default.
func SetOutput(w io.Writer) {
	if w == nil {
		w = color.Output
	}
	out = w
}

// JSON outputs data as JSON
func JSON(data interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Raw writes s unchanged (rendered configuration, diffs piped elsewhere).
func Raw(s string) {
	_, _ = io.WriteString(out, s)
}

// Table outputs data as a formatted table
func Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	_, _ = fmt.Fprintln(out, line(headers))
	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	_, _ = fmt.Fprintln(out, line(sep))
	for _, row := range rows {
		_, _ = fmt.Fprintln(out, line(row))
	}
}

// Diff prints a unified diff with added and removed lines colored.
func Diff(diff string) {
	for _, l := range strings.SplitAfter(diff, "\n") {
		if l == "" {
			continue
		}
		switch {
		case strings.HasPrefix(l, "+++"), strings.HasPrefix(l, "---"):
			_, _ = headColor.Fprint(out, l)
		case strings.HasPrefix(l, "@@"):
			_, _ = hunkColor.Fprint(out, l)
		case strings.HasPrefix(l, "+"):
			_, _ = addColor.Fprint(out, l)
		case strings.HasPrefix(l, "-"):
			_, _ = delColor.Fprint(out, l)
		default:
			_, _ = io.WriteString(out, l)
		}
	}
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = successColor.Fprintf(out, "✓ "+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(out, "✗ "+format+"\n", args...)
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	_, _ = warnColor.Fprintf(out, "! "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	_, _ = infoColor.Fprintf(out, "→ "+format+"\n", args...)
}

// Print prints a plain message
func Print(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(out, format+"\n", args...)
}
