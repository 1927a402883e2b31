// Package reporter renders guard results for humans (text) and tools (JSON).
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"assetmgmt/scripts/check-dark-scope/guard"
)

const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// remediationHint explains the expected scoping convention.
var remediationHint = []string{
	"Scope dark-mode rules under the application root instead of the document:",
	"  ✗ body.dark-mode .card { ... }",
	"  ✓ .app-root.dark-mode .card { ... }",
}

// Options controls how results are rendered.
type Options struct {
	Format  string
	Color   bool
	Verbose bool
}

// Reporter writes results to the given streams. Failures go to Stderr in text mode;
// JSON always goes to Stdout.
type Reporter struct {
	Stdout io.Writer
	Stderr io.Writer
	opts   Options
}

// New creates a Reporter.
func New(stdout, stderr io.Writer, opts Options) *Reporter {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	return &Reporter{Stdout: stdout, Stderr: stderr, opts: opts}
}

// Report renders the result.
func (r *Reporter) Report(result *guard.Result) error {
	switch r.opts.Format {
	case FormatJSON:
		return r.reportJSON(result)
	case FormatText:
		if result.Passed() {
			return r.reportPass(result)
		}
		return r.reportFail(result)
	default:
		return fmt.Errorf("unknown output format %q", r.opts.Format)
	}
}

// Error prints a fatal error that stopped the scan.
func (r *Reporter) Error(err error) {
	fmt.Fprintf(r.Stderr, "%s\n", r.paint(colorRed, fmt.Sprintf("Error: %v", err)))
}

func (r *Reporter) reportPass(result *guard.Result) error {
	var sb strings.Builder
	sb.WriteString(r.paint(colorGreen, "✅ No forbidden global dark-mode selectors found"))
	sb.WriteString("\n")
	if r.opts.Verbose {
		fmt.Fprintf(&sb, "   %s under %s\n", result.Summary(), result.Root)
	}
	_, err := io.WriteString(r.Stdout, sb.String())
	return err
}

func (r *Reporter) reportFail(result *guard.Result) error {
	var sb strings.Builder
	header := fmt.Sprintf("❌ Forbidden global dark-mode selectors found in %d %s:",
		len(result.Violations), guard.Pluralize(len(result.Violations), "file", "files"))
	sb.WriteString(r.paint(colorRed, header))
	sb.WriteString("\n")

	for _, v := range result.Violations {
		fmt.Fprintf(&sb, "  %s\n", v.File)
		for _, pattern := range v.Patterns {
			fmt.Fprintf(&sb, "    - %s\n", pattern)
		}
	}

	sb.WriteString("\n")
	for _, line := range remediationHint {
		sb.WriteString(r.paint(colorYellow, line))
		sb.WriteString("\n")
	}
	if r.opts.Verbose {
		fmt.Fprintf(&sb, "\n%s\n", result.Summary())
	}

	_, err := io.WriteString(r.Stderr, sb.String())
	return err
}

type jsonReport struct {
	Root         string            `json:"root"`
	FilesScanned int               `json:"files_scanned"`
	Passed       bool              `json:"passed"`
	Violations   []guard.Violation `json:"violations"`
}

func (r *Reporter) reportJSON(result *guard.Result) error {
	violations := result.Violations
	if violations == nil {
		violations = []guard.Violation{}
	}
	enc := json.NewEncoder(r.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Root:         result.Root,
		FilesScanned: result.FilesScanned,
		Passed:       result.Passed(),
		Violations:   violations,
	})
}

func (r *Reporter) paint(color, text string) string {
	if !r.opts.Color {
		return text
	}
	return color + text + colorReset
}
