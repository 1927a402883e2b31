package guard

import "fmt"

// Violation is a stylesheet together with the forbidden patterns found in it.
type Violation struct {
	File     string   `json:"file"`
	Patterns []string `json:"patterns"`
}

// Result is the outcome of a single guard run.
type Result struct {
	Root         string      `json:"root"`
	FilesScanned int         `json:"files_scanned"`
	Violations   []Violation `json:"violations"`
}

// Passed returns true if no violations were found.
func (r *Result) Passed() bool {
	return len(r.Violations) == 0
}

// MatchCount returns the total number of pattern matches across all files.
func (r *Result) MatchCount() int {
	count := 0
	for _, v := range r.Violations {
		count += len(v.Patterns)
	}
	return count
}

// Summary returns a one-line summary of the result.
func (r *Result) Summary() string {
	if r.Passed() {
		return fmt.Sprintf("Scanned %d %s, no forbidden selectors",
			r.FilesScanned, Pluralize(r.FilesScanned, "file", "files"))
	}
	return fmt.Sprintf("Found %d forbidden %s in %d of %d %s",
		r.MatchCount(), Pluralize(r.MatchCount(), "selector", "selectors"),
		len(r.Violations), r.FilesScanned, Pluralize(r.FilesScanned, "file", "files"))
}

// Pluralize returns singular if count is 1, plural otherwise.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
