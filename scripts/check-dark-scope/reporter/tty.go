package reporter

import (
	"os"

	"golang.org/x/term"
)

// ColorEnabled reports whether ANSI colors should be written to f.
// Setting NO_COLOR to any value turns colors off.
func ColorEnabled(f *os.File, getenv func(string) string) bool {
	if getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
