package config

// Defaults for the dark-mode scope guard. Edit these when the app-root scoping
// convention changes.

// DefaultRoot is the stylesheet tree scanned when nothing else is configured.
const DefaultRoot = "src"

// ConfigFileName is the config file looked up from the working directory upwards.
const ConfigFileName = ".darkscope.toml"

// defaultPatterns lists unscoped dark-mode selectors. Dark-mode rules must hang off
// the application root (for example .app-root.dark-mode) so that embedded widgets and
// marketing pages don't inherit them.
var defaultPatterns = []string{
	"body.dark-mode",
	"html.dark-mode",
	":root.dark-mode",
}

var defaultExtensions = []string{".css"}

// DefaultPatterns returns a fresh copy of the built-in forbidden selector list.
func DefaultPatterns() []string {
	return append([]string(nil), defaultPatterns...)
}

// DefaultExtensions returns a fresh copy of the built-in stylesheet extensions.
func DefaultExtensions() []string {
	return append([]string(nil), defaultExtensions...)
}
