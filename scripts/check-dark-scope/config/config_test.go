package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "src", cfg.Root)
	assert.Equal(t, []string{"body.dark-mode", "html.dark-mode", ":root.dark-mode"}, cfg.Patterns)
	assert.Equal(t, []string{".css"}, cfg.Extensions)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "text", cfg.Format)
	require.NoError(t, cfg.Validate())
}

func TestDefault_ReturnsFreshSlices(t *testing.T) {
	cfg := Default()
	cfg.Patterns[0] = "changed"
	assert.Equal(t, "body.dark-mode", Default().Patterns[0])
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "apps", "web", "src")
	require.NoError(t, os.MkdirAll(nested, 0755))

	path, err := FindConfigFile(nested)
	require.NoError(t, err)
	// A config file may exist above the temp dir on a dev machine; it must not be inside root.
	if path != "" {
		assert.NotContains(t, path, root)
	}

	want := writeConfig(t, filepath.Join(root, "apps"), "")
	path, err = FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
root = "styles"
patterns = ["body.dark", "html.dark"]
extra_patterns = [".theme-dark body"]
extensions = [".css", ".scss"]
exclude = ["legacy/**"]
workers = 4
format = "json"
`)

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, filepath.Join(dir, "styles"), cfg.Root)
	assert.Equal(t, []string{"body.dark", "html.dark"}, cfg.Patterns)
	assert.Equal(t, []string{".theme-dark body"}, cfg.ExtraPatterns)
	assert.Equal(t, []string{".css", ".scss"}, cfg.Extensions)
	assert.Equal(t, []string{"legacy/**"}, cfg.Exclude)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `extra_patterns = ["body.theme-dark"]`)

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))
	cfg.Normalize()

	assert.Equal(t, "src", cfg.Root)
	assert.Equal(t, []string{"body.dark-mode", "html.dark-mode", ":root.dark-mode", "body.theme-dark"}, cfg.Patterns)
}

func TestLoadFile_AbsoluteRoot(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "css")
	path := writeConfig(t, dir, "root = "+quoteTOML(abs))

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))
	assert.Equal(t, abs, cfg.Root)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"malformed", `root = `, "failed to parse"},
		{"wrong type", `workers = "four"`, "failed to parse"},
		{"unknown key", `roots = "src"`, "unknown keys"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			err := Default().LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	err := Default().LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvRoot:       "web/src",
		EnvPatterns:   "body.dark, html.dark ,",
		EnvExtensions: ".css,.scss",
		EnvWorkers:    "3",
	}))
	require.NoError(t, err)

	assert.Equal(t, "web/src", cfg.Root)
	assert.Equal(t, []string{"body.dark", "html.dark"}, cfg.Patterns)
	assert.Equal(t, []string{".css", ".scss"}, cfg.Extensions)
	assert.Equal(t, 3, cfg.Workers)
}

func TestApplyEnv_EmptyKeepsValues(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envMap(nil)))
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv_InvalidWorkers(t *testing.T) {
	err := Default().ApplyEnv(envMap(map[string]string{EnvWorkers: "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvWorkers)
}

func TestNormalize(t *testing.T) {
	cfg := &Config{
		Root:          "  src  ",
		Patterns:      []string{"body.dark-mode", " body.dark-mode ", "", "html.dark-mode"},
		ExtraPatterns: []string{"html.dark-mode", ":root.dark-mode"},
		Extensions:    []string{"CSS", ".css", " .scss", ""},
		Exclude:       []string{"legacy/**", "legacy/**"},
		Workers:       1,
		Format:        " JSON ",
	}
	cfg.Normalize()

	assert.Equal(t, "src", cfg.Root)
	assert.Equal(t, []string{"body.dark-mode", "html.dark-mode", ":root.dark-mode"}, cfg.Patterns)
	assert.Nil(t, cfg.ExtraPatterns)
	assert.Equal(t, []string{".css", ".scss"}, cfg.Extensions)
	assert.Equal(t, []string{"legacy/**"}, cfg.Exclude)
	assert.Equal(t, "json", cfg.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"empty root", func(c *Config) { c.Root = "" }, "root"},
		{"no patterns", func(c *Config) { c.Patterns = []string{} }, "patterns"},
		{"blank pattern", func(c *Config) { c.Patterns = []string{""} }, "patterns"},
		{"no extensions", func(c *Config) { c.Extensions = nil }, "extensions"},
		{"extension without dot", func(c *Config) { c.Extensions = []string{"css"} }, "extensions"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"bad format", func(c *Config) { c.Format = "xml" }, "format"},
		{"bad glob", func(c *Config) { c.Exclude = []string{"legacy/["} }, "exclude glob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGuardOptions(t *testing.T) {
	cfg := Default()
	cfg.Exclude = []string{"legacy/**"}
	cfg.Workers = 4

	opts := cfg.GuardOptions()
	assert.Equal(t, cfg.Root, opts.Root)
	assert.Equal(t, cfg.Patterns, opts.Patterns)
	assert.Equal(t, cfg.Extensions, opts.Extensions)
	assert.Equal(t, cfg.Exclude, opts.Exclude)
	assert.Equal(t, 4, opts.Workers)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b,"))
	assert.Nil(t, SplitList(""))
}

func quoteTOML(s string) string {
	// Literal strings keep Windows backslashes intact.
	return "'" + s + "'"
}
