// Package config loads check-dark-scope settings from defaults, a TOML file,
// and the environment, then validates them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"

	"assetmgmt/scripts/check-dark-scope/guard"
	"assetmgmt/scripts/check-dark-scope/reporter"
)

// Environment variables read by ApplyEnv.
const (
	EnvRoot       = "DARK_SCOPE_ROOT"
	EnvPatterns   = "DARK_SCOPE_PATTERNS"
	EnvExtensions = "DARK_SCOPE_EXTENSIONS"
	EnvWorkers    = "DARK_SCOPE_WORKERS"
)

// Config holds the resolved guard settings.
type Config struct {
	Root          string   `validate:"required"`
	Patterns      []string `validate:"required,min=1,dive,required"`
	ExtraPatterns []string `validate:"omitempty,dive,required"`
	Extensions    []string `validate:"required,min=1,dive,required,startswith=."`
	Exclude       []string `validate:"omitempty,dive,required"`
	Workers       int      `validate:"min=1"`
	Format        string   `validate:"oneof=text json"`
}

// fileConfig mirrors .darkscope.toml. Nil fields were not set in the file.
type fileConfig struct {
	Root          *string  `toml:"root"`
	Patterns      []string `toml:"patterns"`
	ExtraPatterns []string `toml:"extra_patterns"`
	Extensions    []string `toml:"extensions"`
	Exclude       []string `toml:"exclude"`
	Workers       *int     `toml:"workers"`
	Format        *string  `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Root:       DefaultRoot,
		Patterns:   DefaultPatterns(),
		Extensions: DefaultExtensions(),
		Workers:    1,
		Format:     reporter.FormatText,
	}
}

// FindConfigFile looks for ConfigFileName in startDir and its parents.
// Returns an empty path if no config file exists.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFile applies the settings in a TOML config file on top of cfg.
// A relative root is resolved against the config file's directory.
func (c *Config) LoadFile(path string) error {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return fmt.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if fc.Root != nil {
		root := *fc.Root
		if !filepath.IsAbs(root) {
			root = filepath.Join(filepath.Dir(path), root)
		}
		c.Root = root
	}
	if fc.Patterns != nil {
		c.Patterns = fc.Patterns
	}
	if fc.ExtraPatterns != nil {
		c.ExtraPatterns = append(c.ExtraPatterns, fc.ExtraPatterns...)
	}
	if fc.Extensions != nil {
		c.Extensions = fc.Extensions
	}
	if fc.Exclude != nil {
		c.Exclude = fc.Exclude
	}
	if fc.Workers != nil {
		c.Workers = *fc.Workers
	}
	if fc.Format != nil {
		c.Format = *fc.Format
	}
	return nil
}

// ApplyEnv overrides settings from environment variables. Lists are comma-separated.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvRoot)); v != "" {
		c.Root = v
	}
	if v := getenv(EnvPatterns); strings.TrimSpace(v) != "" {
		c.Patterns = SplitList(v)
	}
	if v := getenv(EnvExtensions); strings.TrimSpace(v) != "" {
		c.Extensions = SplitList(v)
	}
	if v := strings.TrimSpace(getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", EnvWorkers, v, err)
		}
		c.Workers = n
	}
	return nil
}

// Normalize trims entries, folds extra patterns into the pattern set, drops duplicates
// (first occurrence wins), and gives every extension a leading dot.
func (c *Config) Normalize() {
	c.Root = strings.TrimSpace(c.Root)
	c.Patterns = dedupe(append(c.Patterns, c.ExtraPatterns...))
	c.ExtraPatterns = nil

	exts := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Extensions = dedupe(exts)
	c.Exclude = dedupe(c.Exclude)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
}

// Validate checks that the configuration can drive a scan.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: invalid %s (failed %q rule)", strings.ToLower(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}

	for _, glob := range c.Exclude {
		if !doublestar.ValidatePattern(glob) {
			return fmt.Errorf("config: invalid exclude glob %q", glob)
		}
	}
	return nil
}

// GuardOptions converts the configuration into guard run options.
func (c *Config) GuardOptions() guard.Options {
	return guard.Options{
		Root:       c.Root,
		Patterns:   c.Patterns,
		Extensions: c.Extensions,
		Exclude:    c.Exclude,
		Workers:    c.Workers,
	}
}

// SplitList splits a comma-separated value, dropping blank entries.
func SplitList(value string) []string {
	var items []string
	for _, v := range strings.Split(value, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			items = append(items, v)
		}
	}
	return items
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result
}
