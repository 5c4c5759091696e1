// Package config loads the optional sniff.toml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"sniff/internal/detect"
	"sniff/internal/source"
	"sniff/internal/style"
)

// FileName is the project config file looked up from the working directory.
const FileName = "sniff.toml"

// Config is the decoded project config. A nil *Config behaves like an empty
// file: every accessor returns the built-in defaults.
type Config struct {
	// Path is the file the config was read from; empty for defaults.
	Path string

	Detect DetectConfig             `toml:"detect"`
	Styles map[string]StyleOverride `toml:"styles"`

	meta toml.MetaData
}

// DetectConfig is the [detect] section.
type DetectConfig struct {
	MaxLines   int      `toml:"max_lines"`
	Threshold  float64  `toml:"threshold"`
	Order      []string `toml:"order"`
	Extensions []string `toml:"extensions"`
}

// StyleOverride is one [styles.<name>] section. Keys left out keep the style's
// default.
type StyleOverride struct {
	IndentWidth int  `toml:"indent_width"`
	TabWidth    int  `toml:"tab_width"`
	ExpandTabs  bool `toml:"expand_tabs"`
}

// Find walks up from startDir looking for sniff.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest sniff.toml. It reports false, with a
// nil config, when there is none.
func Discover(startDir string) (*Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// Load decodes and validates the config at path. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{Path: path}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.meta = meta

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("detect", "max_lines") && cfg.Detect.MaxLines < 0 {
		return nil, fmt.Errorf("%s: [detect].max_lines must not be negative", path)
	}
	if _, err := cfg.Policy(); err != nil {
		return nil, err
	}
	if _, err := cfg.Table(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Policy builds the selector policy. Missing keys keep the defaults.
func (c *Config) Policy() (detect.Policy, error) {
	policy := detect.DefaultPolicy()
	if c == nil {
		return policy, nil
	}

	if c.meta.IsDefined("detect", "threshold") {
		permille, err := detect.ThresholdFromRatio(c.Detect.Threshold)
		if err != nil {
			return detect.Policy{}, fmt.Errorf("%s: [detect].threshold: %w", c.Path, err)
		}
		policy.ThresholdPermille = permille
	}

	if c.meta.IsDefined("detect", "order") {
		order, err := ParseOrder(c.Detect.Order)
		if err != nil {
			return detect.Policy{}, fmt.Errorf("%s: [detect].order: %w", c.Path, err)
		}
		policy.Order = order
	}

	if err := policy.Validate(); err != nil {
		return detect.Policy{}, fmt.Errorf("%s: %w", c.Path, err)
	}
	return policy, nil
}

// ParseOrder resolves a list of style names into a preference order.
func ParseOrder(names []string) ([]style.Kind, error) {
	order := make([]style.Kind, 0, len(names))
	for _, name := range names {
		k, err := style.ParseKind(name)
		if err != nil {
			return nil, err
		}
		order = append(order, k)
	}
	return order, nil
}

// Table builds the override table from the [styles.*] sections.
func (c *Config) Table() (style.Table, error) {
	if c == nil || len(c.Styles) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(c.Styles))
	for name := range c.Styles {
		names = append(names, name)
	}
	sort.Strings(names)

	table := make(style.Table, len(c.Styles))
	sections := make(map[style.Kind]string, len(c.Styles))
	for _, name := range names {
		override := c.Styles[name]
		k, err := style.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("%s: [styles.%s]: %w", c.Path, name, err)
		}
		if first, ok := sections[k]; ok {
			return nil, fmt.Errorf("%s: [styles.%s] and [styles.%s] both configure %s", c.Path, first, name, k)
		}
		sections[k] = name
		settings := k.Defaults()
		if c.meta.IsDefined("styles", name, "indent_width") {
			settings.IndentWidth = override.IndentWidth
		}
		if c.meta.IsDefined("styles", name, "tab_width") {
			settings.TabWidth = override.TabWidth
		}
		if c.meta.IsDefined("styles", name, "expand_tabs") {
			settings.ExpandTabs = override.ExpandTabs
		}
		if err := settings.Validate(); err != nil {
			return nil, fmt.Errorf("%s: [styles.%s]: %w", c.Path, name, err)
		}
		table[k] = settings
	}
	return table, nil
}

// MaxLines returns the line cap, falling back to source.DefaultMaxLines.
// Zero in the file means unlimited.
func (c *Config) MaxLines() int {
	if c == nil || !c.meta.IsDefined("detect", "max_lines") {
		return source.DefaultMaxLines
	}
	return c.Detect.MaxLines
}

// Extensions returns the file extensions to scan in directories, each with a
// leading dot. An empty result means every file.
func (c *Config) Extensions() []string {
	if c == nil {
		return nil
	}
	return NormalizeExtensions(c.Detect.Extensions)
}

// NormalizeExtensions lower-cases extensions and adds the leading dot.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
