// Package project loads the luamend.toml configuration controlling a
// processing run: which rules to apply, which files to include and where
// output goes.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"luamend/internal/rules"
)

// ConfigFileName is the manifest searched for when no explicit
// configuration path is given.
const ConfigFileName = "luamend.toml"

// Config is a decoded luamend.toml.
type Config struct {
	// Rules lists the passes to apply, in order. Entries are either a
	// bare rule name or a table with a name key plus rule properties.
	Rules []RuleConfig `toml:"rules"`
	// Include holds glob patterns selecting the files to process when a
	// directory is given. Empty means every .lua and .luau file.
	Include []string `toml:"include"`
	// Output is the directory processed files are written to. Empty
	// means in place.
	Output string `toml:"output"`
}

// RuleConfig is one entry of the rules list.
type RuleConfig struct {
	Name       string
	Properties map[string]any
}

// UnmarshalTOML accepts both the bare string form (`"remove_comments"`)
// and the table form (`{ name = "remove_comments", keep = [...] }`).
func (r *RuleConfig) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		r.Name = v
		return nil
	case map[string]any:
		name, ok := v["name"].(string)
		if !ok {
			return errors.New("rule entry is missing a name")
		}
		r.Name = name
		r.Properties = make(map[string]any, len(v)-1)
		for key, property := range v {
			if key == "name" {
				continue
			}
			r.Properties[key] = property
		}
		return nil
	}
	return fmt.Errorf("rule entry must be a string or a table, got %T", value)
}

// Default returns the configuration used when no luamend.toml exists:
// the rewrite passes that densify a file without changing behavior.
func Default() *Config {
	return &Config{
		Rules: []RuleConfig{
			{Name: "remove_comments"},
			{Name: "remove_whitespaces"},
			{Name: "remove_empty_do"},
		},
	}
}

// Load decodes the configuration at path.
func Load(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &config, nil
}

// FindConfig walks up from startDir to locate a luamend.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
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

// Resolve returns the configuration for a run: the explicit path when
// given, otherwise the nearest luamend.toml above startDir, otherwise
// the default.
func Resolve(explicit, startDir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// BuildRules instantiates and configures the run's rule chain.
func (c *Config) BuildRules() ([]rules.Rule, error) {
	built := make([]rules.Rule, 0, len(c.Rules))
	for _, entry := range c.Rules {
		rule, err := rules.New(entry.Name)
		if err != nil {
			return nil, err
		}
		if err := rule.Configure(entry.Properties); err != nil {
			return nil, err
		}
		built = append(built, rule)
	}
	return built, nil
}

// Matches reports whether path is selected by the include patterns.
// Patterns match against the slash-form relative path.
func (c *Config) Matches(relativePath string) bool {
	if len(c.Include) == 0 {
		ext := filepath.Ext(relativePath)
		return ext == ".lua" || ext == ".luau"
	}
	slashed := filepath.ToSlash(relativePath)
	for _, pattern := range c.Include {
		if matched, err := filepath.Match(pattern, slashed); err == nil && matched {
			return true
		}
		// Allow patterns to match the base name alone, so "*.lua"
		// selects files in subdirectories too.
		if matched, err := filepath.Match(pattern, filepath.Base(slashed)); err == nil && matched {
			return true
		}
	}
	return false
}
