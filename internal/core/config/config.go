// Package config handles configuration loading and validation for chance.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// Rule kinds, reported by Rule.Kind.
const (
	KindChars = "chars"
	KindWords = "words"
	KindCycle = "cycle"
)

// Config holds the application configuration.
type Config struct {
	// ReplaceDefaultRules drops the built-in d/a/A rules instead of
	// layering config rules on top of them.
	ReplaceDefaultRules bool                `yaml:"replace_default_rules"`
	Rules               map[string]Rule     `yaml:"rules"`
	Templates           map[string]string   `yaml:"templates"`
	Lists               map[string][]string `yaml:"lists"`
}

// Rule defines the generator behind a custom specifier letter. Exactly one
// field must be set.
type Rule struct {
	Chars string   `yaml:"chars"` // one random character per expansion
	Words []string `yaml:"words"` // one random word per expansion
	Cycle []string `yaml:"cycle"` // words drawn without repeats until exhausted
}

// Kind returns which field of the rule is set, or "" when none is.
func (r Rule) Kind() string {
	switch {
	case r.Chars != "":
		return KindChars
	case len(r.Words) > 0:
		return KindWords
	case len(r.Cycle) > 0:
		return KindCycle
	default:
		return ""
	}
}

func (r Rule) kinds() int {
	n := 0
	if r.Chars != "" {
		n++
	}
	if len(r.Words) > 0 {
		n++
	}
	if len(r.Cycle) > 0 {
		n++
	}
	return n
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Rules:     map[string]Rule{},
		Templates: map[string]string{},
		Lists:     map[string][]string{},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults replaces nil maps left behind by an empty YAML section.
func (c *Config) applyDefaults() {
	if c.Rules == nil {
		c.Rules = map[string]Rule{}
	}
	if c.Templates == nil {
		c.Templates = map[string]string{}
	}
	if c.Lists == nil {
		c.Lists = map[string][]string{}
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrors

	for _, key := range sortedKeys(c.Rules) {
		field := "rules." + key
		if !isRuleKey(key) {
			errs = append(errs, fieldErr(field, fmt.Errorf("rule key must be a single ASCII letter"))...)
			continue
		}

		switch c.Rules[key].kinds() {
		case 0:
			errs = append(errs, fieldErr(field, fmt.Errorf("rule must set one of chars, words or cycle"))...)
		case 1:
		default:
			errs = append(errs, fieldErr(field, fmt.Errorf("rule must set only one of chars, words or cycle"))...)
		}
	}

	for _, name := range sortedKeys(c.Lists) {
		if len(c.Lists[name]) == 0 {
			errs = append(errs, fieldErr("lists."+name, fmt.Errorf("list cannot be empty"))...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RuleChars returns the valid rule letters defined in the config, sorted.
// Keys that are not a single ASCII letter are left out.
func (c *Config) RuleChars() []string {
	var out []string
	for _, key := range sortedKeys(c.Rules) {
		if isRuleKey(key) {
			out = append(out, key)
		}
	}
	return out
}

func fieldErr(field string, err error) criterio.FieldErrors {
	return criterio.FieldErrors{{Field: field, Err: err}}
}

func isRuleKey(key string) bool {
	if len(key) != 1 {
		return false
	}
	b := key[0]
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
