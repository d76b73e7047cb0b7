package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/chance/pkg/randfmt"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate(), this also checks file access and template syntax.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrors

	if err := c.Validate(); err != nil {
		var fe criterio.FieldErrors
		if errors.As(err, &fe) {
			errs = append(errs, fe...)
		} else {
			errs = append(errs, fieldErr("", err)...)
		}
	}

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil {
			if info.IsDir() {
				errs = append(errs, fieldErr("config_file", fmt.Errorf("%s is a directory, not a file", configPath))...)
			}
		} else if !os.IsNotExist(err) {
			errs = append(errs, fieldErr("config_file", fmt.Errorf("cannot access %s: %w", configPath, err))...)
		}
	}

	for _, name := range sortedKeys(c.Templates) {
		if _, err := randfmt.Parse(c.Templates[name]); err != nil {
			errs = append(errs, fieldErr("templates."+name, fmt.Errorf("template error: %w", err))...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Warnings reports templates that use specifiers with no rule. These are not
// errors: rules are resolved only when a template is expanded.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	known := map[rune]bool{}
	if !c.ReplaceDefaultRules {
		for _, r := range randfmt.DefaultRules().Chars() {
			known[r] = true
		}
	}
	for key := range c.Rules {
		if isRuleKey(key) {
			known[rune(key[0])] = true
		}
	}

	for _, name := range sortedKeys(c.Templates) {
		t, err := randfmt.Parse(c.Templates[name])
		if err != nil {
			continue
		}

		reported := map[rune]bool{}
		for _, spec := range t.Specifiers() {
			if known[spec.Char] || reported[spec.Char] {
				continue
			}
			reported[spec.Char] = true
			warnings = append(warnings, ValidationWarning{
				Category: "Templates",
				Item:     name,
				Message:  fmt.Sprintf("specifier %q has no rule", spec.Char),
			})
		}
	}

	if len(c.Rules) == 0 && c.ReplaceDefaultRules {
		warnings = append(warnings, ValidationWarning{
			Category: "Rules",
			Item:     "replace_default_rules",
			Message:  "default rules are replaced but no rules are defined",
		})
	}

	return warnings
}
