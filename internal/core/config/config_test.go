package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.False(t, cfg.ReplaceDefaultRules)
	assert.NotNil(t, cfg.Rules)
	assert.NotNil(t, cfg.Templates)
	assert.NotNil(t, cfg.Lists)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Rules)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
replace_default_rules: true
rules:
  h:
    chars: "0123456789abcdef"
  w:
    words: [alpha, beta]
  c:
    cycle: [red, green, blue]
templates:
  phone: "(%3d) %3d-%4d"
lists:
  colors: [red, green]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.ReplaceDefaultRules)
	assert.Equal(t, []string{"c", "h", "w"}, cfg.RuleChars())
	assert.Equal(t, KindChars, cfg.Rules["h"].Kind())
	assert.Equal(t, KindWords, cfg.Rules["w"].Kind())
	assert.Equal(t, KindCycle, cfg.Rules["c"].Kind())
	assert.Equal(t, "(%3d) %3d-%4d", cfg.Templates["phone"])
	assert.Equal(t, []string{"red", "green"}, cfg.Lists["colors"])
}

func TestLoad_EmptySectionsGetDefaults(t *testing.T) {
	path := writeConfig(t, "rules:\ntemplates:\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Rules)
	assert.NotNil(t, cfg.Templates)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "rules: [not, a, map")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `
rules:
  hh:
    chars: abc
`)

	_, err := Load(path)
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "rules.hh", fieldErrs[0].Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{
			name: "valid",
			cfg: Config{
				Rules: map[string]Rule{"x": {Chars: "xyz"}},
				Lists: map[string][]string{"a": {"b"}},
			},
		},
		{
			name:      "digit key",
			cfg:       Config{Rules: map[string]Rule{"1": {Chars: "xyz"}}},
			wantField: "rules.1",
		},
		{
			name:      "empty key",
			cfg:       Config{Rules: map[string]Rule{"": {Chars: "xyz"}}},
			wantField: "rules.",
		},
		{
			name:      "non ascii key",
			cfg:       Config{Rules: map[string]Rule{"é": {Chars: "xyz"}}},
			wantField: "rules.é",
		},
		{
			name:      "no generator",
			cfg:       Config{Rules: map[string]Rule{"x": {}}},
			wantField: "rules.x",
		},
		{
			name:      "two generators",
			cfg:       Config{Rules: map[string]Rule{"x": {Chars: "a", Words: []string{"b"}}}},
			wantField: "rules.x",
		},
		{
			name:      "empty list",
			cfg:       Config{Lists: map[string][]string{"colors": {}}},
			wantField: "lists.colors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
		})
	}
}

func TestValidateDeep_InvalidTemplate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Templates = map[string]string{
		"good": "%3d",
		"bad":  "%3",
		"odd":  "100%",
	}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "templates.bad", fieldErrs[0].Field)
	assert.Equal(t, "templates.odd", fieldErrs[1].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "template error")
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestValidateDeep_IncludesStructuralErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules = map[string]Rule{"xy": {Chars: "a"}}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "rules.xy", fieldErrs[0].Field)
}

func TestValidateDeep_Valid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Templates = map[string]string{"phone": "(%3d) %3d-%4d %%"}

	assert.NoError(t, cfg.ValidateDeep(writeConfig(t, "")))
}

func TestWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules = map[string]Rule{"h": {Chars: "abc"}}
	cfg.Templates = map[string]string{
		"ok":      "%d%h",
		"unknown": "%x%x%y",
		"broken":  "%",
	}

	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "unknown", warnings[0].Item)
	assert.Contains(t, warnings[0].Message, "'x'")
	assert.Contains(t, warnings[1].Message, "'y'")
}

func TestWarnings_ReplacedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReplaceDefaultRules = true
	cfg.Templates = map[string]string{"zip": "%5d"}

	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "zip", warnings[0].Item)
	assert.Equal(t, "replace_default_rules", warnings[1].Item)
}
