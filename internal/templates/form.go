// Package templates prompts for format templates interactively.
package templates

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/chance/internal/styles"
	"github.com/hay-kot/chance/pkg/randfmt"
)

// customOption is the select value that switches to a free-form input.
const customOption = ""

// LookupFunc resolves a named template to its format string.
type LookupFunc func(name string) (string, error)

// Prompt asks the user for a template. When names is not empty the user first
// picks one of the named templates or enters a custom one.
func Prompt(names []string, lookup LookupFunc) (string, error) {
	choice := customOption

	if len(names) > 0 {
		sel := huh.NewSelect[string]().
			Title("Template").
			Options(options(names)...).
			Value(&choice)

		if err := huh.NewForm(huh.NewGroup(sel)).WithTheme(styles.FormTheme()).Run(); err != nil {
			return "", err
		}

		if choice != customOption {
			return lookup(choice)
		}
	}

	var value string
	input := huh.NewInput().
		Title("Format").
		Description("%d digit, %a lowercase, %A uppercase, %% literal percent").
		Placeholder("(%3d) %3d-%4d").
		Value(&value).
		Validate(validateTemplate)

	if err := huh.NewForm(huh.NewGroup(input)).WithTheme(styles.FormTheme()).Run(); err != nil {
		return "", err
	}

	return value, nil
}

func options(names []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(names)+1)
	for _, name := range names {
		opts = append(opts, huh.NewOption(name, name))
	}
	return append(opts, huh.NewOption("custom...", customOption))
}

func validateTemplate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("template is required")
	}
	_, err := randfmt.Parse(s)
	return err
}
