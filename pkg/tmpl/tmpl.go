// Package tmpl renders Go templates with random data helpers.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/hay-kot/chance/pkg/randfmt"
	"github.com/hay-kot/chance/pkg/randgen"
)

// shellQuote returns a shell-safe quoted string. It wraps the string in single
// quotes and escapes any existing single quotes using the '\'' technique.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", `'\''`)
	return "'" + escaped + "'"
}

// listKey identifies a list by its backing array, so lists with equal
// contents passed from different data fields cycle independently.
type listKey struct {
	first *string
	n     int
}

// funcs builds the function map for a single render. Cycle state lives in
// the closure, so cycling only avoids repeats within one Render call.
func funcs(rules randfmt.Rules, src randgen.Source) template.FuncMap {
	cyclers := map[listKey]*randgen.Cycler[string]{}

	return template.FuncMap{
		"shq": shellQuote,
		"fake": func(format string) (string, error) {
			return randfmt.FormatWith(format, rules)
		},
		"digit": func() string { return randgen.DigitWith(src) },
		"lower": func() string { return randgen.LowerAlphabetWith(src) },
		"upper": func() string { return randgen.UpperAlphabetWith(src) },
		"pick": func(items []string) (string, error) {
			return randgen.PickWith(src, items)
		},
		"oneof": func(items ...string) (string, error) {
			return randgen.PickWith(src, items)
		},
		"cycle": func(items []string) (string, error) {
			if len(items) == 0 {
				return "", randgen.ErrEmptySource
			}

			key := listKey{first: &items[0], n: len(items)}
			c, ok := cyclers[key]
			if !ok {
				c = randgen.NewCycler(items, src)
				cyclers[key] = c
			}
			return c.Next()
		},
		"repeat": func(n int, sep, format string) (string, error) {
			if n > randfmt.MaxCount {
				return "", fmt.Errorf("repeat count %d exceeds %d", n, randfmt.MaxCount)
			}

			t, err := randfmt.Parse(format)
			if err != nil {
				return "", err
			}

			var execErr error
			out := randgen.Join(n, sep, func(int) string {
				if execErr != nil {
					return ""
				}
				s, err := t.Execute(rules)
				execErr = err
				return s
			})
			if execErr != nil {
				return "", execErr
			}
			return out, nil
		},
	}
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - shq: Shell-quote a string for safe use in shell commands
//   - fake: Expand a randfmt template, e.g. {{ fake "%3d-%2A" }}
//   - digit, lower, upper: A single random character
//   - pick: A random element of a list, e.g. {{ pick .Colors }}
//   - oneof: A random argument, e.g. {{ oneof "a" "b" "c" }}
//   - cycle: The next element of a list, no repeats until every element was used
//   - repeat: Expand a randfmt template n times joined by sep, e.g. {{ repeat 3 "," "%2d" }}
func Render(tmpl string, data any) (string, error) {
	return RenderWith(tmpl, data, randfmt.DefaultRules(), randgen.Crypto)
}

// RenderWith is like Render but fake and repeat expand specifiers with rules,
// and the other random helpers draw from src. A nil src uses randgen.Crypto.
func RenderWith(tmpl string, data any, rules randfmt.Rules, src randgen.Source) (string, error) {
	if src == nil {
		src = randgen.Crypto
	}

	t, err := template.New("").Funcs(funcs(rules, src)).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}

// Validate parses tmpl without executing it.
func Validate(tmpl string) error {
	if _, err := template.New("").Funcs(funcs(nil, randgen.Crypto)).Parse(tmpl); err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	return nil
}
