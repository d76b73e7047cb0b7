// Package randfmt expands templates such as "%3d-%2A" into random strings.
//
// A template is copied verbatim except for '%' escapes:
//
//	%%      a literal '%'
//	%c      one expansion of the rule for letter c
//	%Nc     N expansions of the rule for letter c, concatenated (0 <= N <= MaxCount)
//
// Rule letters are resolved through a Rules table when the template is
// executed. Format uses DefaultRules; FormatWith uses exactly the table it is
// given, without merging in the defaults.
package randfmt

import (
	"strconv"
	"strings"

	"github.com/hay-kot/chance/pkg/randgen"
)

// MaxCount is the largest repeat count a specifier may use. Larger counts
// are rejected by Parse as malformed.
const MaxCount = 1 << 16

// Specifier is a parsed "%Nc" escape.
type Specifier struct {
	Count int
	Char  rune
}

type segment struct {
	literal string
	spec    Specifier
	isSpec  bool
}

// Template is a parsed template. It is immutable and safe for concurrent use.
type Template struct {
	source   string
	segments []segment
}

// Parse parses a template. It fails with a *MalformedSpecifierError when a
// '%' is not followed by '%' or by an optional count and an ASCII letter.
func Parse(template string) (*Template, error) {
	t := &Template{source: template}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(template); {
		c := template[i]
		if c != '%' {
			lit.WriteByte(c)
			i++
			continue
		}

		if i+1 < len(template) && template[i+1] == '%' {
			lit.WriteByte('%')
			i += 2
			continue
		}

		start := i
		j := i + 1
		for j < len(template) && isDigit(template[j]) {
			j++
		}

		if j >= len(template) {
			return nil, &MalformedSpecifierError{
				Offset: start,
				Text:   template[start:],
				Reason: "missing specifier letter",
			}
		}

		if !isLetter(template[j]) {
			return nil, &MalformedSpecifierError{
				Offset: start,
				Text:   template[start : j+1],
				Reason: "specifier must be an ASCII letter",
			}
		}

		count := 1
		if digits := template[start+1 : j]; digits != "" {
			n, err := strconv.Atoi(digits)
			if err != nil || n > MaxCount {
				return nil, &MalformedSpecifierError{
					Offset: start,
					Text:   template[start : j+1],
					Reason: "repeat count out of range",
				}
			}
			count = n
		}

		flush()
		t.segments = append(t.segments, segment{
			spec:   Specifier{Count: count, Char: rune(template[j])},
			isSpec: true,
		})
		i = j + 1
	}
	flush()

	return t, nil
}

// Source returns the template text the Template was parsed from.
func (t *Template) Source() string { return t.source }

// Specifiers returns the specifiers in template order.
func (t *Template) Specifiers() []Specifier {
	var out []Specifier
	for _, s := range t.segments {
		if s.isSpec {
			out = append(out, s.spec)
		}
	}
	return out
}

// Execute expands the template left to right using rules. The first specifier
// without a rule aborts the expansion with a *RuleNotFoundError.
func (t *Template) Execute(rules Rules) (string, error) {
	var b strings.Builder
	for _, s := range t.segments {
		if !s.isSpec {
			b.WriteString(s.literal)
			continue
		}

		gen, err := rules.Lookup(s.spec.Char)
		if err != nil {
			return "", err
		}
		b.WriteString(randgen.Join(s.spec.Count, "", gen))
	}
	return b.String(), nil
}

// Format expands template with DefaultRules.
func Format(template string) (string, error) {
	return FormatWith(template, DefaultRules())
}

// FormatWith expands template with rules. rules replaces the defaults
// entirely; a nil table has no rules.
func FormatWith(template string, rules Rules) (string, error) {
	t, err := Parse(template)
	if err != nil {
		return "", err
	}
	return t.Execute(rules)
}

// MustFormat is like Format but panics on error. Intended for static
// templates in fixtures and tests.
func MustFormat(template string) string {
	out, err := Format(template)
	if err != nil {
		panic(err)
	}
	return out
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
