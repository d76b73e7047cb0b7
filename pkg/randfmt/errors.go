package randfmt

import (
	"errors"
	"fmt"
)

var (
	// ErrRuleNotFound matches any *RuleNotFoundError.
	ErrRuleNotFound = errors.New("rule not found")
	// ErrMalformedSpecifier matches any *MalformedSpecifierError.
	ErrMalformedSpecifier = errors.New("malformed specifier")
)

// RuleNotFoundError is returned when a specifier has no generator in the rule
// table.
type RuleNotFoundError struct {
	Char rune
}

func (e *RuleNotFoundError) Error() string {
	return fmt.Sprintf("no rule for specifier %q", e.Char)
}

func (e *RuleNotFoundError) Is(target error) bool {
	return target == ErrRuleNotFound
}

// MalformedSpecifierError is returned when a '%' does not start "%%" or a
// valid count+letter specifier.
type MalformedSpecifierError struct {
	Offset int    // byte offset of the '%' in the template
	Text   string // the offending text starting at Offset
	Reason string
}

func (e *MalformedSpecifierError) Error() string {
	return fmt.Sprintf("malformed specifier %q at offset %d: %s", e.Text, e.Offset, e.Reason)
}

func (e *MalformedSpecifierError) Is(target error) bool {
	return target == ErrMalformedSpecifier
}
