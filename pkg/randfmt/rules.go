package randfmt

import (
	"maps"
	"slices"

	"github.com/hay-kot/chance/pkg/randgen"
)

// Generator produces the replacement text for one repetition of a specifier.
// i is the 0-based repetition index; most generators ignore it.
type Generator func(i int) string

// Rules maps a specifier character to its generator. Lookups are case
// sensitive.
type Rules map[rune]Generator

// DefaultRules returns a new table with the built-in specifiers:
//
//	d  digit 0-9
//	a  lowercase letter a-z
//	A  uppercase letter A-Z
func DefaultRules() Rules {
	return Rules{
		'd': randgen.NoIndex(randgen.Digit),
		'a': randgen.NoIndex(randgen.LowerAlphabet),
		'A': randgen.NoIndex(randgen.UpperAlphabet),
	}
}

// Lookup returns the generator for c. A nil generator is treated as missing.
func (r Rules) Lookup(c rune) (Generator, error) {
	gen, ok := r[c]
	if !ok || gen == nil {
		return nil, &RuleNotFoundError{Char: c}
	}
	return gen, nil
}

// Chars returns the specifier characters in the table, sorted.
func (r Rules) Chars() []rune {
	return slices.Sorted(maps.Keys(r))
}

// Clone returns a shallow copy of the table.
func (r Rules) Clone() Rules {
	return maps.Clone(r)
}
