// Package randgen provides random selection primitives for generating fake
// string data: picking from alphabets, repeating generators, and cycling
// through a list without repeats.
package randgen

import "strings"

// Alphabets used by the single character generators. Order is fixed.
const (
	Digits       = "0123456789"
	LowerLetters = "abcdefghijklmnopqrstuvwxyz"
	UpperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var (
	digitSet = strings.Split(Digits, "")
	lowerSet = strings.Split(LowerLetters, "")
	upperSet = strings.Split(UpperLetters, "")
)

// DigitSet returns the digits as single character strings.
func DigitSet() []string { return clone(digitSet) }

// LowerSet returns the lowercase letters as single character strings.
func LowerSet() []string { return clone(lowerSet) }

// UpperSet returns the uppercase letters as single character strings.
func UpperSet() []string { return clone(upperSet) }

// Digit returns a random character from Digits.
func Digit() string { return DigitWith(Crypto) }

// Alphabet returns a random lowercase letter. It is the generator behind the
// default "a" specifier and is equivalent to LowerAlphabet.
func Alphabet() string { return LowerAlphabet() }

// LowerAlphabet returns a random character from LowerLetters.
func LowerAlphabet() string { return LowerAlphabetWith(Crypto) }

// UpperAlphabet returns a random character from UpperLetters.
func UpperAlphabet() string { return UpperAlphabetWith(Crypto) }

// DigitWith is like Digit but draws from src.
func DigitWith(src Source) string { return mustPick(src, digitSet) }

// LowerAlphabetWith is like LowerAlphabet but draws from src.
func LowerAlphabetWith(src Source) string { return mustPick(src, lowerSet) }

// UpperAlphabetWith is like UpperAlphabet but draws from src.
func UpperAlphabetWith(src Source) string { return mustPick(src, upperSet) }

// mustPick is only used with the built-in alphabets, which are never empty.
func mustPick(src Source, items []string) string {
	return items[src.IntN(len(items))]
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
