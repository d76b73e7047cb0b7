package randgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// ErrEmptySource is returned when there is nothing to choose from.
var ErrEmptySource = errors.New("randgen: empty source")

// Source produces uniformly distributed integers in [0, n). n is always > 0.
//
// *math/rand/v2.Rand satisfies Source and can be used for reproducible output.
type Source interface {
	IntN(n int) int
}

// Crypto is the default Source, backed by crypto/rand. Safe for concurrent use.
var Crypto Source = cryptoSource{}

type cryptoSource struct{}

func (cryptoSource) IntN(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("randgen: invalid argument to IntN: %d", n))
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail on supported platforms.
		panic(fmt.Errorf("randgen: read random: %w", err))
	}
	return int(v.Int64())
}

// Pick returns a uniformly random element of items.
func Pick[T any](items []T) (T, error) {
	return PickWith(Crypto, items)
}

// PickWith is like Pick but draws from src.
func PickWith[T any](src Source, items []T) (T, error) {
	if len(items) == 0 {
		var zero T
		return zero, ErrEmptySource
	}
	return items[src.IntN(len(items))], nil
}
