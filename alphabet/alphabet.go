// Package alphabet provides the ordered symbol sets used as digit sets by
// the niceid encoders. A symbol is a single Unicode code point, so
// alphabets may mix ASCII and multi-byte characters.
package alphabet

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultCharacters is digits, then lower-case, then upper-case letters.
	DefaultCharacters = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// DecimalCharacters is the digit set of base-10 numerals.
	DecimalCharacters = "0123456789"
)

// ErrInvalid is returned when an alphabet has fewer than two symbols,
// repeats a symbol, or is not valid UTF-8.
var ErrInvalid = errors.New("niceid: invalid alphabet")

var (
	Default = MustNew(DefaultCharacters)
	Decimal = MustNew(DecimalCharacters)
)

// Alphabet is an immutable ordered set of unique symbols. A symbol's
// position in the alphabet is its digit value.
type Alphabet struct {
	symbols []string
	index   map[string]int
}

// New splits chars into code points and validates the result.
func New(chars string) (Alphabet, error) {
	if !utf8.ValidString(chars) {
		return Alphabet{}, fmt.Errorf("%w: not valid UTF-8", ErrInvalid)
	}
	return FromSymbols(Split(chars))
}

// MustNew is like New but panics on error. Intended for package-level presets.
func MustNew(chars string) Alphabet {
	a, err := New(chars)
	if err != nil {
		panic(err)
	}
	return a
}

// FromSymbols builds an alphabet from already separated symbols. Each
// symbol must be exactly one valid code point, so that Split recovers the
// symbols of any string written in the alphabet.
func FromSymbols(symbols []string) (Alphabet, error) {
	if len(symbols) < 2 {
		return Alphabet{}, fmt.Errorf("%w: need at least 2 symbols, got %d", ErrInvalid, len(symbols))
	}
	a := Alphabet{
		symbols: make([]string, len(symbols)),
		index:   make(map[string]int, len(symbols)),
	}
	for i, s := range symbols {
		if s == "" {
			return Alphabet{}, fmt.Errorf("%w: empty symbol at position %d", ErrInvalid, i)
		}
		if !utf8.ValidString(s) || utf8.RuneCountInString(s) != 1 {
			return Alphabet{}, fmt.Errorf("%w: symbol %q at position %d is not a single code point", ErrInvalid, s, i)
		}
		if j, dup := a.index[s]; dup {
			return Alphabet{}, fmt.Errorf("%w: symbol %q repeated at positions %d and %d", ErrInvalid, s, j, i)
		}
		a.symbols[i] = s
		a.index[s] = i
	}
	return a, nil
}

// Split breaks s into its code points.
func Split(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for len(s) > 0 {
		_, size := utf8.DecodeRuneInString(s)
		out = append(out, s[:size])
		s = s[size:]
	}
	return out
}

// Len returns the number of symbols, which is the numeric base.
func (a Alphabet) Len() int {
	return len(a.symbols)
}

// IsZero reports whether a is the zero Alphabet (never validated).
func (a Alphabet) IsZero() bool {
	return a.symbols == nil
}

// Symbol returns the symbol for digit value i.
func (a Alphabet) Symbol(i int) string {
	return a.symbols[i]
}

// Index returns the digit value of symbol s.
func (a Alphabet) Index(s string) (int, bool) {
	i, ok := a.index[s]
	return i, ok
}

// Contains reports whether s is one of the symbols.
func (a Alphabet) Contains(s string) bool {
	_, ok := a.index[s]
	return ok
}

// Symbols returns a copy of the ordered symbols.
func (a Alphabet) Symbols() []string {
	out := make([]string, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// String returns the symbols joined in order.
func (a Alphabet) String() string {
	return strings.Join(a.symbols, "")
}

// Equal reports whether both alphabets hold the same symbols in the same order.
func (a Alphabet) Equal(b Alphabet) bool {
	if len(a.symbols) != len(b.symbols) {
		return false
	}
	for i := range a.symbols {
		if a.symbols[i] != b.symbols[i] {
			return false
		}
	}
	return true
}
