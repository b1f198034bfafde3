// Package baseconv converts positional numerals between arbitrary alphabets.
// Values are carried through math/big, so numerals of any length convert
// without overflow.
package baseconv

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/paraglidehq/niceid/alphabet"
)

var (
	// ErrInvalidCharacter is returned when a numeral holds a symbol that is
	// not part of the alphabet it is read in.
	ErrInvalidCharacter = errors.New("niceid: invalid character")

	// ErrEmpty is returned when converting a numeral with no symbols.
	ErrEmpty = errors.New("niceid: empty value")
)

// SymbolError reports the offending symbol of a numeral and its position.
// It matches ErrInvalidCharacter with errors.Is.
type SymbolError struct {
	Symbol   string
	Position int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%v %q at position %d", ErrInvalidCharacter, e.Symbol, e.Position)
}

func (e *SymbolError) Unwrap() error {
	return ErrInvalidCharacter
}

// ToInt reads value as a number in base from.Len(), most significant
// symbol first.
func ToInt(value []string, from alphabet.Alphabet) (*big.Int, error) {
	if len(value) == 0 {
		return nil, ErrEmpty
	}
	base := big.NewInt(int64(from.Len()))
	n := new(big.Int)
	digit := new(big.Int)
	for i, s := range value {
		d, ok := from.Index(s)
		if !ok {
			return nil, &SymbolError{Symbol: s, Position: i}
		}
		n.Mul(n, base)
		n.Add(n, digit.SetInt64(int64(d)))
	}
	return n, nil
}

// FromInt renders n in base to.Len(). Zero renders as the first symbol of
// to. n must not be negative.
func FromInt(n *big.Int, to alphabet.Alphabet) []string {
	if n.Sign() < 0 {
		panic("baseconv: negative value")
	}
	if n.Sign() == 0 {
		return []string{to.Symbol(0)}
	}
	base := big.NewInt(int64(to.Len()))
	q := new(big.Int).Set(n)
	r := new(big.Int)

	var out []string
	for q.Sign() > 0 {
		q.QuoRem(q, base, r)
		out = append(out, to.Symbol(int(r.Int64())))
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Convert re-renders value, a numeral over from, as a numeral over to.
func Convert(value []string, from, to alphabet.Alphabet) ([]string, error) {
	n, err := ToInt(value, from)
	if err != nil {
		return nil, err
	}
	return FromInt(n, to), nil
}

// ConvertString is Convert for numerals held as strings. value is split
// into code points.
func ConvertString(value string, from, to alphabet.Alphabet) (string, error) {
	out, err := Convert(alphabet.Split(value), from, to)
	if err != nil {
		return "", err
	}
	return strings.Join(out, ""), nil
}
