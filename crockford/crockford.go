// Package crockford provides niceid encoders over the Crockford base32
// alphabet, which excludes I, L, O and U. Decoding is case-insensitive,
// ignores hyphens, and reads I and L as 1 and O as 0, so IDs survive being
// read aloud or retyped.
package crockford

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/paraglidehq/niceid"
	"github.com/paraglidehq/niceid/alphabet"
)

const Characters = "0123456789abcdefghjkmnpqrstvwxyz"

var Alphabet = alphabet.MustNew(Characters)

// Encoder is a niceid.Encoder whose Decode normalizes its input first.
// The reconfiguring With methods of the embedded Encoder return a plain
// *niceid.Encoder without normalization.
type Encoder struct {
	*niceid.Encoder
}

// New creates an encoder over the Crockford alphabet. Options that replace
// the alphabet are rejected with niceid.ErrConfig, since Decode's
// normalization only holds for Alphabet.
func New(secret string, opts ...niceid.Option) (*Encoder, error) {
	e, err := niceid.New(secret, append([]niceid.Option{niceid.WithAlphabet(Alphabet)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if !e.Alphabet().Equal(Alphabet) {
		return nil, fmt.Errorf("%w: crockford encoder requires the crockford alphabet", niceid.ErrConfig)
	}
	return &Encoder{Encoder: e}, nil
}

// Decode normalizes s and decodes it.
func (e *Encoder) Decode(s string) (int64, error) {
	return e.Encoder.Decode(Normalize(s))
}

// DecodeBig normalizes s and decodes it.
func (e *Encoder) DecodeBig(s string) (*big.Int, error) {
	return e.Encoder.DecodeBig(Normalize(s))
}

var substitutions = strings.NewReplacer(
	"-", "",
	"i", "1",
	"l", "1",
	"o", "0",
)

// Normalize maps s onto the encoding alphabet: lower-case, hyphens
// removed, i and l read as 1, o read as 0. Other symbols pass through.
func Normalize(s string) string {
	return substitutions.Replace(strings.ToLower(s))
}
