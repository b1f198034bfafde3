// Package base58 provides niceid encoders over the Bitcoin base58 alphabet.
// It leaves out 0, O, I and l to avoid ambiguity.
package base58

import (
	"github.com/paraglidehq/niceid"
	"github.com/paraglidehq/niceid/alphabet"
)

const Characters = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var Alphabet = alphabet.MustNew(Characters)

// New creates an encoder over the base58 alphabet. opts are applied after
// the alphabet, so a later WithCharacters still wins.
func New(secret string, opts ...niceid.Option) (*niceid.Encoder, error) {
	return niceid.New(secret, append([]niceid.Option{niceid.WithAlphabet(Alphabet)}, opts...)...)
}
