// Package niceid turns sequential integer IDs into short strings that do not
// reveal ordering, and back again.
//
// An encoded ID is the value rendered in a permutation of the alphabet keyed
// by secret+salt, followed by the salt symbol itself. The salt is drawn at
// random on every Encode, so one ID has many valid encodings; all of them
// decode to the same integer.
//
// This is obfuscation, not encryption. The salt source is math/rand/v2 and
// the permutation is derived from a non-cryptographic hash. Do not use
// encoded IDs as access tokens.
package niceid

import (
	"errors"
	"math/big"

	"github.com/paraglidehq/niceid/baseconv"
)

const (
	// DefaultSecret is used when no secret is given. Override it.
	DefaultSecret = "Random secret string"

	DefaultMinLength = 5
)

var (
	// ErrConfig is returned when an alphabet or minimum length is rejected.
	// Alphabet failures also match alphabet.ErrInvalid.
	ErrConfig = errors.New("niceid: invalid configuration")

	// ErrInvalidCharacter is returned when decoding a string that holds a
	// symbol outside the alphabet.
	ErrInvalidCharacter = baseconv.ErrInvalidCharacter

	// ErrInvalidInput is returned for negative IDs and for strings that no
	// Encode under the current configuration could have produced.
	ErrInvalidInput = errors.New("niceid: invalid input")
)

// Default is used by the package-level Encode and Decode and by the ID
// codecs. Replace it at startup with SetDefault or SetSecret.
var Default = Must(New(DefaultSecret))

// SetDefault replaces Default. Call once at startup, before encoding.
func SetDefault(e *Encoder) {
	Default = e
}

// SetSecret replaces Default with a copy using secret.
// Call once at startup, before encoding.
func SetSecret(secret string) {
	Default = Default.WithSecret(secret)
}

// Encode encodes id with Default.
func Encode(id int64) (string, error) {
	return Default.Encode(id)
}

// Decode decodes s with Default.
func Decode(s string) (int64, error) {
	return Default.Decode(s)
}

// EncodeBig encodes id with Default.
func EncodeBig(id *big.Int) (string, error) {
	return Default.EncodeBig(id)
}

// DecodeBig decodes s with Default.
func DecodeBig(s string) (*big.Int, error) {
	return Default.DecodeBig(s)
}

// Must panics if err is not nil
func Must(e *Encoder, err error) *Encoder {
	if err != nil {
		panic(err)
	}
	return e
}
