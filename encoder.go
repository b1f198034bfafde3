package niceid

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/paraglidehq/niceid/alphabet"
	"github.com/paraglidehq/niceid/baseconv"
	"github.com/paraglidehq/niceid/shuffle"
)

// Encoder maps non-negative integers to salted strings and back.
//
// An Encoder is immutable: the With methods return a reconfigured copy.
// It is safe for concurrent use. Build one with New; the zero Encoder has
// no alphabet and returns ErrConfig from every method that encodes or
// decodes.
type Encoder struct {
	secret    string
	alphabet  alphabet.Alphabet
	minLength int
	rng       *lockedRand
}

// Option configures an Encoder in New or With.
type Option func(*Encoder) error

// WithCharacters sets the alphabet from a string, one symbol per code point.
func WithCharacters(chars string) Option {
	return func(e *Encoder) error {
		a, err := alphabet.New(chars)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
		e.alphabet = a
		return nil
	}
}

// WithAlphabet sets an already validated alphabet.
func WithAlphabet(a alphabet.Alphabet) Option {
	return func(e *Encoder) error {
		if a.IsZero() {
			return fmt.Errorf("%w: zero alphabet", ErrConfig)
		}
		e.alphabet = a
		return nil
	}
}

// WithMinLength sets the minimum length of encoded strings, salt included.
// Values below 2 disable padding.
func WithMinLength(n int) Option {
	return func(e *Encoder) error {
		if n < 0 {
			return fmt.Errorf("%w: negative minimum length %d", ErrConfig, n)
		}
		e.minLength = n
		return nil
	}
}

// WithRand draws salts from r instead of the global math/rand/v2 source.
// Access to r is serialized by the Encoder.
func WithRand(r *rand.Rand) Option {
	return func(e *Encoder) error {
		if r == nil {
			e.rng = nil
			return nil
		}
		e.rng = &lockedRand{r: r}
		return nil
	}
}

// New creates an Encoder. An empty secret falls back to DefaultSecret.
func New(secret string, opts ...Option) (*Encoder, error) {
	if secret == "" {
		secret = DefaultSecret
	}
	e := &Encoder{
		secret:    secret,
		alphabet:  alphabet.Default,
		minLength: DefaultMinLength,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// With returns a copy of e with opts applied. e is left unchanged.
func (e *Encoder) With(opts ...Option) (*Encoder, error) {
	c := *e
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// WithSecret returns a copy of e using secret. An empty secret falls back
// to DefaultSecret, as in New.
func (e *Encoder) WithSecret(secret string) *Encoder {
	if secret == "" {
		secret = DefaultSecret
	}
	c := *e
	c.secret = secret
	return &c
}

// WithCharacters returns a copy of e using chars as its alphabet.
func (e *Encoder) WithCharacters(chars string) (*Encoder, error) {
	return e.With(WithCharacters(chars))
}

// WithMinLength returns a copy of e with minimum length n.
func (e *Encoder) WithMinLength(n int) (*Encoder, error) {
	return e.With(WithMinLength(n))
}

// Secret returns the secret keying the permutations.
func (e *Encoder) Secret() string {
	return e.secret
}

// Characters returns the alphabet as a string.
func (e *Encoder) Characters() string {
	return e.alphabet.String()
}

// Alphabet returns the unpermuted alphabet.
func (e *Encoder) Alphabet() alphabet.Alphabet {
	return e.alphabet
}

// MinLength returns the minimum encoded length, salt included.
func (e *Encoder) MinLength() int {
	return e.minLength
}

// Encode returns a salted string for id. id must not be negative.
func (e *Encoder) Encode(id int64) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("%w: negative id %d", ErrInvalidInput, id)
	}
	return e.EncodeBig(big.NewInt(id))
}

// EncodeBig is Encode for IDs beyond the int64 range.
func (e *Encoder) EncodeBig(id *big.Int) (string, error) {
	if id == nil || id.Sign() < 0 {
		return "", fmt.Errorf("%w: negative or nil id", ErrInvalidInput)
	}
	if e.alphabet.IsZero() {
		return "", errNoAlphabet
	}
	salt := e.alphabet.Symbol(e.intN(e.alphabet.Len()))

	n := new(big.Int).Add(id, e.padding())
	core := baseconv.FromInt(n, e.permute(salt))
	return strings.Join(core, "") + salt, nil
}

// Decode returns the integer encoded in s.
func (e *Encoder) Decode(s string) (int64, error) {
	n, err := e.DecodeBig(s)
	if err != nil {
		return 0, err
	}
	if !n.IsInt64() {
		return 0, fmt.Errorf("%w: %q is out of int64 range", ErrInvalidInput, s)
	}
	return n.Int64(), nil
}

// DecodeBig is Decode without the int64 bound.
func (e *Encoder) DecodeBig(s string) (*big.Int, error) {
	if e.alphabet.IsZero() {
		return nil, errNoAlphabet
	}
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidInput)
	}
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrInvalidInput)
	}
	symbols := alphabet.Split(s)
	last := len(symbols) - 1
	salt, core := symbols[last], symbols[:last]
	if len(core) == 0 {
		return nil, fmt.Errorf("%w: %q has no digits", ErrInvalidInput, s)
	}
	if !e.alphabet.Contains(salt) {
		return nil, &baseconv.SymbolError{Symbol: salt, Position: last}
	}

	permuted := e.permute(salt)
	// Encode never emits a leading zero digit; accepting one would give an
	// ID a second spelling per salt.
	if len(core) > 1 && core[0] == permuted.Symbol(0) {
		return nil, fmt.Errorf("%w: %q has a leading zero digit", ErrInvalidInput, s)
	}
	n, err := baseconv.ToInt(core, permuted)
	if err != nil {
		return nil, err
	}
	n.Sub(n, e.padding())
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is shorter than the minimum length", ErrInvalidInput, s)
	}
	return n, nil
}

var errNoAlphabet = fmt.Errorf("%w: encoder has no alphabet, use New", ErrConfig)

// permute derives the digit alphabet for salt.
func (e *Encoder) permute(salt string) alphabet.Alphabet {
	a, err := alphabet.FromSymbols(shuffle.Shuffle(e.alphabet.Symbols(), e.secret+salt))
	if err != nil {
		// A permutation of a valid alphabet is valid.
		panic(err)
	}
	return a
}

// padding is the offset that makes the core at least minLength-1 digits
// long: base^(minLength-2), or zero when minLength < 2.
func (e *Encoder) padding() *big.Int {
	if e.minLength < 2 {
		return new(big.Int)
	}
	base := big.NewInt(int64(e.alphabet.Len()))
	return base.Exp(base, big.NewInt(int64(e.minLength-2)), nil)
}

func (e *Encoder) intN(n int) int {
	if e.rng != nil {
		return e.rng.IntN(n)
	}
	return rand.IntN(n)
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
