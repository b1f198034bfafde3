package niceid

import (
	"encoding"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"strconv"
)

// Compile-time interface checks for ID
var (
	_ fmt.Stringer               = ID(0)
	_ encoding.TextMarshaler     = ID(0)
	_ encoding.TextUnmarshaler   = (*ID)(nil)
	_ encoding.BinaryMarshaler   = ID(0)
	_ encoding.BinaryUnmarshaler = (*ID)(nil)
	_ json.Marshaler             = ID(0)
	_ json.Unmarshaler           = (*ID)(nil)
	_ gob.GobEncoder             = ID(0)
	_ gob.GobDecoder             = (*ID)(nil)
)

// ID is an internal integer key whose text forms (String, JSON, text) are
// encoded with Default. Binary, gob and SQL forms carry the raw integer.
//
// Each text encoding draws a fresh salt, so marshaling the same ID twice
// usually yields two different strings. Both parse back to the same ID.
type ID int64

// Nil is the zero ID.
var Nil ID = 0

// Int64 returns the raw integer.
func (id ID) Int64() int64 {
	return int64(id)
}

// IsNil reports whether id is Nil.
func (id ID) IsNil() bool {
	return id == Nil
}

// Bytes returns the ID as an 8-byte big-endian slice.
func (id ID) Bytes() []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(id)
		id >>= 8
	}
	return b
}

// String encodes the ID with Default. Negative IDs have no encoded form
// and are printed in decimal.
func (id ID) String() string {
	s, err := id.Encode(Default)
	if err != nil {
		return strconv.FormatInt(int64(id), 10)
	}
	return s
}

// Encode encodes the ID with e.
func (id ID) Encode(e *Encoder) (string, error) {
	return e.Encode(int64(id))
}

// MarshalText implements encoding.TextMarshaler
func (id ID) MarshalText() ([]byte, error) {
	s, err := id.Encode(Default)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (id ID) MarshalJSON() ([]byte, error) {
	b, err := id.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(b))
}

// UnmarshalJSON implements json.Unmarshaler. It accepts an encoded string
// or null. Bare numbers are rejected so clients cannot address records by
// their raw key.
func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = Nil
		return nil
	}
	if len(b) > 0 && b[0] != '"' {
		return fmt.Errorf("%w: JSON ID must be an encoded string, got %s", ErrInvalidInput, b)
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("niceid: invalid JSON string: %w", err)
	}
	return id.UnmarshalText([]byte(s))
}

// Parse decodes s with Default.
func Parse(s string) (ID, error) {
	return ParseWith(Default, s)
}

// ParseWith decodes s with e.
func ParseWith(e *Encoder, s string) (ID, error) {
	n, err := e.Decode(s)
	if err != nil {
		return Nil, err
	}
	return ID(n), nil
}

// FromStringOrNil returns the ID decoded from s, or Nil on error.
func FromStringOrNil(s string) ID {
	id, err := Parse(s)
	if err != nil {
		return Nil
	}
	return id
}

// FromBytes returns an ID from an 8-byte big-endian slice.
func FromBytes(b []byte) (ID, error) {
	if len(b) != 8 {
		return Nil, fmt.Errorf("niceid: ID must be exactly 8 bytes, got %d", len(b))
	}
	var n int64
	for _, c := range b {
		n = n<<8 | int64(c)
	}
	return ID(n), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (id ID) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (id *ID) UnmarshalBinary(data []byte) error {
	parsed, err := FromBytes(data)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// GobEncode implements gob.GobEncoder.
func (id ID) GobEncode() ([]byte, error) {
	return id.MarshalBinary()
}

// GobDecode implements gob.GobDecoder.
func (id *ID) GobDecode(data []byte) error {
	return id.UnmarshalBinary(data)
}
