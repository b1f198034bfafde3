package niceid

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"fmt"
)

var (
	_ driver.Valuer            = ID(0)
	_ sql.Scanner              = (*ID)(nil)
	_ driver.Valuer            = NullID{}
	_ sql.Scanner              = (*NullID)(nil)
	_ json.Marshaler           = NullID{}
	_ json.Unmarshaler         = (*NullID)(nil)
	_ encoding.TextMarshaler   = NullID{}
	_ encoding.TextUnmarshaler = (*NullID)(nil)
)

// Value implements driver.Valuer. The database keeps the raw integer.
func (id ID) Value() (driver.Value, error) {
	return int64(id), nil
}

// Scan implements sql.Scanner. Integers are taken as raw values; strings
// and byte slices are decoded with Default.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = Nil
	case ID:
		*id = v
	case int64:
		*id = ID(v)
	case []byte:
		return id.UnmarshalText(v)
	case string:
		return id.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("niceid: cannot scan %T", src)
	}
	return nil
}

// NullID is an ID that may be NULL in the database or null in JSON.
type NullID struct {
	ID    ID
	Valid bool
}

// Value implements the driver.Valuer interface.
func (n NullID) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.ID.Value()
}

// Scan implements the sql.Scanner interface.
func (n *NullID) Scan(src any) error {
	if src == nil {
		n.ID, n.Valid = Nil, false
		return nil
	}
	err := n.ID.Scan(src)
	n.Valid = err == nil
	return err
}

// MarshalJSON marshals an invalid NullID as null and a valid one as its
// encoded string.
func (n NullID) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.ID.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		n.ID, n.Valid = Nil, false
		return nil
	}
	err := n.ID.UnmarshalJSON(b)
	n.Valid = err == nil
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (n NullID) MarshalText() ([]byte, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.ID.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text is NULL.
func (n *NullID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		n.ID, n.Valid = Nil, false
		return nil
	}
	err := n.ID.UnmarshalText(b)
	n.Valid = err == nil
	return err
}
