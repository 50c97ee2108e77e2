package wire

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	// TxIdSize is the byte size of a transaction id.
	TxIdSize = 32
)

// TxId is a 32 byte transaction identifier. The bytes are kept in wire order
// and the text form is the same bytes hex encoded, with no byte order swap.
type TxId [TxIdSize]byte

func NewTxId(b []byte) (*TxId, error) {
	if len(b) != TxIdSize {
		return nil, errors.Wrapf(ErrInvalidFormat, "identifier size: got %d, want %d", len(b),
			TxIdSize)
	}
	result := TxId{}
	copy(result[:], b)
	return &result, nil
}

func NewTxIdFromStr(s string) (*TxId, error) {
	result := &TxId{}
	if err := result.SetString(s); err != nil {
		return nil, err
	}
	return result, nil
}

// Bytes returns the data for the id.
func (id TxId) Bytes() []byte {
	return id[:]
}

// SetBytes sets the value of the id.
func (id *TxId) SetBytes(b []byte) error {
	if len(b) != TxIdSize {
		return errors.Wrapf(ErrInvalidFormat, "identifier size: got %d, want %d", len(b),
			TxIdSize)
	}
	copy(id[:], b)
	return nil
}

// SetString sets the value of the id from a 64 character hex string. Wrong
// lengths and non-hex characters are both reported as an invalid identifier.
func (id *TxId) SetString(s string) error {
	if len(s) != 2*TxIdSize {
		return errors.Wrapf(ErrInvalidFormat, "identifier hex length: got %d, want %d", len(s),
			2*TxIdSize)
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrapf(ErrInvalidFormat, "identifier hex: %s", err)
	}

	copy(id[:], b)
	return nil
}

// String returns the lowercase hex for the id.
func (id TxId) String() string {
	return hex.EncodeToString(id[:])
}

// Equal returns true if the parameter has the same value.
func (id *TxId) Equal(o *TxId) bool {
	if id == nil {
		return o == nil
	}
	if o == nil {
		return false
	}
	return bytes.Equal(id[:], o[:])
}

func (id TxId) Copy() TxId {
	var c TxId
	copy(c[:], id[:])
	return c
}

func (id TxId) IsZero() bool {
	var zero TxId
	return id.Equal(&zero)
}

// Serialize writes the id into a writer.
func (id TxId) Serialize(w io.Writer) error {
	_, err := w.Write(id[:])
	return err
}

func (id *TxId) Deserialize(r io.Reader) error {
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return err
	}
	return nil
}

// MarshalJSON converts to json.
func (id TxId) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", id)), nil
}

// UnmarshalJSON converts from json.
func (id *TxId) UnmarshalJSON(data []byte) error {
	l := len(data)
	if l < 2 || data[0] != '"' || data[l-1] != '"' {
		return errors.Wrap(ErrInvalidFormat, "identifier not in quotes")
	}

	return id.SetString(string(data[1 : l-1]))
}

// MarshalText returns the text encoding of the id.
// Implements encoding.TextMarshaler interface.
func (id TxId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses a text encoded id and sets the value of this object.
// Implements encoding.TextUnmarshaler interface.
func (id *TxId) UnmarshalText(text []byte) error {
	return id.SetString(string(text))
}

// MarshalBinary returns the binary encoding of the id.
// Implements encoding.BinaryMarshaler interface.
func (id TxId) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

// UnmarshalBinary parses a binary encoded id and sets the value of this object.
// Implements encoding.BinaryUnmarshaler interface.
func (id *TxId) UnmarshalBinary(data []byte) error {
	return id.SetBytes(data)
}
