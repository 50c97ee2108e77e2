package wire

import (
	"encoding/hex"
	"io"

	"github.com/pkg/errors"
)

const (
	// MaxScriptSize is the maximum byte length accepted for a script when
	// deserializing from a stream, where the remaining length is unknown. It
	// protects against memory exhaustion from a hostile declared length.
	MaxScriptSize = 1 << 25 // 32 MB
)

// Script is an opaque byte buffer. The contents are not interpreted, only
// moved across the wire with a compact size length prefix.
type Script []byte

func NewScript(b []byte) Script {
	return Script(b)
}

// Bytes returns a view of the underlying script bytes.
func (s Script) Bytes() []byte {
	return s
}

// Copy returns an independent copy of the script.
func (s Script) Copy() Script {
	if len(s) == 0 {
		return nil
	}
	c := make(Script, len(s))
	copy(c, s)
	return c
}

// String returns the lowercase hex for the script bytes.
func (s Script) String() string {
	return hex.EncodeToString(s)
}

// SerializeSize returns the number of bytes it takes to serialize the script
// including the length prefix.
func (s Script) SerializeSize() int {
	return CompactSize(len(s)).SerializeSize() + len(s)
}

// SerializeBytes returns the serialized script. The byte length is encoded as
// a compact size followed by the bytes themselves.
func (s Script) SerializeBytes() []byte {
	b := AppendCompactSize(make([]byte, 0, s.SerializeSize()), uint64(len(s)))
	return append(b, s...)
}

// Serialize writes the length prefixed script to w.
func (s Script) Serialize(w io.Writer) error {
	if err := WriteCompactSize(w, uint64(len(s))); err != nil {
		return err
	}

	_, err := w.Write(s)
	return err
}

// ParseScript reads a length prefixed script from the front of b and returns
// it with the number of bytes consumed.
//
// The declared length is checked against the bytes actually remaining before
// any allocation, so a hostile prefix can not force a large allocation.
func ParseScript(b []byte) (Script, int, error) {
	count, prefix, err := ParseCompactSize(b)
	if err != nil {
		return nil, 0, errors.Wrap(err, "script length")
	}

	if uint64(count) > uint64(len(b)-prefix) {
		return nil, 0, errors.Wrapf(ErrInsufficientBytes, "script: declared %d, remaining %d",
			count, len(b)-prefix)
	}

	result := make(Script, count)
	copy(result, b[prefix:prefix+int(count)])
	return result, prefix + int(count), nil
}

// DeserializeScript reads a length prefixed script from r. The declared
// length is capped at MaxScriptSize since a stream has no remaining length to
// check against.
func DeserializeScript(r io.Reader) (Script, error) {
	count, _, err := ReadCompactSize(r)
	if err != nil {
		return nil, errors.Wrap(err, "script length")
	}

	if count > MaxScriptSize {
		return nil, errors.Wrapf(ErrInvalidFormat, "script too long: declared %d, max %d", count,
			MaxScriptSize)
	}

	result := make(Script, count)
	if _, err := io.ReadFull(r, result); err != nil {
		return nil, err
	}
	return result, nil
}

// MarshalText returns the text encoding of the script.
// Implements encoding.TextMarshaler interface.
func (s Script) MarshalText() ([]byte, error) {
	result := make([]byte, hex.EncodedLen(len(s)))
	hex.Encode(result, s)
	return result, nil
}

// UnmarshalText parses a text encoded script and sets the value of this object.
// Implements encoding.TextUnmarshaler interface.
func (s *Script) UnmarshalText(text []byte) error {
	d := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(d, text); err != nil {
		return errors.Wrapf(ErrInvalidFormat, "script hex: %s", err)
	}

	*s = d
	return nil
}

// MarshalBinary returns the binary encoding of the script without the length
// prefix.
// Implements encoding.BinaryMarshaler interface.
func (s Script) MarshalBinary() ([]byte, error) {
	return s, nil
}

// UnmarshalBinary sets the script to the data.
// Implements encoding.BinaryUnmarshaler interface.
func (s *Script) UnmarshalBinary(data []byte) error {
	*s = data
	return nil
}
