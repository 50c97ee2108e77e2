// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

const (
	// MaxCompactSizePayload is the maximum encoded size for a variable length
	// integer.
	MaxCompactSizePayload = 9
)

var (
	endian = binary.LittleEndian
)

// CompactSize is a variable length unsigned integer. The encoded width is
// selected by the first byte: values up to 0xfc are a single byte, 0xfd is
// followed by a uint16, 0xfe by a uint32, and 0xff by a uint64, all little
// endian.
type CompactSize uint64

// SerializeSize returns the number of bytes it takes to serialize the value.
func (v CompactSize) SerializeSize() int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if v < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if v <= math.MaxUint16 {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if v <= math.MaxUint32 {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}

// Bytes returns the encoded value. The minimal width for the value is always
// used.
func (v CompactSize) Bytes() []byte {
	return AppendCompactSize(make([]byte, 0, v.SerializeSize()), uint64(v))
}

// AppendCompactSize appends the encoding of val to b and returns the extended
// buffer.
func AppendCompactSize(b []byte, val uint64) []byte {
	if val < 0xfd {
		return append(b, uint8(val))
	}

	if val <= math.MaxUint16 {
		b = append(b, 0xfd)
		return endian.AppendUint16(b, uint16(val))
	}

	if val <= math.MaxUint32 {
		b = append(b, 0xfe)
		return endian.AppendUint32(b, uint32(val))
	}

	b = append(b, 0xff)
	return endian.AppendUint64(b, val)
}

// ParseCompactSize reads a variable length integer from the front of b and
// returns the value and the number of bytes consumed.
//
// Non-minimal encodings are accepted. The encoder never produces them, but the
// wire format does not require minimal width on read, so values like
// 0xfd 0x01 0x00 decode to 1 rather than failing.
func ParseCompactSize(b []byte) (CompactSize, int, error) {
	if len(b) == 0 {
		return 0, 0, errors.Wrap(ErrInsufficientBytes, "discriminant")
	}

	switch b[0] {
	case 0xff:
		if len(b) < 9 {
			return 0, 0, errors.Wrap(ErrInsufficientBytes, "uint64 value")
		}
		return CompactSize(endian.Uint64(b[1:9])), 9, nil

	case 0xfe:
		if len(b) < 5 {
			return 0, 0, errors.Wrap(ErrInsufficientBytes, "uint32 value")
		}
		return CompactSize(endian.Uint32(b[1:5])), 5, nil

	case 0xfd:
		if len(b) < 3 {
			return 0, 0, errors.Wrap(ErrInsufficientBytes, "uint16 value")
		}
		return CompactSize(endian.Uint16(b[1:3])), 3, nil

	default:
		return CompactSize(b[0]), 1, nil
	}
}

// WriteCompactSize serializes val to w using a variable number of bytes
// depending on its value.
func WriteCompactSize(w io.Writer, val uint64) error {
	if val < 0xfd {
		return binary.Write(w, endian, uint8(val))
	}

	if val <= math.MaxUint16 {
		if err := binary.Write(w, endian, uint8(0xfd)); err != nil {
			return err
		}
		return binary.Write(w, endian, uint16(val))
	}

	if val <= math.MaxUint32 {
		if err := binary.Write(w, endian, uint8(0xfe)); err != nil {
			return err
		}
		return binary.Write(w, endian, uint32(val))
	}

	if err := binary.Write(w, endian, uint8(0xff)); err != nil {
		return err
	}
	return binary.Write(w, endian, val)
}

// ReadCompactSize reads a variable length integer from r and returns its
// value and encoded size. Like ParseCompactSize it accepts non-minimal
// encodings.
func ReadCompactSize(r io.Reader) (uint64, int, error) {
	var discriminant uint8
	if err := binary.Read(r, endian, &discriminant); err != nil {
		return 0, 0, err
	}

	switch discriminant {
	case 0xff:
		var sv uint64
		if err := binary.Read(r, endian, &sv); err != nil {
			return 0, 0, err
		}
		return sv, 9, nil

	case 0xfe:
		var sv uint32
		if err := binary.Read(r, endian, &sv); err != nil {
			return 0, 0, err
		}
		return uint64(sv), 5, nil

	case 0xfd:
		var sv uint16
		if err := binary.Read(r, endian, &sv); err != nil {
			return 0, 0, err
		}
		return uint64(sv), 3, nil

	default:
		return uint64(discriminant), 1, nil
	}
}
