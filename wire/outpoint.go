// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// OutPointSize is the fixed serialize size of an outpoint. Id 32 bytes
	// plus index 4 bytes.
	OutPointSize = TxIdSize + 4
)

// OutPoint identifies a previous transaction output by the id of the
// transaction containing it and the index of the output within it.
type OutPoint struct {
	TxId  TxId   `json:"txid"`
	Index uint32 `json:"index"`
}

// NewOutPoint returns a new transaction outpoint with the provided id and
// index.
func NewOutPoint(id *TxId, index uint32) *OutPoint {
	return &OutPoint{
		TxId:  *id,
		Index: index,
	}
}

// OutPointFromStr parses a string into an outpoint. The format is "<txid:index>".
func OutPointFromStr(s string) (*OutPoint, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return nil, errors.Wrap(ErrInvalidFormat, "wrong colon count")
	}

	id, err := NewTxIdFromStr(parts[0])
	if err != nil {
		return nil, errors.Wrap(err, "invalid id")
	}

	index, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidFormat, "invalid index")
	}

	return NewOutPoint(id, uint32(index)), nil
}

// String returns the OutPoint in the human-readable form "txid:index".
func (op OutPoint) String() string {
	// Allocate enough for id string, colon, and 10 decimal digits, which
	// will fit any uint32.
	buf := make([]byte, 2*TxIdSize+1, 2*TxIdSize+1+10)
	copy(buf, op.TxId.String())
	buf[2*TxIdSize] = ':'
	buf = strconv.AppendUint(buf, uint64(op.Index), 10)
	return string(buf)
}

// Equal returns true if the parameter has the same value.
func (op *OutPoint) Equal(o *OutPoint) bool {
	if op == nil {
		return o == nil
	}
	if o == nil {
		return false
	}
	return op.TxId.Equal(&o.TxId) && op.Index == o.Index
}

// Bytes returns the serialized outpoint. Always OutPointSize bytes.
func (op OutPoint) Bytes() []byte {
	b := make([]byte, 0, OutPointSize)
	b = append(b, op.TxId[:]...)
	return endian.AppendUint32(b, op.Index)
}

// ParseOutPoint reads an outpoint from the front of b and returns it with the
// number of bytes consumed.
func ParseOutPoint(b []byte) (*OutPoint, int, error) {
	if len(b) < OutPointSize {
		return nil, 0, errors.Wrapf(ErrInsufficientBytes, "outpoint: got %d, want %d", len(b),
			OutPointSize)
	}

	result := &OutPoint{
		Index: endian.Uint32(b[TxIdSize:OutPointSize]),
	}
	copy(result.TxId[:], b[:TxIdSize])
	return result, OutPointSize, nil
}

// Serialize encodes op to the bitcoin protocol encoding for an OutPoint to w.
func (op *OutPoint) Serialize(w io.Writer) error {
	if err := op.TxId.Serialize(w); err != nil {
		return err
	}

	return binary.Write(w, endian, op.Index)
}

// Deserialize decodes op from the bitcoin protocol encoding for an OutPoint.
func (op *OutPoint) Deserialize(r io.Reader) error {
	if err := op.TxId.Deserialize(r); err != nil {
		return err
	}

	return binary.Read(r, endian, &op.Index)
}
