// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	// TxVersion is the current latest supported transaction version.
	TxVersion = 1

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// MaxPrevOutIndex is the maximum index the index field of a previous
	// outpoint can be.
	MaxPrevOutIndex uint32 = 0xffffffff

	// minTxInPayload is the minimum payload size for a transaction input.
	// PreviousOutPoint 36 bytes + compact size for the UnlockingScript
	// length 1 byte + Sequence 4 bytes.
	minTxInPayload = OutPointSize + 5

	// minTxPayload is the minimum payload size for a transaction.
	// Version 4 bytes + compact size number of inputs 1 byte + LockTime
	// 4 bytes.
	minTxPayload = 9

	// defaultTxInAlloc is the default size used for the backing array for
	// transaction inputs. The array will dynamically grow as needed, but this
	// figure is intended to provide enough space for the number of inputs in
	// a typical transaction without needing to grow the backing array
	// multiple times. The input count from the wire is deliberately not used
	// for the initial allocation since it is attacker controlled.
	defaultTxInAlloc = 15
)

// TxIn defines a bitcoin transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint `json:"outpoint"`
	UnlockingScript  Script   `json:"script"`
	Sequence         uint32   `json:"sequence"`
}

// NewTxIn returns a new bitcoin transaction input with the provided previous
// outpoint and unlocking script with a default sequence of
// MaxTxInSequenceNum.
func NewTxIn(prevOut *OutPoint, unlockingScript Script) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		UnlockingScript:  unlockingScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction input.
func (t *TxIn) SerializeSize() int {
	// Outpoint 36 bytes + Sequence 4 bytes + length prefixed UnlockingScript.
	return OutPointSize + 4 + t.UnlockingScript.SerializeSize()
}

// Serialize encodes t to the bitcoin protocol encoding for a transaction
// input to w.
func (t *TxIn) Serialize(w io.Writer) error {
	if err := t.PreviousOutPoint.Serialize(w); err != nil {
		return err
	}

	if err := t.UnlockingScript.Serialize(w); err != nil {
		return err
	}

	return binary.Write(w, endian, t.Sequence)
}

// Deserialize decodes t from the bitcoin protocol encoding for a transaction
// input.
func (t *TxIn) Deserialize(r io.Reader) error {
	if err := t.PreviousOutPoint.Deserialize(r); err != nil {
		return err
	}

	script, err := DeserializeScript(r)
	if err != nil {
		return err
	}
	t.UnlockingScript = script

	return binary.Read(r, endian, &t.Sequence)
}

// ParseTxIn reads a transaction input from the front of b and returns it with
// the number of bytes consumed.
func ParseTxIn(b []byte) (*TxIn, int, error) {
	prevOut, offset, err := ParseOutPoint(b)
	if err != nil {
		return nil, 0, errors.Wrap(err, "previous outpoint")
	}

	script, scriptSize, err := ParseScript(b[offset:])
	if err != nil {
		return nil, 0, errors.Wrap(err, "unlocking script")
	}
	offset += scriptSize

	if len(b)-offset < 4 {
		return nil, 0, errors.Wrap(ErrInsufficientBytes, "sequence")
	}

	result := &TxIn{
		PreviousOutPoint: *prevOut,
		UnlockingScript:  script,
		Sequence:         endian.Uint32(b[offset : offset+4]),
	}
	return result, offset + 4, nil
}

// MsgTx represents a bitcoin tx message restricted to the input side. It is a
// version, a compact size counted list of inputs, and a lock time. There is
// no output list and no witness data.
//
// Use the AddTxIn function to build up the list of transaction inputs.
type MsgTx struct {
	Version  uint32
	TxIn     []*TxIn
	LockTime uint32
}

// NewMsgTx returns a new bitcoin tx message. The returned instance has the
// provided version, no transaction inputs, and a lock time of zero to
// indicate the transaction is valid immediately.
func NewMsgTx(version uint32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0, defaultTxInAlloc),
	}
}

// AddTxIn adds a transaction input to the message.
func (tx *MsgTx) AddTxIn(ti *TxIn) {
	tx.TxIn = append(tx.TxIn, ti)
}

// Copy creates a deep copy of a transaction so that the original does not get
// modified when the copy is manipulated.
func (tx *MsgTx) Copy() *MsgTx {
	newTx := MsgTx{
		Version:  tx.Version,
		TxIn:     make([]*TxIn, 0, len(tx.TxIn)),
		LockTime: tx.LockTime,
	}

	for _, oldTxIn := range tx.TxIn {
		newTxIn := TxIn{
			PreviousOutPoint: OutPoint{
				TxId:  oldTxIn.PreviousOutPoint.TxId.Copy(),
				Index: oldTxIn.PreviousOutPoint.Index,
			},
			UnlockingScript: oldTxIn.UnlockingScript.Copy(),
			Sequence:        oldTxIn.Sequence,
		}
		newTx.TxIn = append(newTx.TxIn, &newTxIn)
	}

	return &newTx
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction.
func (tx *MsgTx) SerializeSize() int {
	// Version 4 bytes + LockTime 4 bytes + serialized compact size for the
	// number of transaction inputs.
	n := 8 + CompactSize(len(tx.TxIn)).SerializeSize()

	for _, txIn := range tx.TxIn {
		n += txIn.SerializeSize()
	}

	return n
}

// Serialize encodes the transaction to w.
func (tx *MsgTx) Serialize(w io.Writer) error {
	if err := binary.Write(w, endian, tx.Version); err != nil {
		return err
	}

	if err := WriteCompactSize(w, uint64(len(tx.TxIn))); err != nil {
		return err
	}

	for _, ti := range tx.TxIn {
		if err := ti.Serialize(w); err != nil {
			return err
		}
	}

	return binary.Write(w, endian, tx.LockTime)
}

// Deserialize decodes a transaction from r into the receiver.
func (tx *MsgTx) Deserialize(r io.Reader) error {
	if err := binary.Read(r, endian, &tx.Version); err != nil {
		return err
	}

	count, _, err := ReadCompactSize(r)
	if err != nil {
		return err
	}

	// The count is attacker controlled, so the backing array grows with the
	// inputs actually read rather than being sized up front.
	tx.TxIn = make([]*TxIn, 0, defaultTxInAlloc)
	for i := uint64(0); i < count; i++ {
		ti := &TxIn{}
		if err := ti.Deserialize(r); err != nil {
			return err
		}
		tx.TxIn = append(tx.TxIn, ti)
	}

	return binary.Read(r, endian, &tx.LockTime)
}

// Bytes returns the byte encoded format of the tx.
func (tx MsgTx) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, tx.SerializeSize()))
	tx.Serialize(buf)
	return buf.Bytes()
}

// ParseMsgTx reads a transaction from the front of b and returns it with the
// number of bytes consumed. A failure on any field or input aborts the whole
// parse with no partial transaction.
func ParseMsgTx(b []byte) (*MsgTx, int, error) {
	if len(b) < 4 {
		return nil, 0, errors.Wrap(ErrInsufficientBytes, "version")
	}

	tx := &MsgTx{
		Version: endian.Uint32(b[:4]),
		TxIn:    make([]*TxIn, 0, defaultTxInAlloc),
	}

	count, countSize, err := ParseCompactSize(b[4:])
	if err != nil {
		return nil, 0, errors.Wrap(err, "input count")
	}

	cursor := 4 + countSize
	for i := uint64(0); i < uint64(count); i++ {
		ti, size, err := ParseTxIn(b[cursor:])
		if err != nil {
			return nil, 0, errors.Wrapf(err, "input %d", i)
		}

		tx.TxIn = append(tx.TxIn, ti)
		cursor += size
	}

	if len(b)-cursor < 4 {
		return nil, 0, errors.Wrap(ErrInsufficientBytes, "lock time")
	}
	tx.LockTime = endian.Uint32(b[cursor : cursor+4])

	return tx, cursor + 4, nil
}

// String returns a line oriented text view of the transaction. The field
// order and labels are fixed. There is no parse back from this form.
func (tx *MsgTx) String() string {
	result := fmt.Sprintf("Version: %d\n", tx.Version)
	for _, input := range tx.TxIn {
		result += fmt.Sprintf("Previous Output Vout: %d\n", input.PreviousOutPoint.Index)
		result += fmt.Sprintf("ScriptSig Length: %d\n", len(input.UnlockingScript))
		result += fmt.Sprintf("ScriptSig: %s\n", hex.EncodeToString(input.UnlockingScript))
		result += fmt.Sprintf("Sequence: %d\n", input.Sequence)
	}
	result += fmt.Sprintf("Lock Time: %d\n", tx.LockTime)
	return result
}

// MarshalText implements encoding.TextMarshaler for json and other text encoding packages.
func (tx MsgTx) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, errors.Wrap(err, "serialize tx")
	}

	return []byte(hex.EncodeToString(buf.Bytes())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for json and other text encoding packages.
func (tx *MsgTx) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return errors.Wrap(ErrInvalidFormat, "decode hex")
	}

	if err := tx.Deserialize(bytes.NewReader(b)); err != nil {
		return errors.Wrap(err, "deserialize tx")
	}

	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler for binary encoding packages.
func (tx MsgTx) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, errors.Wrap(err, "serialize tx")
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for binary encoding packages.
func (tx *MsgTx) UnmarshalBinary(b []byte) error {
	if err := tx.Deserialize(bytes.NewReader(b)); err != nil {
		return errors.Wrap(err, "deserialize tx")
	}

	return nil
}
