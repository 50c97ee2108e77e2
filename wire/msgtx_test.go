package wire

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func Test_MsgTx_Empty(t *testing.T) {
	tx := NewMsgTx(1)

	b := tx.Bytes()
	want := []byte{
		0x01, 0x00, 0x00, 0x00, // version
		0x00,                   // input count
		0x00, 0x00, 0x00, 0x00, // lock time
	}
	if !bytes.Equal(b, want) {
		t.Fatalf("Wrong encoding : \n  got  : %x\n  want : %x", b, want)
	}

	if size := tx.SerializeSize(); size != len(want) {
		t.Fatalf("Wrong serialize size : got %d, want %d", size, len(want))
	}

	read, consumed, err := ParseMsgTx(b)
	if err != nil {
		t.Fatalf("Failed to parse : %s", err)
	}

	if consumed != len(want) {
		t.Errorf("Wrong consumed count : got %d, want %d", consumed, len(want))
	}

	if read.Version != 1 || len(read.TxIn) != 0 || read.LockTime != 0 {
		t.Errorf("Wrong transaction : got %+v", read)
	}
}

func Test_MsgTx_RoundTrip(t *testing.T) {
	id := ascendingTxId()

	tx := NewMsgTx(2)
	tx.AddTxIn(NewTxIn(NewOutPoint(&id, 0), Script{0x51}))
	tx.AddTxIn(&TxIn{
		PreviousOutPoint: OutPoint{TxId: id, Index: 1},
		UnlockingScript:  Script{0x76, 0xa9, 0x14},
		Sequence:         0,
	})
	tx.LockTime = 500000

	b := tx.Bytes()
	if len(b) != tx.SerializeSize() {
		t.Fatalf("Wrong encoded size : got %d, want %d", len(b), tx.SerializeSize())
	}

	read, consumed, err := ParseMsgTx(b)
	if err != nil {
		t.Fatalf("Failed to parse : %s", err)
	}

	if consumed != len(b) {
		t.Errorf("Wrong consumed count : got %d, want %d", consumed, len(b))
	}

	if read.Version != tx.Version || read.LockTime != tx.LockTime {
		t.Fatalf("Wrong envelope fields : got %d/%d, want %d/%d", read.Version, read.LockTime,
			tx.Version, tx.LockTime)
	}

	if len(read.TxIn) != len(tx.TxIn) {
		t.Fatalf("Wrong input count : got %d, want %d", len(read.TxIn), len(tx.TxIn))
	}

	// The input order is wire order and must survive the round trip.
	for i, input := range read.TxIn {
		if !input.PreviousOutPoint.Equal(&tx.TxIn[i].PreviousOutPoint) {
			t.Errorf("Wrong outpoint %d : \n  got  : %s\n  want : %s", i,
				input.PreviousOutPoint, tx.TxIn[i].PreviousOutPoint)
		}

		if !bytes.Equal(input.UnlockingScript, tx.TxIn[i].UnlockingScript) {
			t.Errorf("Wrong script %d : \n  got  : %x\n  want : %x", i, input.UnlockingScript,
				tx.TxIn[i].UnlockingScript)
		}

		if input.Sequence != tx.TxIn[i].Sequence {
			t.Errorf("Wrong sequence %d : got %d, want %d", i, input.Sequence,
				tx.TxIn[i].Sequence)
		}
	}

	// The same encoding must come out of the round tripped transaction.
	if !bytes.Equal(read.Bytes(), b) {
		t.Errorf("Wrong re-encoding : \n  got  : %x\n  want : %x", read.Bytes(), b)
	}
}

func Test_MsgTx_Truncated(t *testing.T) {
	id := ascendingTxId()

	tx := NewMsgTx(1)
	tx.AddTxIn(NewTxIn(NewOutPoint(&id, 3), Script{0x51, 0x52}))
	b := tx.Bytes()

	for cut := 1; cut <= len(b); cut++ {
		t.Run(fmt.Sprintf("%d bytes", cut), func(t *testing.T) {
			_, _, err := ParseMsgTx(b[:len(b)-cut])
			if errors.Cause(err) != ErrInsufficientBytes {
				t.Errorf("Wrong error : got %v, want %v", err, ErrInsufficientBytes)
			}
		})
	}
}

func Test_MsgTx_String(t *testing.T) {
	tx := NewMsgTx(2)
	tx.AddTxIn(&TxIn{
		PreviousOutPoint: OutPoint{},
		UnlockingScript:  Script{0x51},
		Sequence:         0xffffffff,
	})

	want := "Version: 2\n" +
		"Previous Output Vout: 0\n" +
		"ScriptSig Length: 1\n" +
		"ScriptSig: 51\n" +
		"Sequence: 4294967295\n" +
		"Lock Time: 0\n"

	if got := tx.String(); got != want {
		t.Fatalf("Wrong text view : \n  got  :\n%s\n  want :\n%s", got, want)
	}
}

func Test_MsgTx_Serialize(t *testing.T) {
	id := ascendingTxId()

	tx := NewMsgTx(1)
	tx.AddTxIn(NewTxIn(NewOutPoint(&id, 0), Script{0x00, 0x51}))
	tx.LockTime = 10

	buf := &bytes.Buffer{}
	if err := tx.Serialize(buf); err != nil {
		t.Fatalf("Failed to serialize : %s", err)
	}

	if !bytes.Equal(buf.Bytes(), tx.Bytes()) {
		t.Fatalf("Serialize and Bytes disagree : \n  got  : %x\n  want : %x", buf.Bytes(),
			tx.Bytes())
	}

	read := &MsgTx{}
	if err := read.Deserialize(buf); err != nil {
		t.Fatalf("Failed to deserialize : %s", err)
	}

	if !bytes.Equal(read.Bytes(), tx.Bytes()) {
		t.Errorf("Wrong transaction : \n  got  : %x\n  want : %x", read.Bytes(), tx.Bytes())
	}
}

func Test_MsgTx_Text(t *testing.T) {
	id := ascendingTxId()

	tx := NewMsgTx(1)
	tx.AddTxIn(NewTxIn(NewOutPoint(&id, 2), Script{0x51}))

	text, err := tx.MarshalText()
	if err != nil {
		t.Fatalf("Failed to marshal : %s", err)
	}

	read := &MsgTx{}
	if err := read.UnmarshalText(text); err != nil {
		t.Fatalf("Failed to unmarshal : %s", err)
	}

	if !bytes.Equal(read.Bytes(), tx.Bytes()) {
		t.Errorf("Wrong transaction : \n  got  : %x\n  want : %x", read.Bytes(), tx.Bytes())
	}
}

func Test_MsgTx_Copy(t *testing.T) {
	id := ascendingTxId()

	tx := NewMsgTx(1)
	tx.AddTxIn(NewTxIn(NewOutPoint(&id, 0), Script{0x51, 0x52}))

	c := tx.Copy()
	c.TxIn[0].UnlockingScript[0] = 0x00
	c.TxIn[0].PreviousOutPoint.Index = 9

	if tx.TxIn[0].UnlockingScript[0] != 0x51 {
		t.Errorf("Copy aliases the original script")
	}

	if tx.TxIn[0].PreviousOutPoint.Index != 0 {
		t.Errorf("Copy aliases the original outpoint")
	}
}

func Test_MsgTx_HostileInputCount(t *testing.T) {
	// Input count declares the maximum possible value with no input bytes
	// following. The parse must fail on the first missing input rather than
	// allocating for the declared count.
	b := []byte{0x01, 0x00, 0x00, 0x00}
	b = append(b, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)

	if _, _, err := ParseMsgTx(b); errors.Cause(err) != ErrInsufficientBytes {
		t.Fatalf("Wrong error : got %v, want %v", err, ErrInsufficientBytes)
	}
}
