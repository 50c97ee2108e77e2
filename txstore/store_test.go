package txstore

import (
	"bytes"
	"context"
	"testing"

	"github.com/tokenized/txwire/wire"

	"github.com/pkg/errors"
)

func testTx(t *testing.T) (wire.TxId, *wire.MsgTx) {
	id, err := wire.NewTxIdFromStr(
		"0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")
	if err != nil {
		t.Fatalf("Failed to create id : %s", err)
	}

	tx := wire.NewMsgTx(2)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(id, 0), wire.Script{0x51}))
	tx.LockTime = 100
	return *id, tx
}

func Test_Store_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMockStorage())

	id, tx := testTx(t)

	if err := store.Save(ctx, id, tx); err != nil {
		t.Fatalf("Failed to save tx : %s", err)
	}

	read, err := store.Load(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load tx : %s", err)
	}

	if !bytes.Equal(read.Bytes(), tx.Bytes()) {
		t.Fatalf("Wrong tx : \n  got  : %x\n  want : %x", read.Bytes(), tx.Bytes())
	}

	ids, err := store.ListIds(ctx)
	if err != nil {
		t.Fatalf("Failed to list ids : %s", err)
	}

	if len(ids) != 1 || !ids[0].Equal(&id) {
		t.Fatalf("Wrong ids : got %v, want [%s]", ids, id)
	}
}

func Test_Store_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMockStorage())

	id, _ := testTx(t)

	if _, err := store.Load(ctx, id); errors.Cause(err) != ErrNotFound {
		t.Fatalf("Wrong error : got %v, want %v", err, ErrNotFound)
	}
}

func Test_Store_Remove(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMockStorage())

	id, tx := testTx(t)

	if err := store.Save(ctx, id, tx); err != nil {
		t.Fatalf("Failed to save tx : %s", err)
	}

	if err := store.Remove(ctx, id); err != nil {
		t.Fatalf("Failed to remove tx : %s", err)
	}

	if _, err := store.Load(ctx, id); errors.Cause(err) != ErrNotFound {
		t.Fatalf("Wrong error : got %v, want %v", err, ErrNotFound)
	}
}

func Test_Store_Filesystem(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewFilesystemStorage(NewConfig("standalone", t.TempDir())))

	id, tx := testTx(t)

	if err := store.Save(ctx, id, tx); err != nil {
		t.Fatalf("Failed to save tx : %s", err)
	}

	read, err := store.Load(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load tx : %s", err)
	}

	if !bytes.Equal(read.Bytes(), tx.Bytes()) {
		t.Fatalf("Wrong tx : \n  got  : %x\n  want : %x", read.Bytes(), tx.Bytes())
	}

	// The filesystem backend builds keys by joining path and name, so the
	// listed keys must still parse back into ids.
	ids, err := store.ListIds(ctx)
	if err != nil {
		t.Fatalf("Failed to list ids : %s", err)
	}

	if len(ids) != 1 || !ids[0].Equal(&id) {
		t.Fatalf("Wrong ids : got %v, want [%s]", ids, id)
	}
}
