package txstore

import (
	"bytes"
	"context"
	"strings"

	"github.com/tokenized/txwire/wire"

	"github.com/pkg/errors"
)

const (
	txKeyPrefix = "txs"
)

// Store persists raw transactions in a Storage backend keyed by their
// identifier. The wire encoding is used as the stored form, so anything
// loaded went through a full decode.
type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{
		storage: storage,
	}
}

// Save writes the wire encoding of tx under id.
func (s *Store) Save(ctx context.Context, id wire.TxId, tx *wire.MsgTx) error {
	buf := bytes.NewBuffer(make([]byte, 0, tx.SerializeSize()))
	if err := tx.Serialize(buf); err != nil {
		return errors.Wrap(err, "serialize")
	}

	if err := s.storage.Write(ctx, txKey(id), buf.Bytes(), nil); err != nil {
		return errors.Wrap(err, "write")
	}

	return nil
}

// Load reads the transaction stored under id. ErrNotFound is returned when no
// transaction was saved under that id.
func (s *Store) Load(ctx context.Context, id wire.TxId) (*wire.MsgTx, error) {
	b, err := s.storage.Read(ctx, txKey(id))
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}

	tx := &wire.MsgTx{}
	if err := tx.Deserialize(bytes.NewReader(b)); err != nil {
		return nil, errors.Wrap(err, "deserialize")
	}

	return tx, nil
}

// Remove deletes the transaction stored under id.
func (s *Store) Remove(ctx context.Context, id wire.TxId) error {
	return s.storage.Remove(ctx, txKey(id))
}

// ListIds returns the ids of all stored transactions.
func (s *Store) ListIds(ctx context.Context) ([]wire.TxId, error) {
	// The prefix is passed without a trailing slash. Backends that build
	// keys by joining path and name add the slash themselves, so a slash
	// here would double up and corrupt the keys.
	keys, err := s.storage.List(ctx, txKeyPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "list")
	}

	result := make([]wire.TxId, 0, len(keys))
	for _, key := range keys {
		id, err := wire.NewTxIdFromStr(strings.TrimPrefix(key, txKeyPrefix+"/"))
		if err != nil {
			return nil, errors.Wrapf(err, "key: %s", key)
		}

		result = append(result, *id)
	}

	return result, nil
}

func txKey(id wire.TxId) string {
	return txKeyPrefix + "/" + id.String()
}
