package txstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
)

var (
	// ErrUnknownPayload is returned if an unexpected payload is returned by the store.
	ErrUnknownPayload = errors.New("Unknown payload")
)

// RedisStorage implements a Storage backed by Redis.
type RedisStorage struct {
	Conn redis.Conn
}

// NewRedisStorage returns a new RedisStorage.
func NewRedisStorage(conn redis.Conn) *RedisStorage {
	return &RedisStorage{
		Conn: conn,
	}
}

// Read implements the Reader interface.
func (r *RedisStorage) Read(ctx context.Context, key string) ([]byte, error) {
	resp, err := r.Conn.Do("GET", key)
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, ErrNotFound
	}

	b, ok := resp.([]byte)
	if !ok {
		return nil, ErrUnknownPayload
	}

	return b, nil
}

// Write implements the Writer interface.
func (r *RedisStorage) Write(ctx context.Context, key string, b []byte, opts *Options) error {
	if _, err := r.Conn.Do("SET", key, b); err != nil {
		return err
	}

	return r.Conn.Flush()
}

// Remove implements the Remover interface.
func (r *RedisStorage) Remove(ctx context.Context, key string) error {
	if _, err := r.Conn.Do("DEL", key); err != nil {
		return err
	}

	return r.Conn.Flush()
}

// List implements the Lister interface.
func (r *RedisStorage) List(ctx context.Context, path string) ([]string, error) {
	k := fmt.Sprintf("%s*", path)

	resp, err := r.Conn.Do("KEYS", k)
	if err != nil {
		return nil, err
	}

	data, ok := resp.([]interface{})
	if !ok {
		return nil, ErrUnknownPayload
	}

	keys := make([]string, len(data))

	for i := range data {
		keys[i] = fmt.Sprintf("%s", data[i])
	}

	// sort the keys
	sort.Strings(keys)

	return keys, nil
}
