package txstore

import (
	"context"

	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound should be returned if the transaction was not found.
	ErrNotFound = errors.New("Not found")
)

// Storage is the interface for the backends that hold raw transaction bytes.
type Storage interface {
	Reader
	Writer
	Remover
	Lister
}

// Reader interface is for retrieving items from the store.
type Reader interface {
	Read(context.Context, string) ([]byte, error)
}

// Writer interface is for adding or updating an item in the store.
type Writer interface {
	Write(ctx context.Context, key string, body []byte, options *Options) error
}

// Remover interface is for removing an item from the store.
type Remover interface {
	Remove(context.Context, string) error
}

// Lister interface is for listing the keys under a path prefix.
type Lister interface {
	List(ctx context.Context, path string) ([]string, error)
}

// NewStorage returns a storage backend for the config. The "standalone"
// bucket selects the local filesystem, "mock" an in memory store, "redis" a
// redis server at the address in Root, and any other bucket name S3.
func NewStorage(config Config) (Storage, error) {
	switch config.Bucket {
	case "standalone":
		return NewFilesystemStorage(config), nil
	case "mock":
		return NewMockStorage(), nil
	case "redis":
		conn, err := redis.Dial("tcp", config.Root)
		if err != nil {
			return nil, errors.Wrapf(err, "redis dial: %s", config.Root)
		}
		return NewRedisStorage(conn), nil
	default:
		return NewS3Storage(config), nil
	}
}
