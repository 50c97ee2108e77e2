package txstore

import "os"

// Options for writing raw transactions. Not all backends support all
// options.
//
// For example, the filesystem backend uses the file modes but has no TTL,
// while S3 honors the TTL as an object expiry.
type Options struct {
	TTL     int64
	Mode    os.FileMode
	DirMode os.FileMode
}

// NewOptions returns an Options struct with sane defaults set.
//
// TTL with zero value means never expire.
func NewOptions() Options {
	return Options{
		TTL:     0,
		Mode:    0644,
		DirMode: 0755,
	}
}
