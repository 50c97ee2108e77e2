package txstore

import "fmt"

const (
	// DefaultMaxRetries is the number of retries for a transaction write
	// before giving up.
	DefaultMaxRetries = 4

	// DefaultRetryDelay is the number of milliseconds to wait before attempting a retry after a
	//   failure.
	DefaultRetryDelay = 5000
)

// Config holds all configuration for a transaction store backend.
//
// The Bucket selects the backend as well as naming it. Special bucket names
// select local backends, anything else is treated as an S3 bucket. For the
// redis backend Root is the server address instead of a path.
type Config struct {
	Bucket     string
	Root       string
	MaxRetries int
	RetryDelay int // Milliseconds between retries
}

// NewConfig returns a new Config with the default retry behavior.
func NewConfig(bucket, root string) Config {
	return Config{
		Bucket:     bucket,
		Root:       root,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

func (c *Config) SetupRetry(max, delay int) {
	c.MaxRetries = max
	c.RetryDelay = delay
}

func (c Config) String() string {
	root := ""
	if len(c.Root) > 0 {
		root = fmt.Sprintf("Root:%s", c.Root)
	}

	return fmt.Sprintf("{Bucket:%v %s MaxRetries:%v RetryDelay:%v ms}",
		c.Bucket,
		root,
		c.MaxRetries,
		c.RetryDelay)
}
