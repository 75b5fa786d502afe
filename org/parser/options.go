package parser

import "runtime"

const DefaultMaxDepth = 512

type Option func(*config)

type config struct {
	file     string
	maxDepth int
	workers  int
}

func newConfig(opts []Option) config {
	c := config{
		maxDepth: DefaultMaxDepth,
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.maxDepth <= 0 {
		c.maxDepth = DefaultMaxDepth
	}
	if c.workers <= 0 {
		c.workers = 1
	}
	return c
}

// WithFile names the input in error messages.
func WithFile(path string) Option {
	return func(c *config) {
		c.file = path
	}
}

// WithMaxDepth bounds how deeply elements and objects may nest. Inputs that
// nest deeper fail with ErrNestingLimit.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithWorkers bounds the number of documents ParseMany parses at once.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}
