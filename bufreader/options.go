package bufreader

import "github.com/indigo-web/bufreader/config"

const (
	// DefaultChunkSize is the refill granularity used unless overridden.
	DefaultChunkSize = 32 * 1024
	// DefaultMaxJoinChunks is the number of chunks a single ReadUntil result may span
	// before switching to the streaming strategy.
	DefaultMaxJoinChunks = 128
)

type Option func(*Reader)

// WithChunkSize overrides the refill granularity. Non-positive values keep the default.
func WithChunkSize(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.chunkSize = n
		}
	}
}

// WithMaxJoinChunks overrides the number of chunks a ReadUntil result may span before
// the memory-conserving strategy kicks in. Non-positive values keep the default.
func WithMaxJoinChunks(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.maxJoinChunks = n
		}
	}
}

// WithSearcher replaces the substring search backend.
func WithSearcher(s Searcher) Option {
	return func(r *Reader) {
		if s != nil {
			r.searcher = s
		}
	}
}

// NewFromConfig is a shorthand for New with options taken from the config.
func NewFromConfig(pull Pull, maxLen int64, cfg config.Reader) *Reader {
	return New(pull, maxLen, WithChunkSize(cfg.ChunkSize), WithMaxJoinChunks(cfg.MaxJoinChunks))
}
