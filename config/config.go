package config

type (
	Reader struct {
		// ChunkSize is the granularity the reader refills its buffer with. It also limits
		// the maximal delimiter length and the maximal lookahead available via Peek.
		ChunkSize int
		// MaxJoinChunks limits how many chunks a single ReadUntil result may span before
		// the reader stops collecting per-chunk fragments and streams them into a single
		// growing sink instead.
		MaxJoinChunks int
	}

	Body struct {
		// MaxSize is the maximal body length. Bodies with Content-Length exceeding it are
		// rejected right away, chunked bodies fail as soon as they cross it.
		MaxSize int64
	}

	Multipart struct {
		// MaxPartCount limits the number of parts in a single form. 0 disables the limit.
		MaxPartCount int
		// MaxPartBufferSize is the maximal number of bytes Part.Data() is allowed to buffer.
		// Bigger parts must be consumed via the part's reader directly.
		MaxPartBufferSize int
		// MaxHeadersSize limits the size of a single part's headers block.
		MaxHeadersSize int
		// DefaultCharset is used for text parts not specifying one explicitly.
		DefaultCharset string
		// DefaultContentType is assumed for parts without a Content-Type header, as RFC 7578
		// section 4.4 says.
		DefaultContentType string
	}
)

// Config holds limits and pre-allocation hints used across the reader, the body layer and
// the multipart parser.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Reader    Reader
	Body      Body
	Multipart Multipart
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Reader: Reader{
			ChunkSize:     32 * 1024, // 32kb
			MaxJoinChunks: 128,
		},
		Body: Body{
			MaxSize: 512 * 1024 * 1024, // 512 megabytes
		},
		Multipart: Multipart{
			MaxPartCount:       64,
			MaxPartBufferSize:  1024 * 1024, // 1mb
			MaxHeadersSize:     8 * 1024,
			DefaultCharset:     "utf-8",
			DefaultContentType: "text/plain",
		},
	}
}
