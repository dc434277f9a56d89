package stream

// Option applies a configuration option to Create and NewWriter.
type Option func(*writerConfig)

type writerConfig struct {
	compression Compression
	level       int
	bufferSize  int
}

const (
	defaultBufferSize = 64 * 1024
	// DefaultLevel selects the codec's default compression level.
	DefaultLevel = 0
)

// WithCompression sets the output codec. CompressionAuto picks it from the
// file extension.
func WithCompression(c Compression) Option {
	return func(wc *writerConfig) {
		if c != "" {
			wc.compression = c
		}
	}
}

// WithLevel sets the codec level: 1-9 for gzip, 1-22 for zstd (mapped to
// the nearest encoder level). DefaultLevel keeps the codec default.
func WithLevel(level int) Option {
	return func(wc *writerConfig) {
		wc.level = level
	}
}

// WithBufferSize sets the write buffer size.
func WithBufferSize(size int) Option {
	return func(wc *writerConfig) {
		if size > 0 {
			wc.bufferSize = size
		}
	}
}
