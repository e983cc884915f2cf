package picture

import "github.com/klauspost/compress/zstd"

// Compression selects how the stream body is stored.
type Compression uint8

const (
	// CompressionNone stores the body as-is.
	CompressionNone Compression = iota
	// CompressionZstd compresses the body with Zstandard.
	CompressionZstd
)

// EncodeOption configures EncodeRecording and Picture.Serialize.
//
// Example:
//
//	err := pic.Serialize(picture.FileSink("out.ggpc"),
//		picture.WithCompression(picture.CompressionZstd))
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	compression Compression
	level       zstd.EncoderLevel
}

func defaultEncodeOptions() encodeOptions {
	return encodeOptions{
		compression: CompressionNone,
		level:       zstd.SpeedDefault,
	}
}

// WithCompression sets the body compression.
func WithCompression(c Compression) EncodeOption {
	return func(o *encodeOptions) {
		o.compression = c
	}
}

// WithCompressionLevel sets the zstd level, from 1 (fastest) to 4 (best).
// It has no effect without CompressionZstd.
func WithCompressionLevel(level int) EncodeOption {
	return func(o *encodeOptions) {
		o.level = zstd.EncoderLevelFromZstd(zstdLevel(level))
	}
}

// zstdLevel maps 1..4 onto the zstd levels klauspost/compress exposes.
func zstdLevel(level int) int {
	switch {
	case level <= 1:
		return 1
	case level == 2:
		return 3
	case level == 3:
		return 7
	default:
		return 11
	}
}

// DecodeOption configures DecodeRecording and Deserialize.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	maxSize  int64
	maxDepth int
}

const (
	// DefaultMaxSize limits the uncompressed body read by the decoder.
	DefaultMaxSize int64 = 256 << 20
	// DefaultMaxDepth limits how deeply pictures may nest.
	DefaultMaxDepth = 16
)

func defaultDecodeOptions() decodeOptions {
	return decodeOptions{
		maxSize:  DefaultMaxSize,
		maxDepth: DefaultMaxDepth,
	}
}

// WithMaxSize limits the body size in bytes, before and after
// decompression. Streams above the limit fail with ErrTooLarge.
func WithMaxSize(n int64) DecodeOption {
	return func(o *decodeOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// WithMaxDepth limits picture nesting. Deeper streams fail with
// ErrMalformed.
func WithMaxDepth(depth int) DecodeOption {
	return func(o *decodeOptions) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}
