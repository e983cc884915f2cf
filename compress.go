package picture

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

func compressBody(body []byte, level zstd.EncoderLevel) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("picture: zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(body, make([]byte, 0, len(body)/2)), nil
}

// decompressBody inflates data, refusing output larger than maxSize.
func decompressBody(data []byte, maxSize int64) ([]byte, error) {
	// #nosec G115 -- maxSize is positive, enforced by WithMaxSize
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(maxSize)))
	if err != nil {
		return nil, fmt.Errorf("picture: zstd decoder: %w", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	switch {
	case errors.Is(err, zstd.ErrDecoderSizeExceeded), errors.Is(err, zstd.ErrWindowSizeExceeded):
		return nil, ErrTooLarge
	case err != nil:
		return nil, fmt.Errorf("%w: zstd: %w", ErrMalformed, err)
	case int64(len(out)) > maxSize:
		return nil, ErrTooLarge
	}
	return out, nil
}
