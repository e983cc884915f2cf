package picture

import (
	"errors"
	"fmt"
)

// Sentinel errors. Decode failures are reported as *DecodeError values that
// unwrap to one of the format errors below.
var (
	// ErrInvalidState is the panic value (wrapped) for lifecycle misuse such
	// as drawing an Empty picture or beginning a recording twice.
	ErrInvalidState = errors.New("picture: invalid state")

	// ErrClosed is the panic value (wrapped) for any use of a closed Picture.
	ErrClosed = errors.New("picture: closed")

	// ErrStreamUnavailable reports that a Sink or Source could not be opened.
	ErrStreamUnavailable = errors.New("picture: stream unavailable")

	ErrBadMagic           = errors.New("picture: bad magic")
	ErrUnsupportedVersion = errors.New("picture: unsupported version")
	ErrTruncated          = errors.New("picture: truncated stream")
	ErrMalformed          = errors.New("picture: malformed record")
	ErrChecksum           = errors.New("picture: checksum mismatch")
	ErrTooLarge           = errors.New("picture: stream exceeds size limit")
)

// DecodeError describes where decoding stopped.
type DecodeError struct {
	// Offset is the byte offset into the header or the uncompressed body.
	Offset int64
	// Op names the record being decoded when the failure happened.
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("picture: decode %s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// invalidState panics with an error wrapping ErrInvalidState.
func invalidState(op string, s State) {
	panic(fmt.Errorf("%w: %s called in state %s", ErrInvalidState, op, s))
}
