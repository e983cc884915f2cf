package picture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
)

// Stream layout, all integers little-endian:
//
//	magic    [4]byte  "GGPC"
//	version  uint16
//	flags    uint16   bit 0: body is zstd-compressed
//	width    uint32
//	height   uint32
//	commands uint32
//	bodyLen  uint32   stored body length
//	body     [bodyLen]byte
//	crc      uint32   CRC-32 (IEEE) of the uncompressed body
//
// The body holds the resource table followed by the command records.
const (
	// FormatVersion is the stream version written by EncodeRecording.
	FormatVersion uint16 = 1

	headerSize = 20
	flagZstd   = 1 << 0
)

var magic = [4]byte{'G', 'G', 'P', 'C'}

// Header is the fixed-size prefix of an encoded picture.
type Header struct {
	Version    uint16
	Compressed bool
	Width      int
	Height     int
	Commands   int
	BodySize   int
}

// EncodeRecording writes rec to w and returns the number of bytes written.
// The recording is validated first: a reference past the end of its
// resource table or nesting deeper than DefaultMaxDepth fails with
// ErrMalformed and nothing is written.
func EncodeRecording(w io.Writer, rec *Recording, opts ...EncodeOption) (int64, error) {
	if rec == nil {
		return 0, errors.New("picture: encode: nil recording")
	}
	o := defaultEncodeOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var e encoder
	if err := e.recording(rec, 0, false); err != nil {
		return 0, fmt.Errorf("picture: encode: %w", err)
	}
	body := e.buf
	sum := crc32.ChecksumIEEE(body)

	var flags uint16
	if o.compression == CompressionZstd {
		z, err := compressBody(body, o.level)
		if err != nil {
			return 0, err
		}
		body = z
		flags |= flagZstd
	}
	if uint64(len(body)) > math.MaxUint32 {
		return 0, fmt.Errorf("picture: encode: %w", ErrTooLarge)
	}

	hdr := make([]byte, 0, headerSize+4)
	hdr = append(hdr, magic[:]...)
	hdr = binary.LittleEndian.AppendUint16(hdr, FormatVersion)
	hdr = binary.LittleEndian.AppendUint16(hdr, flags)
	// #nosec G115 -- bounds and counts are checked by e.recording
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(rec.width))
	// #nosec G115
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(rec.height))
	// #nosec G115
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(len(rec.commands)))
	// #nosec G115 -- checked above
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(len(body)))

	var n int64
	for _, chunk := range [][]byte{hdr, body, binary.LittleEndian.AppendUint32(nil, sum)} {
		m, err := w.Write(chunk)
		n += int64(m)
		if err != nil {
			return n, fmt.Errorf("picture: encode: %w", err)
		}
	}
	Logger().Debug("picture: encoded",
		"commands", len(rec.commands), "body", len(e.buf), "stored", len(body), "bytes", n)
	return n, nil
}

// DecodeRecording reads one encoded recording from r. The stream is read
// and validated completely before anything is returned; on any error the
// result is nil and the error is a *DecodeError, or an I/O error from r.
func DecodeRecording(r io.Reader, opts ...DecodeOption) (*Recording, error) {
	o := defaultDecodeOptions()
	for _, opt := range opts {
		opt(&o)
	}

	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if int64(h.BodySize) > o.maxSize {
		return nil, &DecodeError{Offset: headerSize, Op: "header", Err: ErrTooLarge}
	}

	// The buffer grows with the bytes actually read, so a header that
	// claims a large body costs nothing unless the body is really there.
	raw, err := io.ReadAll(io.LimitReader(r, int64(h.BodySize)+4))
	if err != nil {
		return nil, readError(int64(headerSize+4+len(raw)), "body", err)
	}
	if len(raw) < h.BodySize+4 {
		return nil, &DecodeError{Offset: int64(headerSize + 4 + len(raw)), Op: "body", Err: ErrTruncated}
	}
	body, stored := raw[:h.BodySize], raw[h.BodySize:]
	if h.Compressed {
		body, err = decompressBody(body, o.maxSize)
		if err != nil {
			return nil, &DecodeError{Offset: headerSize + 4, Op: "body", Err: err}
		}
	}
	if crc32.ChecksumIEEE(body) != binary.LittleEndian.Uint32(stored) {
		return nil, &DecodeError{Offset: int64(headerSize + 4 + h.BodySize), Op: "checksum", Err: ErrChecksum}
	}

	d := decoder{buf: body, maxDepth: o.maxDepth}
	rec := d.recording(h.Width, h.Height, h.Commands, 0)
	if d.err == nil && d.off != len(d.buf) {
		d.fail("body", ErrMalformed)
	}
	if d.err != nil {
		return nil, d.err
	}
	Logger().Debug("picture: decoded",
		"width", h.Width, "height", h.Height, "commands", h.Commands, "body", len(body))
	return rec, nil
}

// ReadHeader reads and validates the fixed-size prefix of an encoded
// picture without reading the body.
func ReadHeader(r io.Reader) (Header, error) {
	return readHeader(r)
}

func readHeader(r io.Reader) (Header, error) {
	var b [headerSize + 4]byte
	if n, err := io.ReadFull(r, b[:]); err != nil {
		return Header{}, readError(int64(n), "header", err)
	}
	if !bytes.Equal(b[:4], magic[:]) {
		return Header{}, &DecodeError{Offset: 0, Op: "header", Err: ErrBadMagic}
	}
	h := Header{Version: binary.LittleEndian.Uint16(b[4:])}
	if h.Version != FormatVersion {
		return Header{}, &DecodeError{Offset: 4, Op: "header",
			Err: fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)}
	}
	flags := binary.LittleEndian.Uint16(b[6:])
	if flags&^flagZstd != 0 {
		return Header{}, &DecodeError{Offset: 6, Op: "header",
			Err: fmt.Errorf("%w: unknown flags %#x", ErrMalformed, flags)}
	}
	h.Compressed = flags&flagZstd != 0
	h.Width = int(binary.LittleEndian.Uint32(b[8:]))
	h.Height = int(binary.LittleEndian.Uint32(b[12:]))
	h.Commands = int(binary.LittleEndian.Uint32(b[16:]))
	h.BodySize = int(binary.LittleEndian.Uint32(b[20:]))
	return h, nil
}

// readError turns a short read into ErrTruncated and passes other I/O
// errors through.
func readError(off int64, op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &DecodeError{Offset: off, Op: op, Err: ErrTruncated}
	}
	return fmt.Errorf("picture: read %s: %w", op, err)
}

// --------------------------------------------------------------------------
// Primitives
// --------------------------------------------------------------------------

type encoder struct {
	buf []byte
}

func (e *encoder) byte(b uint8)     { e.buf = append(e.buf, b) }
func (e *encoder) uvarint(v uint64) { e.buf = binary.AppendUvarint(e.buf, v) }
func (e *encoder) ref(v uint32)     { e.uvarint(uint64(v)) }
func (e *encoder) float(f float64)  { e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(f)) }

func (e *encoder) int(v int) {
	// #nosec G115 -- negative values are clamped
	e.uvarint(uint64(max(v, 0)))
}

func (e *encoder) string(s string) {
	e.int(len(s))
	e.buf = append(e.buf, s...)
}

func (e *encoder) floats(fs []float64) {
	e.int(len(fs))
	for _, f := range fs {
		e.float(f)
	}
}

// decoder reads the body. The first failure is kept in err and turns every
// later read into a no-op returning zero values.
type decoder struct {
	buf      []byte
	off      int
	maxDepth int
	op       string
	err      error
}

func (d *decoder) fail(op string, err error) {
	if d.err == nil {
		d.err = &DecodeError{Offset: int64(d.off), Op: op, Err: err}
	}
}

func (d *decoder) failf(format string, args ...any) {
	d.fail(d.op, fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, args...)...))
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || n > len(d.buf)-d.off {
		d.fail(d.op, ErrTruncated)
		return nil
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) byte() uint8 {
	b := d.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *decoder) uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.buf[d.off:])
	switch {
	case n == 0:
		d.fail(d.op, ErrTruncated)
		return 0
	case n < 0:
		d.failf("varint overflow")
		return 0
	}
	d.off += n
	return v
}

// count reads a length whose elements each take at least unit bytes, so a
// corrupt length cannot force a large allocation.
func (d *decoder) count(unit int) int {
	v := d.uvarint()
	if d.err != nil {
		return 0
	}
	if v > uint64(len(d.buf)-d.off)/uint64(max(unit, 1)) {
		d.fail(d.op, ErrTruncated)
		return 0
	}
	return int(v)
}

func (d *decoder) ref() uint32 {
	v := d.uvarint()
	if v > math.MaxUint32 {
		d.failf("reference %d out of range", v)
		return 0
	}
	return uint32(v)
}

func (d *decoder) float() float64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func (d *decoder) string() string {
	return string(d.take(d.count(1)))
}

func (d *decoder) floats() []float64 {
	n := d.count(8)
	if n == 0 {
		return nil
	}
	fs := make([]float64, n)
	for i := range fs {
		fs[i] = d.float()
	}
	return fs
}

// enum reads a byte and checks it is at most limit.
func (d *decoder) enum(name string, limit uint8) uint8 {
	v := d.byte()
	if v > limit {
		d.failf("%s %d out of range", name, v)
		return 0
	}
	return v
}
