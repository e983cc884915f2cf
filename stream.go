package picture

import (
	"bytes"
	"io"
	"os"
)

// Sink opens the stream a picture is serialized into.
type Sink interface {
	OpenWriter() (io.WriteCloser, error)
}

// Source opens the stream a picture is deserialized from.
type Source interface {
	OpenReader() (io.ReadCloser, error)
}

type writerSink struct{ w io.Writer }

// WriterSink adapts w. Closing the opened stream does not close w. A nil
// writer makes OpenWriter fail.
func WriterSink(w io.Writer) Sink {
	return writerSink{w: w}
}

func (s writerSink) OpenWriter() (io.WriteCloser, error) {
	if s.w == nil {
		return nil, ErrStreamUnavailable
	}
	return nopWriteCloser{s.w}, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type readerSource struct{ r io.Reader }

// ReaderSource adapts r. Closing the opened stream does not close r. A nil
// reader makes OpenReader fail.
func ReaderSource(r io.Reader) Source {
	return readerSource{r: r}
}

func (s readerSource) OpenReader() (io.ReadCloser, error) {
	if s.r == nil {
		return nil, ErrStreamUnavailable
	}
	return io.NopCloser(s.r), nil
}

// BytesSource reads from b.
func BytesSource(b []byte) Source {
	return readerSource{r: bytes.NewReader(b)}
}

type fileSink string

// FileSink creates or truncates the file at path when opened.
func FileSink(path string) Sink {
	return fileSink(path)
}

func (p fileSink) OpenWriter() (io.WriteCloser, error) {
	// #nosec G304 -- path is provided by the caller
	return os.Create(string(p))
}

type fileSource string

// FileSource opens the file at path for reading.
func FileSource(path string) Source {
	return fileSource(path)
}

func (p fileSource) OpenReader() (io.ReadCloser, error) {
	// #nosec G304 -- path is provided by the caller
	return os.Open(string(p))
}
