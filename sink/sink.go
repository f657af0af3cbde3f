// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package sink provides output destinations for VCD writers: plain or
// compressed files and streams.
//
package sink

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Compression selects an output compression algorithm.
//
type Compression int

// Supported compressions.
//
const (
	Auto Compression = iota // from the file extension; None for streams
	None
	Gzip
	Zstd
	LZ4
)

var compressionNames = [...]string{"auto", "none", "gzip", "zstd", "lz4"}

func (c Compression) String() string {
	if c < 0 || int(c) >= len(compressionNames) {
		return "unknown"
	}
	return compressionNames[c]
}

// ParseCompression returns the compression named s. The empty string is Auto.
//
func ParseCompression(s string) (Compression, error) {
	if s == "" {
		return Auto, nil
	}
	for i, n := range compressionNames {
		if strings.EqualFold(s, n) {
			return Compression(i), nil
		}
	}
	switch strings.ToLower(s) {
	case "gz":
		return Gzip, nil
	case "zst":
		return Zstd, nil
	}
	return Auto, errors.Errorf("unknown compression %q", s)
}

// FromPath returns the compression matching the extension of path.
//
func FromPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	case ".lz4":
		return LZ4
	}
	return None
}

// encoder is implemented by the compressing writers.
type encoder interface {
	io.Writer
	Flush() error
	Close() error
}

// A Writer writes to a destination, compressing the data as needed. Its
// Flush method pushes compressed data down to the destination.
//
type Writer struct {
	w      io.Writer
	enc    encoder   // nil if not compressed
	file   *os.File  // owned file, nil for streams
	closer io.Closer // closed after enc when owned
	closed bool
}

var _ io.WriteCloser = (*Writer)(nil)

func newEncoder(dst io.Writer, c Compression) (encoder, error) {
	switch c {
	case Auto, None:
		return nil, nil
	case Gzip:
		return gzip.NewWriter(dst), nil
	case Zstd:
		enc, err := zstd.NewWriter(dst)
		if err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(dst), nil
	}
	return nil, errors.Errorf("unsupported compression %s", c)
}

// NewWriter returns a Writer that compresses to dst. Closing the Writer ends
// the compressed stream but does not close dst.
//
func NewWriter(dst io.Writer, c Compression) (*Writer, error) {
	enc, err := newEncoder(dst, c)
	if err != nil {
		return nil, err
	}
	w := &Writer{w: dst, enc: enc}
	if enc != nil {
		w.w = enc
	}
	return w, nil
}

// Create creates or truncates the named file. With Auto, the compression is
// picked from the file extension.
//
func Create(path string, c Compression) (*Writer, error) {
	if c == Auto {
		c = FromPath(path)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create output")
	}
	w, err := NewWriter(f, c)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.file = f
	w.closer = f
	return w, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, os.ErrClosed
	}
	return w.w.Write(p)
}

// Flush flushes the compressor and commits an owned file to stable storage.
//
func (w *Writer) Flush() error {
	if w.closed {
		return os.ErrClosed
	}
	if w.enc != nil {
		if err := w.enc.Flush(); err != nil {
			return errors.Wrap(err, "flush "+w.name())
		}
	}
	if w.file != nil {
		if err := w.file.Sync(); err != nil {
			return errors.Wrap(err, "sync "+w.name())
		}
	}
	return nil
}

// Close ends the compressed stream and closes an owned file. It returns the
// first error encountered. Subsequent calls do nothing.
//
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	var err error
	if w.enc != nil {
		if cerr := w.enc.Close(); cerr != nil {
			err = errors.Wrap(cerr, "close "+w.name())
		}
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close "+w.name())
		}
	}
	return err
}

func (w *Writer) name() string {
	if w.file != nil {
		return w.file.Name()
	}
	return "stream"
}
