// Package stream opens log files for the codec. Input is decompressed
// transparently when it starts with a gzip or zstd frame; output is
// compressed on request or by file extension. The path "-" stands for
// stdin or stdout.
package stream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// StdPath selects stdin or stdout.
const StdPath = "-"

// Compression names an output codec.
type Compression string

// Supported codecs.
const (
	CompressionAuto Compression = "auto"
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// ParseCompression validates a codec name. The empty name is auto.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CompressionAuto, nil
	case CompressionAuto, CompressionNone, CompressionGzip, CompressionZstd:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCompression, s)
}

// ForPath resolves CompressionAuto from the extension of path.
func ForPath(path string, c Compression) Compression {
	if c != CompressionAuto {
		return c
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	}
	return CompressionNone
}

// Detect reports the codec of the data at the head of r without consuming
// it.
func Detect(r *bufio.Reader) Compression {
	head, _ := r.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip
	}
	return CompressionNone
}

// Open opens path for reading, decompressing when needed.
func Open(path string) (io.ReadCloser, error) {
	if path == StdPath {
		return NewReader(io.NopCloser(os.Stdin))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	rc, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return rc, nil
}

// NewReader wraps rc with the decompressor its content needs. Closing the
// result closes rc.
func NewReader(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(rc, defaultBufferSize)
	switch Detect(br) {
	case CompressionGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &readCloser{Reader: gz, closers: []io.Closer{gz, rc}}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		zc := zr.IOReadCloser()
		return &readCloser{Reader: zc, closers: []io.Closer{zc, rc}}, nil
	}
	return &readCloser{Reader: br, closers: []io.Closer{rc}}, nil
}

// Create creates path for writing with the configured codec.
func Create(path string, opts ...Option) (io.WriteCloser, error) {
	cfg := newWriterConfig(opts)
	cfg.compression = ForPath(path, cfg.compression)

	var dst io.WriteCloser
	if path == StdPath {
		dst = nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
		dst = f
	}

	wc, err := newWriter(dst, cfg)
	if err != nil {
		_ = dst.Close()
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return wc, nil
}

// SameFile reports whether a and b name the same existing file. Stdio and
// paths that cannot be stat'ed never match.
func SameFile(a, b string) bool {
	if a == StdPath || b == StdPath {
		return false
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// Pending is an output that appears at its path only once committed. It
// writes to a hidden temp file in the same directory and renames it over
// the target on Commit. Stdout has no temp file; both calls just close it.
type Pending struct {
	io.Writer
	wc   io.WriteCloser
	path string
	tmp  string
}

// CreatePending opens a pending output for path with the configured codec.
// An existing file at path is untouched until Commit.
func CreatePending(path string, opts ...Option) (*Pending, error) {
	if path == StdPath {
		wc, err := Create(path, opts...)
		if err != nil {
			return nil, err
		}
		return &Pending{Writer: wc, wc: wc, path: path}, nil
	}

	cfg := newWriterConfig(opts)
	cfg.compression = ForPath(path, cfg.compression)

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	wc, err := newWriter(f, cfg)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &Pending{Writer: wc, wc: wc, path: path, tmp: f.Name()}, nil
}

// Commit flushes the output and moves it into place.
func (p *Pending) Commit() error {
	if err := p.wc.Close(); err != nil {
		p.remove()
		return fmt.Errorf("write %s: %w", p.path, err)
	}
	if p.tmp == "" {
		return nil
	}
	if err := os.Rename(p.tmp, p.path); err != nil {
		p.remove()
		return fmt.Errorf("rename %s: %w", p.path, err)
	}
	return nil
}

// Discard drops everything written so far.
func (p *Pending) Discard() error {
	err := p.wc.Close()
	p.remove()
	return err
}

func (p *Pending) remove() {
	if p.tmp != "" {
		_ = os.Remove(p.tmp)
	}
}

// NewWriter wraps wc with a buffered encoder. CompressionAuto means none.
// Closing the result flushes everything and closes wc.
func NewWriter(wc io.WriteCloser, opts ...Option) (io.WriteCloser, error) {
	cfg := newWriterConfig(opts)
	if cfg.compression == CompressionAuto {
		cfg.compression = CompressionNone
	}
	return newWriter(wc, cfg)
}

func newWriterConfig(opts []Option) writerConfig {
	cfg := writerConfig{
		compression: CompressionAuto,
		level:       DefaultLevel,
		bufferSize:  defaultBufferSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func newWriter(dst io.WriteCloser, cfg writerConfig) (io.WriteCloser, error) {
	w := &writeCloser{}
	switch cfg.compression {
	case CompressionNone:
		w.Writer = bufio.NewWriterSize(dst, cfg.bufferSize)
		w.closers = []io.Closer{dst}
	case CompressionGzip:
		level := gzip.DefaultCompression
		if cfg.level != DefaultLevel {
			level = cfg.level
		}
		gz, err := gzip.NewWriterLevel(dst, level)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		w.Writer = bufio.NewWriterSize(gz, cfg.bufferSize)
		w.closers = []io.Closer{gz, dst}
	case CompressionZstd:
		var zopts []zstd.EOption
		if cfg.level != DefaultLevel {
			zopts = append(zopts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(cfg.level)))
		}
		zw, err := zstd.NewWriter(dst, zopts...)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		w.Writer = bufio.NewWriterSize(zw, cfg.bufferSize)
		w.closers = []io.Closer{zw, dst}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, string(cfg.compression))
	}
	return w, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// writeCloser flushes its buffer and closes the encoder before the
// destination.
type writeCloser struct {
	*bufio.Writer
	closers []io.Closer
}

func (w *writeCloser) Close() error {
	errs := []error{w.Flush()}
	for _, c := range w.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// CountingWriter counts the bytes written through it.
type CountingWriter struct {
	W io.Writer
	N int64
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.W.Write(p)
	c.N += int64(n)
	return n, err
}

// CountingReader counts the bytes read through it.
type CountingReader struct {
	R io.Reader
	N int64
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += int64(n)
	return n, err
}
