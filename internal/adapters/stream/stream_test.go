package stream

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestParseCompression(t *testing.T) {
	if c, err := ParseCompression(" GZip "); err != nil || c != CompressionGzip {
		t.Errorf("expected gzip, got %q, %v", c, err)
	}
	if c, err := ParseCompression(""); err != nil || c != CompressionAuto {
		t.Errorf("expected auto for empty name, got %q, %v", c, err)
	}
	if _, err := ParseCompression("lz4"); !errors.Is(err, ErrUnknownCompression) {
		t.Errorf("expected ErrUnknownCompression, got %v", err)
	}
}

func TestForPath(t *testing.T) {
	cases := []struct {
		path string
		in   Compression
		want Compression
	}{
		{"a.rcg.gz", CompressionAuto, CompressionGzip},
		{"a.rcg.zst", CompressionAuto, CompressionZstd},
		{"a.rcg", CompressionAuto, CompressionNone},
		{"a.rcg.gz", CompressionNone, CompressionNone},
	}
	for _, tc := range cases {
		if got := ForPath(tc.path, tc.in); got != tc.want {
			t.Errorf("ForPath(%q, %q) = %q, want %q", tc.path, tc.in, got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("(show 1 ((b) 0 0))\n"), 100)

	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionZstd} {
		t.Run(string(c), func(t *testing.T) {
			dst := &closeRecorder{}
			w, err := NewWriter(dst, WithCompression(c), WithBufferSize(128))
			if err != nil {
				t.Fatalf("NewWriter: %v", err)
			}
			if _, err := w.Write(payload); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
			if !dst.closed {
				t.Error("expected destination to be closed")
			}

			if got := Detect(bufio.NewReader(bytes.NewReader(dst.Bytes()))); got != c {
				t.Errorf("detected %q, want %q", got, c)
			}

			r, err := NewReader(io.NopCloser(bytes.NewReader(dst.Bytes())))
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if err := r.Close(); err != nil {
				t.Errorf("close reader: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("payload mismatch: got %d bytes, want %d", len(got), len(payload))
			}
		})
	}
}

func TestFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.rcg.gz")

	w, err := Create(path, WithLevel(9))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := io.WriteString(w, "ULG5\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !bytes.HasPrefix(raw, gzipMagic) {
		t.Errorf("expected gzip magic, got % x", raw[:min(len(raw), 4)])
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "ULG5\n" {
		t.Errorf("got %q", got)
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.rcg")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestPending(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.rcg")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := CreatePending(path)
	if err != nil {
		t.Fatalf("CreatePending: %v", err)
	}
	if _, err := io.WriteString(p, "partial"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := p.Discard(); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "old" {
		t.Errorf("discard touched the target: %q", got)
	}

	p, err = CreatePending(path)
	if err != nil {
		t.Fatalf("CreatePending: %v", err)
	}
	if _, err := io.WriteString(p, "ULG5\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "old" {
		t.Errorf("target replaced before commit: %q", got)
	}
	if err := p.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "ULG5\n" {
		t.Errorf("got %q after commit", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestSameFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.rcg")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	alias := filepath.Join(dir, ".", "a.rcg")

	if !SameFile(path, alias) {
		t.Errorf("%s and %s should match", path, alias)
	}
	if SameFile(path, filepath.Join(dir, "b.rcg")) {
		t.Error("missing file should not match")
	}
	if SameFile(StdPath, StdPath) {
		t.Error("stdio should not match")
	}
}

func TestCountingWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := &CountingWriter{W: &buf}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("de"))
	if cw.N != 5 || buf.String() != "abcde" {
		t.Errorf("got N=%d %q", cw.N, buf.String())
	}
}
