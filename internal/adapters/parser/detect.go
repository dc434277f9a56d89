package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/okian/rcg/internal/domain/model"
)

// Header layout.
const (
	Magic      = "ULG"
	HeaderSize = 4
)

// Detect inspects the first four bytes of r. A recognised header is consumed
// and its revision returned. Anything else, including a stream shorter than
// a header, is the headerless revision 1 and nothing is consumed.
func Detect(r *bufio.Reader) (model.LogVersion, error) {
	ver, err := Peek(r)
	if err != nil || ver == model.Version1 {
		return ver, err
	}
	if _, err := r.Discard(HeaderSize); err != nil {
		return model.VersionUnknown, fmt.Errorf("skip header: %w", err)
	}
	return ver, nil
}

// Peek is Detect without consuming anything.
func Peek(r *bufio.Reader) (model.LogVersion, error) {
	b, err := r.Peek(HeaderSize)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.Version1, nil
		}
		return model.VersionUnknown, fmt.Errorf("read header: %w", err)
	}
	if string(b[:len(Magic)]) != Magic {
		return model.Version1, nil
	}

	switch c := b[len(Magic)]; c {
	case byte(model.Version2), byte(model.Version3):
		return model.LogVersion(c), nil
	case '4', '5':
		return model.LogVersion(c - '0'), nil
	default:
		return model.VersionUnknown, fmt.Errorf("%w: header byte 0x%02x", ErrUnsupportedVersion, c)
	}
}

// Header returns the header bytes of a revision; revision 1 has none.
func Header(ver model.LogVersion) []byte {
	switch {
	case ver == model.Version2 || ver == model.Version3:
		return []byte{'U', 'L', 'G', byte(ver)}
	case ver.IsText():
		return []byte(fmt.Sprintf("%s%d\n", Magic, int(ver)))
	}
	return nil
}
