// Package parser decodes game logs of every revision into the event model
// and drives a Handler with the result.
//
// The revision is detected from the stream header. Binary revisions are
// decoded record by record from their mode tags; an unknown tag is fatal
// since a binary stream cannot be resynchronised. Text revisions are decoded
// line by line; unknown or malformed lines are logged and skipped.
package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/okian/rcg/internal/domain/model"
	"github.com/okian/rcg/pkg/logger"
)

const readBufferSize = 64 * 1024

// Parser decodes one stream per Parse call. It holds no per-stream state
// and may be reused sequentially or shared between goroutines.
type Parser struct {
	logger       logger.Logger
	strictParams bool
}

// New creates a Parser with configuration options.
func New(opts ...Option) *Parser {
	p := &Parser{
		logger: logger.Get().Named("parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse detects the revision of r and decodes it to the end, calling h for
// every record. It returns nil on a clean end of stream.
func (p *Parser) Parse(ctx context.Context, r io.Reader, h Handler) error {
	if h == nil {
		return ErrNilHandler
	}

	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, readBufferSize)
	}

	ver, err := Detect(br)
	if err != nil {
		return err
	}
	if err := h.HandleLogVersion(ver); err != nil {
		return fmt.Errorf("handle log version: %w", err)
	}

	s := &session{
		parser:  p,
		ctx:     ctx,
		r:       br,
		h:       h,
		version: ver,
	}
	if ver.IsBinary() && ver != model.Version1 {
		s.offset = HeaderSize
	}

	p.logger.Debug(ctx, "log version detected", logger.String("version", ver.String()))

	if ver.IsText() {
		err = s.parseText()
	} else {
		err = s.parseBinary()
	}
	if err != nil {
		return err
	}

	if err := h.HandleEOF(); err != nil {
		return fmt.Errorf("handle eof: %w", err)
	}
	return nil
}

// session is the state of one Parse call.
type session struct {
	parser  *Parser
	ctx     context.Context
	r       *bufio.Reader
	h       Handler
	version model.LogVersion

	offset int64 // binary: offset of the next record
	line   int   // text: number of the current line

	// time of the last show; binary records other than shows carry none.
	time int
}

func (s *session) position() Position {
	return Position{Line: s.line, Offset: s.offset}
}

// warn logs a non-fatal diagnostic and forwards it to the handler when it
// wants them.
func (s *session) warn(msg string, err error, fields ...logger.Field) {
	pos := s.position()
	if s.version.IsText() {
		fields = append(fields, logger.Int("line", pos.Line))
	} else {
		fields = append(fields, logger.Any("offset", pos.Offset))
	}
	if err != nil {
		fields = append(fields, logger.Error(err))
	}
	s.parser.logger.Warn(s.ctx, msg, fields...)

	if wh, ok := s.h.(WarningHandler); ok {
		if err == nil {
			err = errors.New(msg)
		}
		wh.HandleWarning(pos, err)
	}
}
