package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/okian/rcg/internal/adapters/wire"
	"github.com/okian/rcg/internal/domain/model"
	"github.com/okian/rcg/pkg/logger"
)

// errEndOfStream stops the record loop successfully.
var errEndOfStream = errors.New("end of stream")

func (s *session) parseBinary() error {
	buf := make([]byte, wire.DispInfoSize)
	for {
		if err := s.ctx.Err(); err != nil {
			return err
		}

		var err error
		if s.version == model.Version1 {
			err = s.readDispInfo(buf)
		} else {
			err = s.readRecord(buf)
		}
		if errors.Is(err, errEndOfStream) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// read fills b completely. A stream that ends before or inside b is the end
// of the log; a truncated record is reported as a warning.
func (s *session) read(b []byte, what string) error {
	n, err := io.ReadFull(s.r, b)
	s.offset += int64(n)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return errEndOfStream
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.warn("truncated record at end of stream", ErrShortRecord,
			logger.String("record", what),
			logger.Int("want", len(b)),
			logger.Int("got", n),
		)
		return errEndOfStream
	}
	return fmt.Errorf("read %s at offset %d: %w", what, s.offset, err)
}

// readDispInfo decodes one revision 1 record: a fixed dispinfo_t union.
func (s *session) readDispInfo(buf []byte) error {
	start := s.offset
	b := buf[:wire.DispInfoSize]
	if err := s.read(b, "dispinfo_t"); err != nil {
		return err
	}

	mode := wire.DecodeMode(b)
	body := b[wire.ModeSize:]
	switch mode {
	case wire.ModeNoInfo, wire.ModeDraw, wire.ModeBlank:
		return nil
	case wire.ModeShow:
		return s.emitFullShow(wire.DecodeShowInfo(body))
	case wire.ModeMsg:
		msg := wire.DecodeMsgInfo(body)
		msg.Time = s.time
		return s.h.HandleMsg(msg)
	}
	return fmt.Errorf("%w: %d at offset %d", ErrUnknownMode, int(mode), start)
}

// readRecord decodes one revision 2 or 3 record: a mode tag followed by a
// payload of the size the tag implies.
func (s *session) readRecord(buf []byte) error {
	start := s.offset
	if err := s.read(buf[:wire.ModeSize], "mode"); err != nil {
		return err
	}
	mode := wire.DecodeMode(buf)

	switch mode {
	case wire.ModeNoInfo, wire.ModeBlank:
		return nil

	case wire.ModeShow:
		if s.version == model.Version3 {
			b := buf[:wire.ShortShowSize]
			if err := s.read(b, "short_showinfo_t2"); err != nil {
				return err
			}
			show := wire.DecodeShortShow(b)
			s.time = show.Time
			return s.h.HandleShow(show)
		}
		b := buf[:wire.ShowInfoSize]
		if err := s.read(b, "showinfo_t"); err != nil {
			return err
		}
		return s.emitFullShow(wire.DecodeShowInfo(b))

	case wire.ModeMsg:
		return s.readMessage(buf)

	case wire.ModeDraw:
		return s.read(buf[:wire.DrawInfoSize], "drawinfo_t")

	case wire.ModePM:
		b := buf[:wire.PlayModeSize]
		if err := s.read(b, "playmode"); err != nil {
			return err
		}
		return s.h.HandlePlayMode(s.time, model.PlayMode(b[0]))

	case wire.ModeTeam:
		b := buf[:wire.TeamsSize]
		if err := s.read(b, "team_t"); err != nil {
			return err
		}
		return s.h.HandleTeam(s.time, wire.DecodeTeams(b))

	case wire.ModeParam:
		return s.readParams(buf, wire.ServerParamLayout, s.h.HandleServerParam)
	case wire.ModePParam:
		return s.readParams(buf, wire.PlayerParamLayout, s.h.HandlePlayerParam)
	case wire.ModePT:
		return s.readParams(buf, wire.PlayerTypeLayout, s.h.HandlePlayerType)
	}
	return fmt.Errorf("%w: %d at offset %d", ErrUnknownMode, int(mode), start)
}

// readMessage decodes a board, length and payload. The declared length
// frames the record; the text ends at the first nul inside it.
func (s *session) readMessage(buf []byte) error {
	hdr := buf[:wire.MessageHeaderSize]
	if err := s.read(hdr, "msg header"); err != nil {
		return err
	}
	board, n := wire.DecodeMessageHeader(hdr)

	payload := make([]byte, n)
	if err := s.read(payload, "msg"); err != nil {
		return err
	}
	return s.h.HandleMsg(model.Message{
		Time:  s.time,
		Board: board,
		Text:  wire.DecodeMessageText(payload),
	})
}

func (s *session) readParams(buf []byte, l *wire.Layout, handle func(*model.ParamSet) error) error {
	b := buf[:l.Size()]
	if err := s.read(b, l.Kind().Keyword()); err != nil {
		return err
	}
	return handle(l.Decode(b))
}

// emitFullShow delivers the play mode and teams embedded in a showinfo_t
// ahead of the show itself.
func (s *session) emitFullShow(fs wire.FullShow) error {
	s.time = fs.Show.Time
	if err := s.h.HandlePlayMode(s.time, fs.PlayMode); err != nil {
		return err
	}
	if err := s.h.HandleTeam(s.time, fs.Teams); err != nil {
		return err
	}
	return s.h.HandleShow(fs.Show)
}
