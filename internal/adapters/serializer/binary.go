package serializer

import (
	"fmt"
	"io"

	"github.com/okian/rcg/internal/adapters/parser"
	"github.com/okian/rcg/internal/adapters/wire"
	"github.com/okian/rcg/internal/domain/model"
)

// lastSeen is the play mode and teams a showinfo_t embeds. The v1 and v2
// strategies remember the last values they were given.
type lastSeen struct {
	playMode model.PlayMode
	teams    model.Teams
}

func (c *lastSeen) fullShow(show *model.ShowInfo) wire.FullShow {
	return wire.FullShow{PlayMode: c.playMode, Teams: c.teams, Show: show}
}

func checkMessage(c config, msg model.Message, limit int) error {
	if c.strictMessages && len(msg.Text) > limit {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrMessageTooLong, len(msg.Text), limit)
	}
	return nil
}

// V1 writes the headerless revision: every record is a fixed-size
// dispinfo_t. Only shows and messages exist.
type V1 struct {
	last lastSeen
	c    config
	buf  [wire.DispInfoSize]byte
}

// NewV1 returns a revision 1 strategy.
func NewV1(opts ...Option) *V1 {
	return &V1{c: newConfig(opts)}
}

func (s *V1) Version() model.LogVersion { return model.Version1 }

func (s *V1) WriteHeader(io.Writer) error { return nil }

func (s *V1) WritePlayMode(_ io.Writer, _ int, pm model.PlayMode) error {
	s.last.playMode = pm
	return nil
}

func (s *V1) WriteTeams(_ io.Writer, _ int, teams model.Teams) error {
	s.last.teams = teams
	return nil
}

func (s *V1) WriteShow(w io.Writer, show *model.ShowInfo) error {
	b := s.record(wire.ModeShow)
	wire.EncodeShowInfo(b[wire.ModeSize:], s.last.fullShow(show))
	return write(w, b)
}

func (s *V1) WriteMsg(w io.Writer, msg model.Message) error {
	if err := checkMessage(s.c, msg, wire.MaxMessageSize-1); err != nil {
		return err
	}
	b := s.record(wire.ModeMsg)
	wire.EncodeMsgInfo(b[wire.ModeSize:], msg)
	return write(w, b)
}

func (s *V1) WriteServerParam(io.Writer, *model.ParamSet) error { return nil }
func (s *V1) WritePlayerParam(io.Writer, *model.ParamSet) error { return nil }
func (s *V1) WritePlayerType(io.Writer, *model.ParamSet) error  { return nil }

// record clears the scratch record and stamps its mode.
func (s *V1) record(m wire.Mode) []byte {
	b := s.buf[:]
	clear(b)
	wire.AppendMode(b[:0], m)
	return b
}

// V2 writes tagged records with full showinfo_t snapshots. Parameters do
// not exist in this revision.
type V2 struct {
	last lastSeen
	c    config
	buf  []byte
}

// NewV2 returns a revision 2 strategy.
func NewV2(opts ...Option) *V2 {
	return &V2{c: newConfig(opts)}
}

func (s *V2) Version() model.LogVersion { return model.Version2 }

func (s *V2) WriteHeader(w io.Writer) error {
	return write(w, parser.Header(model.Version2))
}

func (s *V2) WritePlayMode(w io.Writer, _ int, pm model.PlayMode) error {
	s.last.playMode = pm
	return writePlayMode(w, &s.buf, pm)
}

func (s *V2) WriteTeams(w io.Writer, _ int, teams model.Teams) error {
	s.last.teams = teams
	return writeTeams(w, &s.buf, teams)
}

func (s *V2) WriteShow(w io.Writer, show *model.ShowInfo) error {
	b := tagged(&s.buf, wire.ModeShow, wire.ShowInfoSize)
	wire.EncodeShowInfo(b[wire.ModeSize:], s.last.fullShow(show))
	return write(w, b)
}

func (s *V2) WriteMsg(w io.Writer, msg model.Message) error {
	return writeMessage(w, &s.buf, s.c, msg)
}

func (s *V2) WriteServerParam(io.Writer, *model.ParamSet) error { return nil }
func (s *V2) WritePlayerParam(io.Writer, *model.ParamSet) error { return nil }
func (s *V2) WritePlayerType(io.Writer, *model.ParamSet) error  { return nil }

// V3 writes tagged records with condensed snapshots and binary parameter
// structures.
type V3 struct {
	c   config
	buf []byte
}

// NewV3 returns a revision 3 strategy.
func NewV3(opts ...Option) *V3 {
	return &V3{c: newConfig(opts)}
}

func (s *V3) Version() model.LogVersion { return model.Version3 }

func (s *V3) WriteHeader(w io.Writer) error {
	return write(w, parser.Header(model.Version3))
}

func (s *V3) WritePlayMode(w io.Writer, _ int, pm model.PlayMode) error {
	return writePlayMode(w, &s.buf, pm)
}

func (s *V3) WriteTeams(w io.Writer, _ int, teams model.Teams) error {
	return writeTeams(w, &s.buf, teams)
}

func (s *V3) WriteShow(w io.Writer, show *model.ShowInfo) error {
	b := tagged(&s.buf, wire.ModeShow, wire.ShortShowSize)
	wire.EncodeShortShow(b[wire.ModeSize:], show)
	return write(w, b)
}

func (s *V3) WriteMsg(w io.Writer, msg model.Message) error {
	return writeMessage(w, &s.buf, s.c, msg)
}

func (s *V3) WriteServerParam(w io.Writer, p *model.ParamSet) error {
	return writeParams(w, &s.buf, wire.ModeParam, wire.ServerParamLayout, p)
}

func (s *V3) WritePlayerParam(w io.Writer, p *model.ParamSet) error {
	return writeParams(w, &s.buf, wire.ModePParam, wire.PlayerParamLayout, p)
}

func (s *V3) WritePlayerType(w io.Writer, p *model.ParamSet) error {
	return writeParams(w, &s.buf, wire.ModePT, wire.PlayerTypeLayout, p)
}

// tagged returns a zeroed record of mode plus size payload bytes, reusing
// the scratch buffer.
func tagged(buf *[]byte, m wire.Mode, size int) []byte {
	n := wire.ModeSize + size
	if cap(*buf) < n {
		*buf = make([]byte, n)
	}
	b := (*buf)[:n]
	clear(b)
	wire.AppendMode(b[:0], m)
	return b
}

func writePlayMode(w io.Writer, buf *[]byte, pm model.PlayMode) error {
	b := tagged(buf, wire.ModePM, wire.PlayModeSize)
	b[wire.ModeSize] = byte(pm)
	return write(w, b)
}

func writeTeams(w io.Writer, buf *[]byte, teams model.Teams) error {
	b := tagged(buf, wire.ModeTeam, wire.TeamsSize)
	wire.EncodeTeams(b[wire.ModeSize:], teams)
	return write(w, b)
}

func writeMessage(w io.Writer, buf *[]byte, c config, msg model.Message) error {
	if err := checkMessage(c, msg, wire.MaxMessageLength-1); err != nil {
		return err
	}
	b := wire.AppendMode((*buf)[:0], wire.ModeMsg)
	b = wire.AppendMessage(b, msg)
	*buf = b
	return write(w, b)
}

func writeParams(w io.Writer, buf *[]byte, m wire.Mode, l *wire.Layout, p *model.ParamSet) error {
	if p.Kind() != l.Kind() {
		return fmt.Errorf("%s record given %s parameters", l.Kind().Keyword(), p.Kind().Keyword())
	}
	b := tagged(buf, m, l.Size())
	l.Encode(b[wire.ModeSize:], p)
	return write(w, b)
}
