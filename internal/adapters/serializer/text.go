package serializer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/rcg/internal/adapters/parser"
	"github.com/okian/rcg/internal/domain/model"
)

var escapeQuote = strings.NewReplacer(`"`, `\"`)

// Line breaks end a record, so they become spaces inside message text.
var escapeText = strings.NewReplacer(`"`, `\"`, "\n", " ", "\r", " ")

// textEncoder renders the line grammar shared by the text revisions. The
// revisions differ only in the stamina tuple.
type textEncoder struct {
	version  model.LogVersion
	capacity bool
	c        config
	buf      []byte
}

func (e *textEncoder) Version() model.LogVersion { return e.version }

func (e *textEncoder) WriteHeader(w io.Writer) error {
	return write(w, parser.Header(e.version))
}

func (e *textEncoder) WritePlayMode(w io.Writer, time int, pm model.PlayMode) error {
	name := pm.String()
	if name == "" {
		name = parser.NullName
	}
	b := e.open("playmode", time)
	b = append(b, ' ')
	b = append(b, name...)
	return e.flush(w, b)
}

func (e *textEncoder) WriteTeams(w io.Writer, time int, teams model.Teams) error {
	b := e.open("team", time)
	b = appendTeamName(b, teams.Left.Name)
	b = appendTeamName(b, teams.Right.Name)
	b = appendInts(b, teams.Left.Score, teams.Right.Score)
	if teams.HasPenalty() {
		b = appendInts(b,
			teams.Left.PenaltyScore, teams.Left.PenaltyMiss,
			teams.Right.PenaltyScore, teams.Right.PenaltyMiss)
	}
	return e.flush(w, b)
}

func (e *textEncoder) WriteShow(w io.Writer, show *model.ShowInfo) error {
	b := e.open("show", show.Time)

	b = append(b, " ((b)"...)
	b = appendFloats(b, show.Ball.X, show.Ball.Y)
	if show.Ball.HasVelocity {
		b = appendFloats(b, show.Ball.VX, show.Ball.VY)
	}
	b = append(b, ')')

	for i := range show.Players {
		b = e.appendPlayer(b, &show.Players[i])
	}
	return e.flush(w, b)
}

// appendPlayer writes one player group. Velocity precedes the optional
// point-at pair in the grammar, so it is written as a zero placeholder when
// only the point is known.
func (e *textEncoder) appendPlayer(b []byte, p *model.PlayerState) []byte {
	b = append(b, " (("...)
	b = append(b, p.Side.Char())
	b = appendInts(b, p.Unum)
	b = append(b, ')')
	b = appendInts(b, p.Type)
	b = append(b, " 0x"...)
	b = strconv.AppendUint(b, uint64(p.State), 16)

	b = appendFloats(b, p.X, p.Y)
	switch {
	case p.HasVelocity:
		b = appendFloats(b, p.VX, p.VY)
	case p.HasPoint:
		b = append(b, " 0 0"...)
	}
	b = appendFloats(b, p.Body, p.Neck)
	if p.HasPoint {
		b = appendFloats(b, p.PointX, p.PointY)
	}

	b = append(b, " (v "...)
	if p.HighQuality {
		b = append(b, 'h')
	} else {
		b = append(b, 'l')
	}
	b = appendFloats(b, p.ViewWidth)
	b = append(b, ')')

	st := p.StaminaOrDefault()
	b = append(b, " (s"...)
	b = appendFloats(b, st.Stamina, st.Effort, st.Recovery)
	if e.capacity {
		b = appendFloats(b, st.Capacity)
	}
	b = append(b, ')')

	if p.HasFocus() {
		b = append(b, " (f "...)
		b = append(b, p.FocusSide.Char())
		b = appendInts(b, p.FocusUnum)
		b = append(b, ')')
	}

	c := &p.Counters
	b = append(b, " (c"...)
	b = appendInts(b, c.Kick, c.Dash, c.Turn, c.Catch, c.Move, c.TurnNeck,
		c.ChangeView, c.Say, c.Tackle, c.PointTo, c.AttentionTo)
	return append(b, "))"...)
}

func (e *textEncoder) WriteMsg(w io.Writer, msg model.Message) error {
	if e.c.strictMessages && strings.ContainsAny(msg.Text, "\r\n") {
		return fmt.Errorf("%w: at time %d", ErrMessageMultiline, msg.Time)
	}
	b := e.open("msg", msg.Time)
	b = appendInts(b, msg.Board)
	b = append(b, ` "`...)
	b = append(b, escapeText.Replace(msg.Text)...)
	b = append(b, '"')
	return e.flush(w, b)
}

func (e *textEncoder) WriteServerParam(w io.Writer, p *model.ParamSet) error {
	return e.writeParams(w, p)
}

func (e *textEncoder) WritePlayerParam(w io.Writer, p *model.ParamSet) error {
	return e.writeParams(w, p)
}

func (e *textEncoder) WritePlayerType(w io.Writer, p *model.ParamSet) error {
	return e.writeParams(w, p)
}

// writeParams writes (keyword (name value) ...) in schema order. Strings
// are always double-quoted.
func (e *textEncoder) writeParams(w io.Writer, p *model.ParamSet) error {
	b := append(e.buf[:0], '(')
	b = append(b, p.Kind().Keyword()...)
	for _, sp := range p.Schema().Specs() {
		b = append(b, " ("...)
		b = append(b, sp.Name...)
		b = append(b, ' ')
		if sp.Type == model.ParamString {
			b = append(b, '"')
			b = append(b, escapeQuote.Replace(p.Format(sp))...)
			b = append(b, '"')
		} else {
			b = append(b, p.Format(sp)...)
		}
		b = append(b, ')')
	}
	return e.flush(w, b)
}

// open starts a "(keyword time" record in the scratch buffer.
func (e *textEncoder) open(keyword string, time int) []byte {
	b := append(e.buf[:0], '(')
	b = append(b, keyword...)
	return appendInts(b, time)
}

// flush closes the record and writes the line.
func (e *textEncoder) flush(w io.Writer, b []byte) error {
	b = append(b, ")\n"...)
	e.buf = b
	return write(w, b)
}

func appendInts(b []byte, vs ...int) []byte {
	for _, v := range vs {
		b = append(b, ' ')
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return b
}

func appendFloats(b []byte, vs ...float64) []byte {
	for _, v := range vs {
		b = append(b, ' ')
		b = strconv.AppendFloat(b, v, 'f', -1, 64)
	}
	return b
}

func appendTeamName(b []byte, name string) []byte {
	if name == "" {
		name = parser.NullName
	}
	b = append(b, ' ')
	return append(b, name...)
}

// V4 writes the first text revision with the (s stamina effort recovery)
// tuple.
type V4 struct {
	textEncoder
}

// NewV4 returns a revision 4 strategy.
func NewV4(opts ...Option) *V4 {
	return &V4{textEncoder{version: model.Version4, c: newConfig(opts)}}
}

// V5 writes the text revision whose stamina tuple adds the capacity.
type V5 struct {
	textEncoder
}

// NewV5 returns a revision 5 strategy.
func NewV5(opts ...Option) *V5 {
	return &V5{textEncoder{version: model.Version5, capacity: true, c: newConfig(opts)}}
}
