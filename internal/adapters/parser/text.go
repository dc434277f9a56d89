package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/rcg/internal/domain/model"
	"github.com/okian/rcg/pkg/logger"
)

// Text record keywords.
const (
	keyShow        = "show"
	keyDraw        = "draw"
	keyMsg         = "msg"
	keyPlayMode    = "playmode"
	keyTeam        = "team"
	keyPlayerType  = "player_type"
	keyServerParam = "server_param"
	keyPlayerParam = "player_param"
)

// NullName stands for an empty team name or the null play mode in text
// records.
const NullName = "null"

func (s *session) parseText() error {
	for {
		if err := s.ctx.Err(); err != nil {
			return err
		}

		line, err := s.r.ReadString('\n')
		if len(line) > 0 {
			s.line++
			if herr := s.parseLine(strings.TrimRight(line, "\r\n")); herr != nil {
				return herr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line %d: %w", s.line+1, err)
		}
	}
}

// parseLine dispatches one line by its keyword. Only handler errors and
// strict-mode parameter errors are returned; everything else is a warning.
func (s *session) parseLine(line string) error {
	sc := newScanner(line)
	if sc.eof() {
		return nil
	}
	if !sc.char('(') {
		s.warn("unrecognized line", nil, logger.String("text", clip(line)))
		return nil
	}
	key, _ := sc.token()

	var err error
	switch key {
	case keyShow:
		err = s.parseShow(sc)
	case keyDraw:
		return nil
	case keyMsg:
		err = s.parseMsg(sc)
	case keyPlayMode:
		err = s.parsePlayMode(sc)
	case keyTeam:
		err = s.parseTeam(sc)
	case keyServerParam:
		err = s.parseParams(sc, model.KindServerParam, s.h.HandleServerParam)
	case keyPlayerParam:
		err = s.parseParams(sc, model.KindPlayerParam, s.h.HandlePlayerParam)
	case keyPlayerType:
		err = s.parseParams(sc, model.KindPlayerType, s.h.HandlePlayerType)
	default:
		s.warn("unrecognized line", nil, logger.String("text", clip(line)))
		return nil
	}

	var me *malformedError
	if errors.As(err, &me) {
		s.warn("malformed record dropped", err, logger.String("record", key))
		return nil
	}
	return err
}

// malformedError marks a record that is dropped with a warning.
type malformedError struct {
	what string
}

func (e *malformedError) Error() string {
	return ErrMalformedRecord.Error() + ": " + e.what
}

func (e *malformedError) Unwrap() error { return ErrMalformedRecord }

func malformed(format string, args ...any) error {
	return &malformedError{what: fmt.Sprintf(format, args...)}
}

// parseShow decodes
//
//	(show T ((b) x y [vx vy]) ((side unum) type state x y [vx vy] body neck
//	  [px py] (v q w) (s stamina effort recovery [capacity]) [(f side unum)]
//	  (c kick dash turn catch move tneck view say tackle pointto focus)) ...)
func (s *session) parseShow(sc *scanner) error {
	t, ok := sc.integer()
	if !ok {
		return malformed("show time")
	}
	show := model.NewShowInfo(t)

	if !sc.literal("((b)") {
		return malformed("show %d: ball", t)
	}
	bv := sc.floats(4)
	switch len(bv) {
	case 4:
		show.Ball.VX, show.Ball.VY, show.Ball.HasVelocity = bv[2], bv[3], true
		fallthrough
	case 2:
		show.Ball.X, show.Ball.Y = bv[0], bv[1]
	default:
		return malformed("show %d: ball has %d values", t, len(bv))
	}
	if !sc.char(')') {
		return malformed("show %d: ball", t)
	}

	for sc.peek() == '(' {
		if err := parsePlayer(sc, show); err != nil {
			return malformed("show %d: %v", t, err)
		}
	}
	if !sc.char(')') {
		return malformed("show %d: unterminated", t)
	}

	s.time = show.Time
	return s.h.HandleShow(show)
}

func parsePlayer(sc *scanner, show *model.ShowInfo) error {
	if !sc.literal("((") {
		return errors.New("player")
	}
	side, _ := sc.token()
	unum, ok := sc.integer()
	if !ok || len(side) != 1 || !sc.char(')') {
		return errors.New("player id")
	}
	idx := model.PlayerIndex(model.SideFromChar(side[0]), unum)
	if idx < 0 {
		return fmt.Errorf("player %s %d out of range", side, unum)
	}
	p := &show.Players[idx]

	if p.Type, ok = sc.integer(); !ok {
		return fmt.Errorf("player %s %d: type", side, unum)
	}
	if p.State, ok = sc.hex(); !ok {
		return fmt.Errorf("player %s %d: state", side, unum)
	}

	// x y [vx vy] body neck [px py]: the optional pairs are matched
	// greedily, so the value count alone decides which are present.
	v := sc.floats(8)
	switch len(v) {
	case 4:
		p.X, p.Y, p.Body, p.Neck = v[0], v[1], v[2], v[3]
	case 6:
		p.X, p.Y, p.VX, p.VY, p.Body, p.Neck = v[0], v[1], v[2], v[3], v[4], v[5]
		p.HasVelocity = true
	case 8:
		p.X, p.Y, p.VX, p.VY, p.Body, p.Neck = v[0], v[1], v[2], v[3], v[4], v[5]
		p.PointX, p.PointY = v[6], v[7]
		p.HasVelocity, p.HasPoint = true, true
	default:
		return fmt.Errorf("player %s %d: %d kinematic values", side, unum, len(v))
	}

	if !sc.literal("(v") {
		return fmt.Errorf("player %s %d: view", side, unum)
	}
	q, _ := sc.token()
	if p.ViewWidth, ok = sc.number(); !ok || (q != "h" && q != "l") || !sc.char(')') {
		return fmt.Errorf("player %s %d: view", side, unum)
	}
	p.HighQuality = q == "h"

	if !sc.literal("(s") {
		return fmt.Errorf("player %s %d: stamina", side, unum)
	}
	st := sc.floats(4)
	if len(st) < 3 || !sc.char(')') {
		return fmt.Errorf("player %s %d: stamina", side, unum)
	}
	p.Stamina = model.Stamina{Stamina: st[0], Effort: st[1], Recovery: st[2], Capacity: model.DefaultStaminaCapacity}
	if len(st) == 4 {
		p.Stamina.Capacity = st[3]
	}
	p.HasStamina = true

	if sc.literal("(f") {
		fside, _ := sc.token()
		funum, ok := sc.integer()
		if !ok || len(fside) != 1 || !sc.char(')') {
			return fmt.Errorf("player %s %d: focus", side, unum)
		}
		p.FocusSide, p.FocusUnum = model.SideFromChar(fside[0]), funum
	}

	if !sc.literal("(c") {
		return fmt.Errorf("player %s %d: counters", side, unum)
	}
	c := &p.Counters
	for _, dst := range []*int{
		&c.Kick, &c.Dash, &c.Turn, &c.Catch, &c.Move, &c.TurnNeck,
		&c.ChangeView, &c.Say, &c.Tackle, &c.PointTo, &c.AttentionTo,
	} {
		n, ok := sc.integer()
		if !ok {
			break
		}
		*dst = n
	}
	if !sc.char(')') || !sc.char(')') {
		return fmt.Errorf("player %s %d: counters", side, unum)
	}
	return nil
}

// parseMsg decodes (msg T board "text").
func (s *session) parseMsg(sc *scanner) error {
	t, ok := sc.integer()
	if !ok {
		return malformed("msg time")
	}
	board, ok := sc.integer()
	if !ok {
		return malformed("msg %d: board", t)
	}
	text, ok := sc.quoted('"')
	if !ok || !sc.char(')') {
		return malformed("msg %d: text", t)
	}
	return s.h.HandleMsg(model.Message{Time: t, Board: board, Text: text})
}

// parsePlayMode decodes (playmode T name). Unknown names map to PMNull.
func (s *session) parsePlayMode(sc *scanner) error {
	t, ok := sc.integer()
	if !ok {
		return malformed("playmode time")
	}
	name, ok := sc.token()
	if !ok || !sc.char(')') {
		return malformed("playmode %d: name", t)
	}
	pm := model.ParsePlayMode(name)
	if pm == model.PMNull && name != NullName {
		s.warn("unknown play mode", nil, logger.String("playmode", name))
	}
	return s.h.HandlePlayMode(t, pm)
}

// parseTeam decodes (team T left right sl sr [psl pml psr pmr]).
func (s *session) parseTeam(sc *scanner) error {
	var fields []string
	for {
		tok, ok := sc.token()
		if !ok {
			break
		}
		fields = append(fields, tok)
	}
	if !sc.char(')') {
		return malformed("team: unterminated")
	}
	if len(fields) != 5 && len(fields) != 9 {
		return malformed("team: %d fields", len(fields))
	}

	nums := make([]int, 0, 7)
	for i, f := range fields {
		if i == 1 || i == 2 {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return malformed("team: field %d %q", i+1, f)
		}
		nums = append(nums, n)
	}

	teams := model.Teams{
		Left:  model.TeamInfo{Name: teamName(fields[1]), Score: nums[1]},
		Right: model.TeamInfo{Name: teamName(fields[2]), Score: nums[2]},
	}
	if len(nums) == 7 {
		teams.Left.PenaltyScore, teams.Left.PenaltyMiss = nums[3], nums[4]
		teams.Right.PenaltyScore, teams.Right.PenaltyMiss = nums[5], nums[6]
	}
	return s.h.HandleTeam(nums[0], teams)
}

func teamName(s string) string {
	if s == NullName {
		return ""
	}
	return s
}

func clip(s string) string {
	const limit = 64
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
