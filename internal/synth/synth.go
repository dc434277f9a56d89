// Package synth generates deterministic synthetic matches. The stream has
// strictly increasing show times, a moving ball and players, counters that
// never decrease, a goal half way through and optional parameters and
// messages. Positions are multiples of 1/16 and angles whole degrees so
// that every revision represents them exactly.
package synth

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/okian/rcg/internal/adapters/serializer"
	"github.com/okian/rcg/internal/domain/model"
)

// Default generator configuration constants.
const (
	defaultShows = 100
	defaultSeed  = 1

	fieldHalfLength = 52.5
	fieldHalfWidth  = 34.0
	positionQuantum = 1.0 / 16
)

// Config describes the generated match.
type Config struct {
	Shows       int
	Seed        uint64
	StartTime   int
	LeftTeam    string
	RightTeam   string
	Params      bool
	PlayerTypes int
	// MessageEvery writes a message after every n-th show; zero disables
	// messages.
	MessageEvery int
}

// Option applies a configuration option to the Generator.
type Option func(*Config)

// WithShows sets the number of shows.
func WithShows(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Shows = n
		}
	}
}

// WithSeed sets the random seed.
func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithStartTime sets the time of the first show.
func WithStartTime(t int) Option {
	return func(c *Config) {
		if t >= 0 {
			c.StartTime = t
		}
	}
}

// WithTeams sets the team names.
func WithTeams(left, right string) Option {
	return func(c *Config) {
		c.LeftTeam = left
		c.RightTeam = right
	}
}

// WithParams writes server and player parameters and n player types before
// the first show.
func WithParams(playerTypes int) Option {
	return func(c *Config) {
		c.Params = true
		if playerTypes >= 0 {
			c.PlayerTypes = playerTypes
		}
	}
}

// WithMessages writes a message after every n-th show.
func WithMessages(every int) Option {
	return func(c *Config) {
		if every >= 0 {
			c.MessageEvery = every
		}
	}
}

// Generator produces one synthetic match per Write call.
type Generator struct {
	cfg Config
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	cfg := Config{
		Shows:     defaultShows,
		Seed:      defaultSeed,
		LeftTeam:  "SynthLeft",
		RightTeam: "SynthRight",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Generator{cfg: cfg}
}

// Config returns the generator configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Write encodes the match with ser to w.
func (g *Generator) Write(ctx context.Context, ser serializer.Serializer, w io.Writer) error {
	if err := ser.WriteHeader(w); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	if g.cfg.Params {
		if err := g.writeParams(ser, w); err != nil {
			return err
		}
	}

	m := newMatch(g.cfg)
	for i := range g.cfg.Shows {
		if err := ctx.Err(); err != nil {
			return err
		}

		show := m.step(i)
		if m.teamsChanged {
			if err := ser.WriteTeams(w, show.Time, m.teams); err != nil {
				return fmt.Errorf("teams at %d: %w", show.Time, err)
			}
		}
		if m.modeChanged {
			if err := ser.WritePlayMode(w, show.Time, m.mode); err != nil {
				return fmt.Errorf("playmode at %d: %w", show.Time, err)
			}
		}
		if err := ser.WriteShow(w, show); err != nil {
			return fmt.Errorf("show at %d: %w", show.Time, err)
		}
		if g.cfg.MessageEvery > 0 && (i+1)%g.cfg.MessageEvery == 0 {
			msg := model.Message{
				Time:  show.Time,
				Board: model.MsgBoardLog,
				Text:  fmt.Sprintf(`(referee "cycle %d")`, show.Time),
			}
			if err := ser.WriteMsg(w, msg); err != nil {
				return fmt.Errorf("msg at %d: %w", show.Time, err)
			}
		}
	}
	return nil
}

// Shows returns the shows Write would encode.
func (g *Generator) Shows() []*model.ShowInfo {
	m := newMatch(g.cfg)
	out := make([]*model.ShowInfo, 0, g.cfg.Shows)
	for i := range g.cfg.Shows {
		out = append(out, m.step(i))
	}
	return out
}

func (g *Generator) writeParams(ser serializer.Serializer, w io.Writer) error {
	sp := model.NewServerParam()
	sp.SetInt("half_time", 300)
	sp.SetStr("team_l_start", g.cfg.LeftTeam)
	if err := ser.WriteServerParam(w, sp); err != nil {
		return fmt.Errorf("server_param: %w", err)
	}

	pp := model.NewPlayerParam()
	pp.SetInt("player_types", max(g.cfg.PlayerTypes, 1))
	pp.SetInt("random_seed", int(g.cfg.Seed))
	if err := ser.WritePlayerParam(w, pp); err != nil {
		return fmt.Errorf("player_param: %w", err)
	}

	for id := range g.cfg.PlayerTypes {
		pt := model.NewPlayerType()
		pt.SetInt("id", id)
		pt.SetFloat("player_speed_max", 1.0+float64(id)*0.0625)
		if err := ser.WritePlayerType(w, pt); err != nil {
			return fmt.Errorf("player_type %d: %w", id, err)
		}
	}
	return nil
}

// match is the evolving state behind one Write.
type match struct {
	cfg   Config
	rng   *rand.Rand
	show  *model.ShowInfo
	mode  model.PlayMode
	teams model.Teams

	modeChanged  bool
	teamsChanged bool
}

func newMatch(cfg Config) *match {
	m := &match{
		cfg:  cfg,
		rng:  rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		show: model.NewShowInfo(cfg.StartTime),
		mode: model.PMBeforeKickOff,
		teams: model.Teams{
			Left:  model.TeamInfo{Name: cfg.LeftTeam},
			Right: model.TeamInfo{Name: cfg.RightTeam},
		},
	}
	for i := range m.show.Players {
		p := &m.show.Players[i]
		p.State = model.StateStand
		if p.Unum == 1 {
			p.State |= model.StateGoalie
		}
		p.Type = i % max(cfg.PlayerTypes, 1)
		side := float64(p.Side)
		p.X = quantize(-side * (fieldHalfLength / 2) * float64(p.Unum) / model.MaxPlayer)
		p.Y = quantize(fieldHalfWidth * (float64(p.Unum-1)/(model.MaxPlayer-1)*2 - 1) * 0.8)
		p.ViewWidth = 90
		p.HasStamina = true
		p.Stamina = model.Stamina{Stamina: 8000, Effort: 1, Recovery: 1, Capacity: 130600}
	}
	return m
}

// step advances the match to show i and returns a fresh copy of the show.
func (m *match) step(i int) *model.ShowInfo {
	m.modeChanged = i == 0
	m.teamsChanged = i == 0

	switch {
	case i == 0:
		m.setMode(model.PMKickOffLeft)
	case i == m.cfg.Shows/2 && m.cfg.Shows > 2:
		m.teams.Left.Score++
		m.teamsChanged = true
		m.setMode(model.PMAfterGoalLeft)
	case i == m.cfg.Shows/2+1 && m.cfg.Shows > 2:
		m.setMode(model.PMKickOffRight)
	case i == m.cfg.Shows-1 && m.cfg.Shows > 1:
		m.setMode(model.PMTimeOver)
	default:
		m.setMode(model.PMPlayOn)
	}

	s := m.show
	s.Time = m.cfg.StartTime + i

	b := &s.Ball
	b.VX = quantize(m.rng.Float64()*2 - 1)
	b.VY = quantize(m.rng.Float64()*2 - 1)
	b.HasVelocity = true
	b.X = quantize(clamp(b.X+b.VX, fieldHalfLength))
	b.Y = quantize(clamp(b.Y+b.VY, fieldHalfWidth))

	for j := range s.Players {
		p := &s.Players[j]
		p.VX = quantize((m.rng.Float64() - 0.5) * 0.5)
		p.VY = quantize((m.rng.Float64() - 0.5) * 0.5)
		p.HasVelocity = true
		p.X = quantize(clamp(p.X+p.VX, fieldHalfLength))
		p.Y = quantize(clamp(p.Y+p.VY, fieldHalfWidth))
		p.Body = float64(m.rng.IntN(360) - 180)
		p.Neck = float64(m.rng.IntN(181) - 90)
		p.HighQuality = m.rng.IntN(2) == 0

		p.Stamina.Stamina = math.Max(0, p.Stamina.Stamina-float64(m.rng.IntN(40)))
		p.Stamina.Capacity = math.Max(0, p.Stamina.Capacity-float64(m.rng.IntN(40)))

		c := &p.Counters
		switch m.rng.IntN(4) {
		case 0:
			c.Dash++
		case 1:
			c.Turn++
		case 2:
			c.TurnNeck++
		}
		if m.rng.IntN(10) == 0 {
			c.Kick++
		}
	}

	out := *s
	return &out
}

func (m *match) setMode(pm model.PlayMode) {
	if pm != m.mode {
		m.mode = pm
		m.modeChanged = true
	}
}

func quantize(v float64) float64 {
	return math.Round(v/positionQuantum) * positionQuantum
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
