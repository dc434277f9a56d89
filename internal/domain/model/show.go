package model

// Roster sizes.
const (
	MaxPlayer      = 11
	MaxPlayerTotal = MaxPlayer * 2
)

// Side is the team side of a player or team record.
type Side int8

// Sides as stored in binary records.
const (
	SideNone  Side = 0
	SideLeft  Side = 1
	SideRight Side = -1
)

// Char returns the text-format side letter.
func (s Side) Char() byte {
	switch s {
	case SideLeft:
		return 'l'
	case SideRight:
		return 'r'
	}
	return 'n'
}

// SideFromChar parses a text-format side letter.
func SideFromChar(c byte) Side {
	switch c {
	case 'l', 'L':
		return SideLeft
	case 'r', 'R':
		return SideRight
	}
	return SideNone
}

// Player status flags.
const (
	StateDisable        uint32 = 0x00000000
	StateStand          uint32 = 0x00000001
	StateKick           uint32 = 0x00000002
	StateKickFault      uint32 = 0x00000004
	StateGoalie         uint32 = 0x00000008
	StateCatch          uint32 = 0x00000010
	StateCatchFault     uint32 = 0x00000020
	StateBallToPlayer   uint32 = 0x00000040
	StatePlayerToBall   uint32 = 0x00000080
	StateDiscard        uint32 = 0x00000100
	StateLost           uint32 = 0x00000200
	StateBallCollide    uint32 = 0x00000400
	StatePlayerCollide  uint32 = 0x00000800
	StateTackle         uint32 = 0x00001000
	StateTackleFault    uint32 = 0x00002000
	StateBackPass       uint32 = 0x00004000
	StateFreeKickFault  uint32 = 0x00008000
	StatePostCollide    uint32 = 0x00010000
	StateFoulCharged    uint32 = 0x00020000
	StateYellowCard     uint32 = 0x00040000
	StateRedCard        uint32 = 0x00080000
	StateIllegalDefense uint32 = 0x00100000
)

// Default stamina values used when a source revision carries no stamina.
const (
	DefaultStamina         = 4000.0
	DefaultEffort          = 1.0
	DefaultRecovery        = 1.0
	DefaultStaminaCapacity = -1.0
)

// BallState is the ball position and optional velocity.
type BallState struct {
	X, Y        float64
	VX, VY      float64
	HasVelocity bool
}

// Stamina is the stamina tuple of a player. Capacity is -1 when the source
// revision does not carry it.
type Stamina struct {
	Stamina  float64
	Effort   float64
	Recovery float64
	Capacity float64
}

// DefaultStaminaValues returns the tuple written when no stamina is known.
func DefaultStaminaValues() Stamina {
	return Stamina{
		Stamina:  DefaultStamina,
		Effort:   DefaultEffort,
		Recovery: DefaultRecovery,
		Capacity: DefaultStaminaCapacity,
	}
}

// Counters holds the per-player action counters. They never decrease within
// a stream.
type Counters struct {
	Kick        int
	Dash        int
	Turn        int
	Catch       int
	Move        int
	TurnNeck    int
	ChangeView  int
	Say         int
	Tackle      int
	PointTo     int
	AttentionTo int
}

// PlayerState is one player's record inside a show.
type PlayerState struct {
	Side  Side
	Unum  int
	Type  int
	State uint32

	X, Y        float64
	VX, VY      float64
	HasVelocity bool

	Body float64 // degrees
	Neck float64 // degrees, relative to body

	PointX, PointY float64
	HasPoint       bool

	HighQuality bool
	ViewWidth   float64 // degrees

	Stamina    Stamina
	HasStamina bool

	FocusSide Side // SideNone when no focus target
	FocusUnum int

	Counters Counters
}

// StaminaOrDefault returns the stamina tuple, or the default one when the
// player carries none.
func (p *PlayerState) StaminaOrDefault() Stamina {
	if p.HasStamina {
		return p.Stamina
	}
	return DefaultStaminaValues()
}

// HasFocus reports whether the player has an attention target.
func (p *PlayerState) HasFocus() bool {
	return p.FocusSide != SideNone
}

// ShowInfo is one simulation-time-stamped snapshot of ball and players.
// Players are indexed left 1..11 then right 1..11.
type ShowInfo struct {
	Time    int
	Ball    BallState
	Players [MaxPlayerTotal]PlayerState
}

// PlayerIndex maps side and uniform number to the Players index. It returns
// -1 when either is out of range.
func PlayerIndex(side Side, unum int) int {
	if unum < 1 || unum > MaxPlayer {
		return -1
	}
	switch side {
	case SideLeft:
		return unum - 1
	case SideRight:
		return MaxPlayer + unum - 1
	}
	return -1
}

// NewShowInfo returns a show with every player slot labelled by side and
// uniform number and disabled.
func NewShowInfo(time int) *ShowInfo {
	s := &ShowInfo{Time: time}
	for i := range s.Players {
		p := &s.Players[i]
		if i < MaxPlayer {
			p.Side = SideLeft
			p.Unum = i + 1
		} else {
			p.Side = SideRight
			p.Unum = i - MaxPlayer + 1
		}
	}
	return s
}
