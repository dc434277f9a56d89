package wire

import (
	"math"

	"github.com/okian/rcg/internal/domain/model"
)

// showinfo_t offsets.
const (
	showPModeOff = 0
	showTeamsOff = 2
	showPosOff   = showTeamsOff + TeamsSize
	showTimeOff  = showPosOff + PosSize*MaxPosCount
)

// pos_t offsets.
const (
	posEnableOff = 0
	posSideOff   = 2
	posUnumOff   = 4
	posAngleOff  = 6
	posXOff      = 8
	posYOff      = 10
)

// player_t offsets.
const (
	plModeOff        = 0
	plTypeOff        = 2
	plXOff           = 4
	plYOff           = 8
	plVXOff          = 12
	plVYOff          = 16
	plBodyOff        = 20
	plNeckOff        = 24
	plViewWidthOff   = 28
	plViewQualityOff = 32
	plStaminaOff     = 36
	plEffortOff      = 40
	plRecoveryOff    = 44
	plCountersOff    = 48
)

// short_showinfo_t2 offsets.
const (
	shortBallOff    = 0
	shortPlayersOff = BallSize
	shortTimeOff    = shortPlayersOff + PlayerSize*model.MaxPlayerTotal
)

// FullShow is the content of a showinfo_t: a show plus the play mode and
// teams the record embeds.
type FullShow struct {
	PlayMode model.PlayMode
	Teams    model.Teams
	Show     *model.ShowInfo
}

// DecodeShowInfo decodes a showinfo_t (v1 and v2 snapshots).
func DecodeShowInfo(b []byte) FullShow {
	show := model.NewShowInfo(int(uint16(get16(b, showTimeOff))))
	fs := FullShow{
		PlayMode: model.PlayMode(b[showPModeOff]),
		Teams:    DecodeTeams(b[showTeamsOff : showTeamsOff+TeamsSize]),
		Show:     show,
	}

	ball := b[showPosOff:]
	show.Ball.X = getFixed16(ball, posXOff)
	show.Ball.Y = getFixed16(ball, posYOff)

	for i := range show.Players {
		pos := b[showPosOff+PosSize*(i+1):]
		p := &show.Players[i]
		p.State = uint32(uint16(get16(pos, posEnableOff)))
		p.Body = float64(get16(pos, posAngleOff))
		p.X = getFixed16(pos, posXOff)
		p.Y = getFixed16(pos, posYOff)
	}
	return fs
}

// EncodeShowInfo encodes a showinfo_t into b, which must be at least
// ShowInfoSize bytes.
func EncodeShowInfo(b []byte, fs FullShow) {
	clear(b[:ShowInfoSize])
	b[showPModeOff] = byte(fs.PlayMode)
	EncodeTeams(b[showTeamsOff:showTeamsOff+TeamsSize], fs.Teams)

	ball := b[showPosOff:]
	put16(ball, posEnableOff, 1)
	put16(ball, posSideOff, int(model.SideNone))
	putFixed16(ball, posXOff, fs.Show.Ball.X)
	putFixed16(ball, posYOff, fs.Show.Ball.Y)

	for i := range fs.Show.Players {
		pos := b[showPosOff+PosSize*(i+1):]
		p := &fs.Show.Players[i]
		side, unum := slotLabel(i)
		put16(pos, posEnableOff, int(p.State))
		put16(pos, posSideOff, int(side))
		put16(pos, posUnumOff, unum)
		put16(pos, posAngleOff, int(math.Round(p.Body)))
		putFixed16(pos, posXOff, p.X)
		putFixed16(pos, posYOff, p.Y)
	}
	put16(b, showTimeOff, fs.Show.Time)
}

// DecodeShortShow decodes a short_showinfo_t2 (v3 snapshots).
func DecodeShortShow(b []byte) *model.ShowInfo {
	show := model.NewShowInfo(int(uint16(get16(b, shortTimeOff))))

	ball := b[shortBallOff:]
	show.Ball = model.BallState{
		X:           getFixed32(ball, 0),
		Y:           getFixed32(ball, 4),
		VX:          getFixed32(ball, 8),
		VY:          getFixed32(ball, 12),
		HasVelocity: true,
	}

	for i := range show.Players {
		pb := b[shortPlayersOff+PlayerSize*i:]
		p := &show.Players[i]
		p.State = uint32(uint16(get16(pb, plModeOff)))
		p.Type = get16(pb, plTypeOff)
		p.X = getFixed32(pb, plXOff)
		p.Y = getFixed32(pb, plYOff)
		p.VX = getFixed32(pb, plVXOff)
		p.VY = getFixed32(pb, plVYOff)
		p.HasVelocity = true
		p.Body = radToDeg(getFixed32(pb, plBodyOff))
		p.Neck = radToDeg(getFixed32(pb, plNeckOff))
		p.ViewWidth = radToDeg(getFixed32(pb, plViewWidthOff))
		p.HighQuality = get16(pb, plViewQualityOff) != 0
		p.Stamina = model.Stamina{
			Stamina:  getFixed32(pb, plStaminaOff),
			Effort:   getFixed32(pb, plEffortOff),
			Recovery: getFixed32(pb, plRecoveryOff),
			Capacity: model.DefaultStaminaCapacity,
		}
		p.HasStamina = true

		c := pb[plCountersOff:]
		p.Counters = model.Counters{
			Kick:       get16(c, 0),
			Dash:       get16(c, 2),
			Turn:       get16(c, 4),
			Say:        get16(c, 6),
			TurnNeck:   get16(c, 8),
			Catch:      get16(c, 10),
			Move:       get16(c, 12),
			ChangeView: get16(c, 14),
		}
	}
	return show
}

// EncodeShortShow encodes a short_showinfo_t2 into b, which must be at least
// ShortShowSize bytes. Missing velocities are written as zero and missing
// stamina as the default tuple.
func EncodeShortShow(b []byte, show *model.ShowInfo) {
	clear(b[:ShortShowSize])

	ball := b[shortBallOff:]
	putFixed32(ball, 0, show.Ball.X)
	putFixed32(ball, 4, show.Ball.Y)
	if show.Ball.HasVelocity {
		putFixed32(ball, 8, show.Ball.VX)
		putFixed32(ball, 12, show.Ball.VY)
	}

	for i := range show.Players {
		pb := b[shortPlayersOff+PlayerSize*i:]
		p := &show.Players[i]
		put16(pb, plModeOff, int(p.State))
		put16(pb, plTypeOff, p.Type)
		putFixed32(pb, plXOff, p.X)
		putFixed32(pb, plYOff, p.Y)
		if p.HasVelocity {
			putFixed32(pb, plVXOff, p.VX)
			putFixed32(pb, plVYOff, p.VY)
		}
		putFixed32(pb, plBodyOff, degToRad(p.Body))
		putFixed32(pb, plNeckOff, degToRad(p.Neck))
		putFixed32(pb, plViewWidthOff, degToRad(p.ViewWidth))
		if p.HighQuality {
			put16(pb, plViewQualityOff, 1)
		}
		st := p.StaminaOrDefault()
		putFixed32(pb, plStaminaOff, st.Stamina)
		putFixed32(pb, plEffortOff, st.Effort)
		putFixed32(pb, plRecoveryOff, st.Recovery)

		c := pb[plCountersOff:]
		put16(c, 0, p.Counters.Kick)
		put16(c, 2, p.Counters.Dash)
		put16(c, 4, p.Counters.Turn)
		put16(c, 6, p.Counters.Say)
		put16(c, 8, p.Counters.TurnNeck)
		put16(c, 10, p.Counters.Catch)
		put16(c, 12, p.Counters.Move)
		put16(c, 14, p.Counters.ChangeView)
	}
	put16(b, shortTimeOff, show.Time)
}

func slotLabel(i int) (model.Side, int) {
	if i < model.MaxPlayer {
		return model.SideLeft, i + 1
	}
	return model.SideRight, i - model.MaxPlayer + 1
}

func radToDeg(r float64) float64 { return r * 180 / math.Pi }

func degToRad(d float64) float64 { return d * math.Pi / 180 }
