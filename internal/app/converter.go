package app

import (
	"fmt"
	"io"

	"github.com/okian/rcg/internal/adapters/parser"
	"github.com/okian/rcg/internal/adapters/serializer"
	"github.com/okian/rcg/internal/adapters/stream"
	"github.com/okian/rcg/internal/domain/model"
)

// Driver is a parser.Handler that re-encodes every event with a
// serializer. It is built for one stream and must not be reused.
//
// Play mode and teams are written just before a show, and only when they
// differ from what was last written. Parameter sets are written once, the
// first time they are seen; player types once per id.
type Driver struct {
	ser serializer.Serializer
	out *stream.CountingWriter

	cycles    *CycleRange
	inVersion model.LogVersion

	// latest values decoded from the input
	playMode    model.PlayMode
	teams       model.Teams
	serverParam *model.ParamSet
	playerParam *model.ParamSet
	playerTypes map[int]*model.ParamSet

	// what has been written
	wroteShow   bool
	wrotePM     bool
	wroteTeams  bool
	lastPM      model.PlayMode
	lastTeams   model.Teams
	lastTime    int
	wroteServer bool
	wrotePlayer bool

	stats Stats
}

// DriverOption applies a configuration option to the Driver.
type DriverOption func(*Driver)

// WithCycles restricts shows and messages to r. A range also permits
// output in the input's own revision.
func WithCycles(r CycleRange) DriverOption {
	return func(d *Driver) {
		d.cycles = &r
	}
}

// NewDriver returns a driver writing through ser to w.
func NewDriver(ser serializer.Serializer, w io.Writer, opts ...DriverOption) *Driver {
	d := &Driver{
		ser:         ser,
		out:         &stream.CountingWriter{W: w},
		playerTypes: make(map[int]*model.ParamSet),
		stats:       newStats(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.stats.OutputVersion = int(ser.Version())
	return d
}

// Stats returns the counters collected so far.
func (d *Driver) Stats() Stats {
	s := d.stats
	s.BytesWritten = d.out.N
	return s
}

// HandleLogVersion validates the pair of revisions and writes the header.
func (d *Driver) HandleLogVersion(ver model.LogVersion) error {
	d.inVersion = ver
	d.stats.InputVersion = int(ver)
	if ver == d.ser.Version() && d.cycles == nil {
		return fmt.Errorf("%w: %d", ErrSameVersion, int(ver))
	}
	return d.ser.WriteHeader(d.out)
}

func (d *Driver) LogVersion() model.LogVersion { return d.inVersion }

// HandleWarning counts parser diagnostics.
func (d *Driver) HandleWarning(parser.Position, error) {
	d.stats.Warnings++
}

func (d *Driver) HandleShow(show *model.ShowInfo) error {
	d.stats.Read[KindShow]++
	if d.cycles != nil && !d.cycles.Contains(show.Time) {
		d.stats.Skipped++
		return nil
	}
	if err := d.flushContext(show.Time); err != nil {
		return err
	}
	if err := d.emit(KindShow, func() error { return d.ser.WriteShow(d.out, show) }); err != nil {
		return err
	}
	d.wroteShow = true
	d.lastTime = show.Time
	return nil
}

func (d *Driver) HandleMsg(msg model.Message) error {
	d.stats.Read[KindMsg]++
	if d.cycles != nil && !d.cycles.Contains(msg.Time) {
		d.stats.Skipped++
		return nil
	}
	return d.emit(KindMsg, func() error { return d.ser.WriteMsg(d.out, msg) })
}

func (d *Driver) HandlePlayMode(_ int, pm model.PlayMode) error {
	d.stats.Read[KindPlayMode]++
	d.playMode = pm
	return nil
}

func (d *Driver) HandleTeam(_ int, teams model.Teams) error {
	d.stats.Read[KindTeam]++
	d.teams = teams
	return nil
}

func (d *Driver) HandleServerParam(p *model.ParamSet) error {
	d.stats.Read[KindServerParam]++
	d.serverParam = p.Clone()
	if d.wroteServer {
		return nil
	}
	d.wroteServer = true
	return d.emit(KindServerParam, func() error { return d.ser.WriteServerParam(d.out, p) })
}

func (d *Driver) HandlePlayerParam(p *model.ParamSet) error {
	d.stats.Read[KindPlayerParam]++
	d.playerParam = p.Clone()
	if d.wrotePlayer {
		return nil
	}
	d.wrotePlayer = true
	return d.emit(KindPlayerParam, func() error { return d.ser.WritePlayerParam(d.out, p) })
}

func (d *Driver) HandlePlayerType(p *model.ParamSet) error {
	d.stats.Read[KindPlayerType]++
	id, _ := p.Int("id")
	_, seen := d.playerTypes[id]
	d.playerTypes[id] = p.Clone()
	if seen {
		return nil
	}
	return d.emit(KindPlayerType, func() error { return d.ser.WritePlayerType(d.out, p) })
}

// HandleEOF writes play mode and team changes that followed the last show.
func (d *Driver) HandleEOF() error {
	if !d.wroteShow {
		return nil
	}
	return d.flushContext(d.lastTime)
}

// ServerParam returns the latest server parameters, or nil.
func (d *Driver) ServerParam() *model.ParamSet { return d.serverParam }

// PlayerParam returns the latest player parameters, or nil.
func (d *Driver) PlayerParam() *model.ParamSet { return d.playerParam }

// PlayerType returns the latest player type with the given id, or nil.
func (d *Driver) PlayerType(id int) *model.ParamSet { return d.playerTypes[id] }

// flushContext writes teams, then play mode, when either differs from what
// was last written.
func (d *Driver) flushContext(time int) error {
	if !d.wroteTeams || d.teams != d.lastTeams {
		teams := d.teams
		if err := d.emit(KindTeam, func() error { return d.ser.WriteTeams(d.out, time, teams) }); err != nil {
			return err
		}
		d.wroteTeams = true
		d.lastTeams = teams
	}
	if !d.wrotePM || d.playMode != d.lastPM {
		pm := d.playMode
		if err := d.emit(KindPlayMode, func() error { return d.ser.WritePlayMode(d.out, time, pm) }); err != nil {
			return err
		}
		d.wrotePM = true
		d.lastPM = pm
	}
	return nil
}

// emit runs one serializer call and counts it when it produced bytes.
func (d *Driver) emit(kind string, write func() error) error {
	before := d.out.N
	if err := write(); err != nil {
		return fmt.Errorf("write %s: %w", kind, err)
	}
	if d.out.N > before {
		d.stats.Written[kind]++
	}
	return nil
}
