package parser

import (
	"github.com/okian/rcg/internal/domain/model"
)

// Handler receives decoded events. HandleLogVersion is called exactly once
// before any other event and HandleEOF exactly once, last, on a clean end of
// stream. A non-nil error from any method stops parsing and is returned by
// Parse.
//
// Values passed to a method are only valid for the duration of the call;
// implementations that keep them must copy.
type Handler interface {
	HandleLogVersion(ver model.LogVersion) error
	LogVersion() model.LogVersion

	HandleShow(show *model.ShowInfo) error
	HandleMsg(msg model.Message) error
	HandlePlayMode(time int, pm model.PlayMode) error
	HandleTeam(time int, teams model.Teams) error
	HandleServerParam(p *model.ParamSet) error
	HandlePlayerParam(p *model.ParamSet) error
	HandlePlayerType(p *model.ParamSet) error
	HandleEOF() error
}

// WarningHandler is implemented by handlers that want to observe non-fatal
// diagnostics in addition to them being logged.
type WarningHandler interface {
	HandleWarning(pos Position, err error)
}

// Position locates a record in its stream: a 1-based line for the text
// revisions, a byte offset for the binary ones.
type Position struct {
	Line   int
	Offset int64
}

// BaseHandler implements every Handler event as a no-op. Embed it and
// provide HandleLogVersion and LogVersion.
type BaseHandler struct{}

func (BaseHandler) HandleShow(*model.ShowInfo) error         { return nil }
func (BaseHandler) HandleMsg(model.Message) error            { return nil }
func (BaseHandler) HandlePlayMode(int, model.PlayMode) error { return nil }
func (BaseHandler) HandleTeam(int, model.Teams) error        { return nil }
func (BaseHandler) HandleServerParam(*model.ParamSet) error  { return nil }
func (BaseHandler) HandlePlayerParam(*model.ParamSet) error  { return nil }
func (BaseHandler) HandlePlayerType(*model.ParamSet) error   { return nil }
func (BaseHandler) HandleEOF() error                         { return nil }
