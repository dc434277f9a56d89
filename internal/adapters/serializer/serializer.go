// Package serializer writes the event model in any log revision.
//
// Each revision has its own strategy behind the Serializer interface.
// Strategies for older revisions drop what their format cannot represent
// and fill defaults for fields the event model lacks. Strategies keep
// per-stream state and must not be shared between streams.
package serializer

import (
	"fmt"
	"io"

	"github.com/okian/rcg/internal/domain/model"
)

// Serializer encodes events for one target revision.
type Serializer interface {
	Version() model.LogVersion

	WriteHeader(w io.Writer) error
	WritePlayMode(w io.Writer, time int, pm model.PlayMode) error
	WriteTeams(w io.Writer, time int, teams model.Teams) error
	WriteShow(w io.Writer, show *model.ShowInfo) error
	WriteMsg(w io.Writer, msg model.Message) error
	WriteServerParam(w io.Writer, p *model.ParamSet) error
	WritePlayerParam(w io.Writer, p *model.ParamSet) error
	WritePlayerType(w io.Writer, p *model.ParamSet) error
}

// New returns a fresh strategy for the target revision.
func New(ver model.LogVersion, opts ...Option) (Serializer, error) {
	switch ver {
	case model.Version1:
		return NewV1(opts...), nil
	case model.Version2:
		return NewV2(opts...), nil
	case model.Version3:
		return NewV3(opts...), nil
	case model.Version4:
		return NewV4(opts...), nil
	case model.Version5:
		return NewV5(opts...), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, int(ver))
}

// write sends b in one call and reports a short write as an error.
func write(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	return nil
}
