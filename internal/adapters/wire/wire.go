// Package wire implements the fixed byte layouts of the binary log
// revisions. Every record is encoded and decoded field by field at fixed
// offsets in network byte order; nothing is reinterpreted from memory.
//
// Offsets reproduce the natural alignment of the original C structures:
// int16 fields sit on 2-byte boundaries, int32 fields on 4-byte boundaries
// and every structure is padded to a multiple of its widest member.
package wire

import (
	"github.com/okian/rcg/internal/domain/scale"
)

// Mode is the 16-bit record tag of the binary revisions.
type Mode int16

// Record tags.
const (
	ModeNoInfo Mode = 0
	ModeShow   Mode = 1
	ModeMsg    Mode = 2
	ModeDraw   Mode = 3
	ModeBlank  Mode = 4
	ModePM     Mode = 5
	ModeTeam   Mode = 6
	ModePT     Mode = 7
	ModeParam  Mode = 8
	ModePParam Mode = 9
)

// String returns the record tag name used in diagnostics.
func (m Mode) String() string {
	switch m {
	case ModeNoInfo:
		return "NO_INFO"
	case ModeShow:
		return "SHOW_MODE"
	case ModeMsg:
		return "MSG_MODE"
	case ModeDraw:
		return "DRAW_MODE"
	case ModeBlank:
		return "BLANK_MODE"
	case ModePM:
		return "PM_MODE"
	case ModeTeam:
		return "TEAM_MODE"
	case ModePT:
		return "PT_MODE"
	case ModeParam:
		return "PARAM_MODE"
	case ModePParam:
		return "PPARAM_MODE"
	}
	return "UNKNOWN_MODE"
}

// Record sizes in bytes.
const (
	ModeSize = 2

	TeamNameSize = 16
	TeamSize     = TeamNameSize + 2 // team_t
	TeamsSize    = TeamSize * 2

	PosSize      = 12                                      // pos_t
	ShowInfoSize = 2 + TeamsSize + PosSize*(MaxPosCount) + 2 // showinfo_t
	MaxPosCount  = 23                                      // ball + 22 players

	MaxMessageSize = 2048
	MsgInfoSize    = 2 + MaxMessageSize // msginfo_t
	ColorNameSize  = 64
	DrawInfoSize   = 2 + 4*2 + ColorNameSize // drawinfo_t
	DispInfoBody   = MsgInfoSize             // largest union member
	DispInfoSize   = ModeSize + DispInfoBody // dispinfo_t

	PlayModeSize  = 1
	BallSize      = 16   // ball_t
	PlayerSize    = 64   // player_t
	ShortShowSize = 1428 // short_showinfo_t2

	// MaxMessageLength bounds v2/v3 message payloads (int16 length, nul
	// included).
	MaxMessageLength = 0x7fff
)

// Byte-level helpers over fixed-size buffers.

func get16(b []byte, off int) int {
	return int(scale.ToLocal16(scale.Net16{b[off], b[off+1]}))
}

func put16(b []byte, off, v int) {
	n := scale.ToNet16(v)
	copy(b[off:off+2], n[:])
}

func get32(b []byte, off int) int {
	return int(scale.ToLocal32(scale.Net32{b[off], b[off+1], b[off+2], b[off+3]}))
}

func put32(b []byte, off, v int) {
	n := scale.ToNet32(v)
	copy(b[off:off+4], n[:])
}

func getFixed16(b []byte, off int) float64 {
	return scale.ToLocalFixed16(scale.Net16{b[off], b[off+1]})
}

func putFixed16(b []byte, off int, f float64) {
	n := scale.ToNetFixed16(f)
	copy(b[off:off+2], n[:])
}

func getFixed32(b []byte, off int) float64 {
	return scale.ToLocalFixed32(scale.Net32{b[off], b[off+1], b[off+2], b[off+3]})
}

func putFixed32(b []byte, off int, f float64) {
	n := scale.ToNetFixed32(f)
	copy(b[off:off+4], n[:])
}

// getCString returns the bytes of b up to the first nul.
func getCString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// putCString copies s into b, truncated so that a terminating nul always
// fits, and zero-fills the rest.
func putCString(b []byte, s string) {
	n := copy(b[:len(b)-1], s)
	clear(b[n:])
}

// AppendMode appends a record tag.
func AppendMode(dst []byte, m Mode) []byte {
	n := scale.ToNet16(int(m))
	return append(dst, n[:]...)
}

// DecodeMode decodes a record tag.
func DecodeMode(b []byte) Mode {
	return Mode(get16(b, 0))
}
