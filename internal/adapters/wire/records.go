package wire

import (
	"github.com/okian/rcg/internal/domain/model"
)

// DecodeTeams decodes two consecutive team_t records, left then right.
// Penalty counters do not exist in the binary revisions and decode as zero.
func DecodeTeams(b []byte) model.Teams {
	return model.Teams{
		Left:  decodeTeam(b[:TeamSize]),
		Right: decodeTeam(b[TeamSize : 2*TeamSize]),
	}
}

func decodeTeam(b []byte) model.TeamInfo {
	return model.TeamInfo{
		Name:  getCString(b[:TeamNameSize]),
		Score: get16(b, TeamNameSize),
	}
}

// EncodeTeams encodes two team_t records into b (TeamsSize bytes).
func EncodeTeams(b []byte, t model.Teams) {
	encodeTeam(b[:TeamSize], t.Left)
	encodeTeam(b[TeamSize:2*TeamSize], t.Right)
}

func encodeTeam(b []byte, t model.TeamInfo) {
	putCString(b[:TeamNameSize], t.Name)
	put16(b, TeamNameSize, t.Score)
}

// DecodeMsgInfo decodes a v1 msginfo_t: board plus a fixed 2048 byte text
// trimmed at the first nul.
func DecodeMsgInfo(b []byte) model.Message {
	return model.Message{
		Board: get16(b, 0),
		Text:  getCString(b[2:MsgInfoSize]),
	}
}

// EncodeMsgInfo encodes a v1 msginfo_t into b (MsgInfoSize bytes). Text
// longer than 2047 bytes is truncated.
func EncodeMsgInfo(b []byte, m model.Message) {
	put16(b, 0, m.Board)
	putCString(b[2:MsgInfoSize], m.Text)
}

// MessageHeaderSize is the board plus length prefix of a v2/v3 message.
const MessageHeaderSize = 4

// DecodeMessageHeader decodes the board and declared payload length of a
// v2/v3 message.
func DecodeMessageHeader(b []byte) (board, length int) {
	return get16(b, 0), int(uint16(get16(b, 2)))
}

// DecodeMessageText trims a v2/v3 payload at its first nul.
func DecodeMessageText(b []byte) string {
	return getCString(b)
}

// AppendMessage appends a v2/v3 message body: board, length, and the text
// followed by a nul. The length counts the nul. Text that would overflow
// the int16 length is truncated.
func AppendMessage(dst []byte, m model.Message) []byte {
	text := m.Text
	if len(text) > MaxMessageLength-1 {
		text = text[:MaxMessageLength-1]
	}
	var hdr [MessageHeaderSize]byte
	put16(hdr[:], 0, m.Board)
	put16(hdr[:], 2, len(text)+1)
	dst = append(dst, hdr[:]...)
	dst = append(dst, text...)
	return append(dst, 0)
}
