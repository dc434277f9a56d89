package model

// MaxTeamNameLength bounds team names in binary records (char[16], nul
// terminated).
const MaxTeamNameLength = 15

// TeamInfo is one side's name and score. An empty name means no team.
type TeamInfo struct {
	Name         string
	Score        int
	PenaltyScore int
	PenaltyMiss  int
}

// Teams is the left/right pair that always travels together.
type Teams struct {
	Left  TeamInfo
	Right TeamInfo
}

// HasPenalty reports whether any penalty-shootout counter is set.
func (t Teams) HasPenalty() bool {
	return t.Left.PenaltyScore != 0 || t.Left.PenaltyMiss != 0 ||
		t.Right.PenaltyScore != 0 || t.Right.PenaltyMiss != 0
}

// Message is a board message.
type Message struct {
	Time  int
	Board int
	Text  string
}

// MsgBoardLog is the board referee and coach messages are posted to.
const MsgBoardLog = 2
