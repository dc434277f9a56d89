package model

// PlayMode is the ordinal of the match rule-state. The ordinal is what the
// binary revisions store, so the table order below must never change.
type PlayMode uint8

// Play modes in wire order.
const (
	PMNull PlayMode = iota
	PMBeforeKickOff
	PMTimeOver
	PMPlayOn
	PMKickOffLeft
	PMKickOffRight
	PMKickInLeft
	PMKickInRight
	PMFreeKickLeft
	PMFreeKickRight
	PMCornerKickLeft
	PMCornerKickRight
	PMGoalKickLeft
	PMGoalKickRight
	PMAfterGoalLeft
	PMAfterGoalRight
	PMDropBall
	PMOffSideLeft
	PMOffSideRight
	PMPenaltyKickLeft
	PMPenaltyKickRight
	PMFirstHalfOver
	PMPause
	PMHuman
	PMFoulChargeLeft
	PMFoulChargeRight
	PMFoulPushLeft
	PMFoulPushRight
	PMFoulMultipleAttackerLeft
	PMFoulMultipleAttackerRight
	PMFoulBallOutLeft
	PMFoulBallOutRight
	PMBackPassLeft
	PMBackPassRight
	PMFreeKickFaultLeft
	PMFreeKickFaultRight
	PMCatchFaultLeft
	PMCatchFaultRight
	PMIndFreeKickLeft
	PMIndFreeKickRight
	PMPenaltySetupLeft
	PMPenaltySetupRight
	PMPenaltyReadyLeft
	PMPenaltyReadyRight
	PMPenaltyTakenLeft
	PMPenaltyTakenRight
	PMPenaltyMissLeft
	PMPenaltyMissRight
	PMPenaltyScoreLeft
	PMPenaltyScoreRight
	PMIllegalDefenseLeft
	PMIllegalDefenseRight
	PMPenaltyOnfieldLeft
	PMPenaltyOnfieldRight
	PMPenaltyFoulLeft
	PMPenaltyFoulRight
	PMGoalieCatchLeft
	PMGoalieCatchRight
	PMTimeUpWithoutATeam
	PMTimeUp
	PMTimeExtended
	PMMax
)

var playModeNames = [PMMax]string{
	"",
	"before_kick_off",
	"time_over",
	"play_on",
	"kick_off_l",
	"kick_off_r",
	"kick_in_l",
	"kick_in_r",
	"free_kick_l",
	"free_kick_r",
	"corner_kick_l",
	"corner_kick_r",
	"goal_kick_l",
	"goal_kick_r",
	"goal_l",
	"goal_r",
	"drop_ball",
	"offside_l",
	"offside_r",
	"penalty_kick_l",
	"penalty_kick_r",
	"first_half_over",
	"pause",
	"human_judge",
	"foul_charge_l",
	"foul_charge_r",
	"foul_push_l",
	"foul_push_r",
	"foul_multiple_attack_l",
	"foul_multiple_attack_r",
	"foul_ballout_l",
	"foul_ballout_r",
	"back_pass_l",
	"back_pass_r",
	"free_kick_fault_l",
	"free_kick_fault_r",
	"catch_fault_l",
	"catch_fault_r",
	"indirect_free_kick_l",
	"indirect_free_kick_r",
	"penalty_setup_l",
	"penalty_setup_r",
	"penalty_ready_l",
	"penalty_ready_r",
	"penalty_taken_l",
	"penalty_taken_r",
	"penalty_miss_l",
	"penalty_miss_r",
	"penalty_score_l",
	"penalty_score_r",
	"illegal_defense_l",
	"illegal_defense_r",
	"penalty_onfield_l",
	"penalty_onfield_r",
	"penalty_foul_l",
	"penalty_foul_r",
	"goalie_catch_ball_l",
	"goalie_catch_ball_r",
	"time_up_without_a_team",
	"time_up",
	"time_extended",
}

// String returns the wire name used by the text revisions. Out of range
// ordinals return the empty name of PMNull.
func (p PlayMode) String() string {
	if p >= PMMax {
		return ""
	}
	return playModeNames[p]
}

// ParsePlayMode resolves a wire name by scanning the table in order.
// Unknown names resolve to PMNull.
func ParsePlayMode(name string) PlayMode {
	if name == "" {
		return PMNull
	}
	for i, n := range playModeNames {
		if n == name {
			return PlayMode(i)
		}
	}
	return PMNull
}
