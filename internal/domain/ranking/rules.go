package ranking

import (
	"fmt"
	"math"
	"strconv"
)

const DefaultHallOfFameMinAttendance = 25

// Rules holds the MVP score weights and the hall-of-fame threshold.
type Rules struct {
	GoalWeight              float64
	AssistWeight            float64
	DefenseWeight           float64
	WinningTeamBonus        float64
	HallOfFameMinAttendance int
}

func DefaultRules() Rules {
	return Rules{
		GoalWeight:              2,
		AssistWeight:            1,
		DefenseWeight:           0.5,
		WinningTeamBonus:        1.5,
		HallOfFameMinAttendance: DefaultHallOfFameMinAttendance,
	}
}

func (r Rules) Validate() error {
	if r.GoalWeight < 0 || r.AssistWeight < 0 || r.DefenseWeight < 0 || r.WinningTeamBonus < 0 {
		return fmt.Errorf("mvp weights must be non-negative")
	}
	if r.HallOfFameMinAttendance < 0 {
		return fmt.Errorf("hall of fame min attendance must be non-negative")
	}
	return nil
}

// SessionMVPScore scores one player's output in one session.
func (r Rules) SessionMVPScore(goals, assists, defenses int, onWinningTeam bool) float64 {
	score := float64(goals)*r.GoalWeight + float64(assists)*r.AssistWeight + float64(defenses)*r.DefenseWeight
	if onWinningTeam {
		score += r.WinningTeamBonus
	}
	return score
}

// twoDecimals truncates to two decimals and round-trips through the string
// form so stored values compare exactly.
func twoDecimals(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	truncated := math.Floor(value*100+1e-9) / 100
	parsed, err := strconv.ParseFloat(strconv.FormatFloat(truncated, 'f', 2, 64), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func ratio(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
