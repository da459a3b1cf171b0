package standing

import "github.com/riskibarqy/futsal-club/internal/domain/match"

// Record is a player's result line derived from the teams they played for,
// not from the events they authored.
type Record struct {
	Games  int
	Won    int
	Drawn  int
	Lost   int
	Points int
}

func (r *Record) Add(other Record) {
	r.Games += other.Games
	r.Won += other.Won
	r.Drawn += other.Drawn
	r.Lost += other.Lost
	r.Points += other.Points
}

// MembershipRecord counts the distinct completed matches in which teamID took
// part and their outcome for that team.
func MembershipRecord(teamID string, matches []match.Match) Record {
	var out Record
	seen := make(map[string]struct{}, len(matches))
	for _, item := range matches {
		if !item.IsCompleted() {
			continue
		}
		goalsFor, goalsAgainst, ok := item.Result(teamID)
		if !ok {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}

		out.Games++
		switch {
		case goalsFor > goalsAgainst:
			out.Won++
			out.Points += PointsWin
		case goalsFor == goalsAgainst:
			out.Drawn++
			out.Points += PointsDraw
		default:
			out.Lost++
		}
	}
	return out
}
