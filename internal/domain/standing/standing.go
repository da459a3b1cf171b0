package standing

import (
	"sort"

	"github.com/riskibarqy/futsal-club/internal/domain/match"
)

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// Row is one team's line in a session table.
type Row struct {
	TeamID       string `json:"teamId"`
	Position     int    `json:"position"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	Points       int    `json:"points"`
}

func (r Row) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}

// Compute builds the table for teamIDs from completed matches. Rows are
// ordered by points, then goals for, then the order of teamIDs.
func Compute(teamIDs []string, matches []match.Match) []Row {
	rows := make([]Row, len(teamIDs))
	index := make(map[string]int, len(teamIDs))
	for idx, teamID := range teamIDs {
		rows[idx] = Row{TeamID: teamID}
		index[teamID] = idx
	}

	for _, item := range matches {
		if !item.IsCompleted() {
			continue
		}
		home, okHome := index[item.Team1ID]
		away, okAway := index[item.Team2ID]
		if okHome {
			applyResult(&rows[home], item.Score1, item.Score2)
		}
		if okAway {
			applyResult(&rows[away], item.Score2, item.Score1)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})
	for idx := range rows {
		rows[idx].Position = idx + 1
	}
	return rows
}

func applyResult(row *Row, goalsFor, goalsAgainst int) {
	row.Played++
	row.GoalsFor += goalsFor
	row.GoalsAgainst += goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		row.Won++
		row.Points += PointsWin
	case goalsFor == goalsAgainst:
		row.Drawn++
		row.Points += PointsDraw
	default:
		row.Lost++
		row.Points += PointsLoss
	}
}

// WinningTeam returns the top team of the session table. ok is false when no
// team has played a completed match.
func WinningTeam(teamIDs []string, matches []match.Match) (string, bool) {
	rows := Compute(teamIDs, matches)
	if len(rows) == 0 || rows[0].Played == 0 {
		return "", false
	}
	return rows[0].TeamID, true
}

// Positions maps each team to its 1-based table position.
func Positions(rows []Row) map[string]int {
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.TeamID] = row.Position
	}
	return out
}
