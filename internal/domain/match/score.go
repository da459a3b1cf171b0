package match

// ScoreFromEvents counts GOAL events per side. Events for other teams are
// ignored.
func ScoreFromEvents(m Match, events []Event) (score1, score2 int) {
	for _, item := range events {
		if item.MatchID != m.ID || item.Type != EventGoal {
			continue
		}
		switch item.TeamID {
		case m.Team1ID:
			score1++
		case m.Team2ID:
			score2++
		}
	}
	return score1, score2
}

// PlayerStat is one registered player's output in one match.
type PlayerStat struct {
	MatchID  string
	PlayerID string
	TeamID   string
	Goals    int
	Assists  int
	Blocks   int
}

// BuildPlayerStats rebuilds the per-player rows of a match from scratch.
// Assists only come from GOAL events; guests get no row. Rows keep the order
// in which players first appear.
func BuildPlayerStats(matchID string, events []Event) []PlayerStat {
	index := make(map[string]int)
	out := make([]PlayerStat, 0)
	row := func(playerID, teamID string) *PlayerStat {
		if idx, ok := index[playerID]; ok {
			return &out[idx]
		}
		index[playerID] = len(out)
		out = append(out, PlayerStat{MatchID: matchID, PlayerID: playerID, TeamID: teamID})
		return &out[len(out)-1]
	}

	for _, item := range events {
		if item.MatchID != matchID {
			continue
		}
		switch item.Type {
		case EventGoal:
			if !item.Actor.IsGuest() {
				row(item.Actor.PlayerID, item.TeamID).Goals++
			}
			if item.AssisterID != "" {
				row(item.AssisterID, item.TeamID).Assists++
			}
		case EventDefense:
			if !item.Actor.IsGuest() {
				row(item.Actor.PlayerID, item.TeamID).Blocks++
			}
		}
	}
	return out
}
