package ranking

import (
	"sort"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/match"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/session"
	"github.com/riskibarqy/futsal-club/internal/domain/standing"
	"github.com/riskibarqy/futsal-club/internal/domain/team"
)

// SessionData is everything recorded for one session of the season.
type SessionData struct {
	Session    session.Session
	Attendance []player.Ref
	Teams      []team.Team
	Matches    []match.Match
	Stats      []match.PlayerStat
}

// Input is the raw season data a snapshot is compiled from.
type Input struct {
	Year        int
	Players     []player.Player
	Sessions    []SessionData
	RefreshedAt time.Time
	RefreshedBy string
}

type accumulator struct {
	entry     Entry
	record    standing.Record
	withEvent map[string]struct{}
}

// Compile folds a season into a snapshot. Guests are skipped; players with no
// recorded activity still get a zero line.
func Compile(in Input, rules Rules) Snapshot {
	order := make([]string, 0, len(in.Players))
	acc := make(map[string]*accumulator, len(in.Players))
	for _, item := range in.Players {
		if item.IsGuest {
			continue
		}
		if _, exists := acc[item.ID]; exists {
			continue
		}
		order = append(order, item.ID)
		acc[item.ID] = &accumulator{
			entry:     Entry{PlayerID: item.ID, Name: item.Name},
			withEvent: make(map[string]struct{}),
		}
	}

	for _, data := range in.Sessions {
		if data.Session.Year() != in.Year {
			continue
		}
		compileSession(data, rules, acc)
	}

	entries := make([]Entry, 0, len(order))
	for _, playerID := range order {
		item := acc[playerID]
		item.entry.Games = item.record.Games
		item.entry.Won = item.record.Won
		item.entry.Drawn = item.record.Drawn
		item.entry.Lost = item.record.Lost
		item.entry.Points = item.record.Points
		item.entry.MatchesWithEvents = len(item.withEvent)
		item.entry.PPM = twoDecimals(ratio(item.entry.Points, item.entry.Games))
		item.entry.WinRate = twoDecimals(ratio(item.entry.SessionWins, item.entry.Attendance) * 100)
		item.entry.MVPScore = twoDecimals(item.entry.MVPScore)
		entries = append(entries, item.entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].MVPScore > entries[j].MVPScore
	})

	return Snapshot{
		Year:        in.Year,
		Entries:     entries,
		RefreshedAt: in.RefreshedAt,
		RefreshedBy: in.RefreshedBy,
	}
}

func compileSession(data SessionData, rules Rules, acc map[string]*accumulator) {
	teamIDs := make([]string, 0, len(data.Teams))
	teamOf := make(map[string]string)
	for _, item := range data.Teams {
		teamIDs = append(teamIDs, item.ID)
		for _, member := range item.Members {
			if member.IsGuest() {
				continue
			}
			if _, assigned := teamOf[member.PlayerID]; !assigned {
				teamOf[member.PlayerID] = item.ID
			}
		}
	}

	attended := make(map[string]struct{})
	for _, ref := range data.Attendance {
		if !ref.IsGuest() && ref.PlayerID != "" {
			attended[ref.PlayerID] = struct{}{}
		}
	}
	for playerID := range teamOf {
		attended[playerID] = struct{}{}
	}

	rows := standing.Compute(teamIDs, data.Matches)
	positions := standing.Positions(rows)
	winner, decided := standing.WinningTeam(teamIDs, data.Matches)

	type sessionTotals struct{ goals, assists, defenses int }
	totals := make(map[string]*sessionTotals)
	for _, stat := range data.Stats {
		item, ok := acc[stat.PlayerID]
		if !ok {
			continue
		}
		item.entry.Goals += stat.Goals
		item.entry.Assists += stat.Assists
		item.entry.Defenses += stat.Blocks
		if stat.Goals+stat.Assists+stat.Blocks > 0 {
			item.withEvent[stat.MatchID] = struct{}{}
		}
		t, exists := totals[stat.PlayerID]
		if !exists {
			t = &sessionTotals{}
			totals[stat.PlayerID] = t
		}
		t.goals += stat.Goals
		t.assists += stat.Assists
		t.defenses += stat.Blocks
	}

	for playerID, item := range acc {
		_, present := attended[playerID]
		if present {
			item.entry.Attendance++
		}
		if data.Session.MVPPlayerID == playerID {
			item.entry.MVPCount++
		}

		teamID, onTeam := teamOf[playerID]
		onWinningTeam := onTeam && decided && teamID == winner
		if onTeam {
			item.record.Add(standing.MembershipRecord(teamID, data.Matches))
			if decided {
				switch positions[teamID] {
				case 1:
					item.entry.FirstPlaces++
				case 2:
					item.entry.SecondPlaces++
				case 3:
					item.entry.ThirdPlaces++
				}
			}
			if onWinningTeam && present {
				item.entry.SessionWins++
			}
		}

		if t, ok := totals[playerID]; ok || onWinningTeam {
			if t == nil {
				t = &sessionTotals{}
			}
			item.entry.MVPScore += rules.SessionMVPScore(t.goals, t.assists, t.defenses, onWinningTeam)
		}
	}
}
