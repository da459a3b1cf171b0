package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/riskibarqy/futsal-club/internal/platform/logging"
)

// playedSession runs one completed match won 1-0 by team A, with plr-001
// scoring from plr-002's assist and plr-004 blocking for team B.
func playedSession(t *testing.T, c *club) TeamSetResult {
	t.Helper()

	set := twoTeamSession(t, c)
	m := set.Matches[0]
	if _, err := c.matchService.AddEvent(t.Context(), AddEventInput{
		MatchID: m.ID, Type: "GOAL", TeamID: m.Team1ID, PlayerID: "plr-001", AssisterID: "plr-002", Minute: 3,
	}); err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if _, err := c.matchService.AddEvent(t.Context(), AddEventInput{
		MatchID: m.ID, Type: "DEFENSE", TeamID: m.Team2ID, PlayerID: "plr-004", Minute: 5,
	}); err != nil {
		t.Fatalf("add defense: %v", err)
	}
	if _, err := c.matchService.UpdateStatus(t.Context(), m.ID, "completed"); err != nil {
		t.Fatalf("complete match: %v", err)
	}
	return set
}

func TestRankingService_GetCompilesMissingSnapshot(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	playedSession(t, c)

	snapshot, err := c.rankingService.Get(t.Context(), 2025)
	if err != nil {
		t.Fatalf("get ranking: %v", err)
	}
	if snapshot.RefreshedBy != systemRefresher || !snapshot.RefreshedAt.Equal(fixtureNow) {
		t.Fatalf("unexpected refresh metadata: %s %v", snapshot.RefreshedBy, snapshot.RefreshedAt)
	}
	if len(snapshot.Entries) == 0 || snapshot.Entries[0].PlayerID != "plr-001" {
		t.Fatalf("expected plr-001 on top, got %+v", snapshot.Entries)
	}

	top := snapshot.Entries[0]
	// goal 2 + winning team 1.5
	if top.Goals != 1 || top.MVPScore != 3.5 || top.SessionWins != 1 || top.WinRate != 100 {
		t.Fatalf("unexpected top entry: %+v", top)
	}
	blocker, ok := snapshot.Find("plr-004")
	if !ok || blocker.Defenses != 1 || blocker.MVPScore != 0.5 || blocker.Lost != 1 {
		t.Fatalf("unexpected blocker entry: %+v", blocker)
	}

	if _, exists, _ := c.rankings.Get(t.Context(), 2025); !exists {
		t.Fatalf("compiled snapshot should be stored")
	}
}

func TestRankingService_ReturnedSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	set := playedSession(t, c)

	before, err := c.rankingService.Get(t.Context(), 2025)
	if err != nil {
		t.Fatalf("get ranking: %v", err)
	}
	before.Entries[0].Goals = 99

	m := set.Matches[0]
	if _, err := c.matchService.AddEvent(t.Context(), AddEventInput{
		MatchID: m.ID, Type: "GOAL", TeamID: m.Team1ID, PlayerID: "plr-001", Minute: 9,
	}); err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if _, exists, _ := c.rankings.Get(t.Context(), 2025); exists {
		t.Fatalf("event change should drop the snapshot")
	}

	after, err := c.rankingService.Get(t.Context(), 2025)
	if err != nil {
		t.Fatalf("get ranking: %v", err)
	}
	top, _ := after.Find("plr-001")
	if top.Goals != 2 {
		t.Fatalf("expected recompiled goals 2, got %d", top.Goals)
	}
	if before.Entries[0].Goals != 99 {
		t.Fatalf("earlier copy must not change")
	}
}

func TestRankingService_RefreshAndLeaderboard(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	playedSession(t, c)

	snapshot, err := c.rankingService.Refresh(t.Context(), 2025, " plr-001 ")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if snapshot.RefreshedBy != "plr-001" {
		t.Fatalf("unexpected refreshed by %q", snapshot.RefreshedBy)
	}

	board, err := c.rankingService.Leaderboard(t.Context(), 2025, "assists", 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board) != 1 || board[0].PlayerID != "plr-002" {
		t.Fatalf("expected only plr-002 on assists board, got %+v", board)
	}

	if _, err := c.rankingService.Leaderboard(t.Context(), 2025, "tackles", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown category, got %v", err)
	}
	if _, err := c.rankingService.Get(t.Context(), 1899); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for year, got %v", err)
	}
}

func TestRankingService_EmptySeason(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	snapshot, err := c.rankingService.Get(t.Context(), 2030)
	if err != nil {
		t.Fatalf("get empty season: %v", err)
	}
	for _, item := range snapshot.Entries {
		if item.Attendance != 0 || item.MVPScore != 0 {
			t.Fatalf("empty season must have zero entries, got %+v", item)
		}
	}
}

func TestRankingService_HallOfFame(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	playedSession(t, c)

	honors, err := c.rankingService.HallOfFame(t.Context())
	if err != nil {
		t.Fatalf("hall of fame: %v", err)
	}
	if len(honors) != 0 {
		t.Fatalf("nobody reaches the default attendance threshold, got %+v", honors)
	}

	rules := ranking.DefaultRules()
	rules.HallOfFameMinAttendance = 1
	lenient := NewRankingService(c.players, c.sessions, c.teams, c.matches, c.stats, c.rankings, rules, logging.NewNop(), nil)

	honors, err = lenient.HallOfFame(t.Context())
	if err != nil {
		t.Fatalf("hall of fame: %v", err)
	}
	if len(honors) == 0 || honors[0].Category != ranking.CategoryMVPScore || honors[0].Year != 2025 {
		t.Fatalf("expected mvp-score honor first, got %+v", honors)
	}
	if len(honors[0].Holders) != 1 || honors[0].Holders[0].PlayerID != "plr-001" {
		t.Fatalf("unexpected mvp holders: %+v", honors[0].Holders)
	}
}
