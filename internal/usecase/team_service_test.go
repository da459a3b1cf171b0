package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/futsal-club/internal/domain/match"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
)

func TestTeamService_BalanceReplacesTeamsAndFixtures(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	item := c.sessionWithAttendance(t, fixtureNow, seededPlayerIDs(11), "Budi")

	got, err := c.teamService.Balance(t.Context(), item.ID, 2)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if len(got.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(got.Teams))
	}
	for _, tm := range got.Teams {
		if len(tm.Members) != 6 {
			t.Fatalf("team %s has %d members, want 6", tm.Name, len(tm.Members))
		}
		if tm.KeyPlayer == nil {
			t.Fatalf("team %s has no key player", tm.Name)
		}
	}
	if got.BalanceScore <= 0 || got.BalanceScore > 100 {
		t.Fatalf("unexpected balance score %.2f", got.BalanceScore)
	}
	if len(got.Matches) != 6 {
		t.Fatalf("expected 6 fixtures, got %d", len(got.Matches))
	}
	for idx, m := range got.Matches {
		if m.MatchNo != idx+1 || m.Status != match.StatusPending {
			t.Fatalf("unexpected fixture %d: %+v", idx, m)
		}
	}

	stored, err := c.teamService.ListBySession(t.Context(), item.ID)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(stored) != 2 || stored[0].ID != got.Teams[0].ID {
		t.Fatalf("teams not persisted: %+v", stored)
	}
}

func TestTeamService_BalanceValidation(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	item := c.sessionWithAttendance(t, fixtureNow, seededPlayerIDs(2))

	if _, err := c.teamService.Balance(t.Context(), item.ID, 4); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for team count 4, got %v", err)
	}
	if _, err := c.teamService.Balance(t.Context(), item.ID, 3); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for too few attendees, got %v", err)
	}
	if _, err := c.teamService.Balance(t.Context(), "missing", 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_RebalanceDropsOldEvents(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	item := c.sessionWithAttendance(t, fixtureNow, seededPlayerIDs(6))

	first, err := c.teamService.Balance(t.Context(), item.ID, 2)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	m := first.Matches[0]
	scorer := first.Teams[0].Members[0]
	if _, err := c.matchService.AddEvent(t.Context(), AddEventInput{
		MatchID:  m.ID,
		Type:     "goal",
		TeamID:   m.Team1ID,
		PlayerID: scorer.PlayerID,
	}); err != nil {
		t.Fatalf("add event: %v", err)
	}

	if _, err := c.teamService.Balance(t.Context(), item.ID, 3); err != nil {
		t.Fatalf("rebalance: %v", err)
	}
	if _, exists, _ := c.matches.GetByID(t.Context(), m.ID); exists {
		t.Fatalf("old fixture should be gone")
	}
	events, _ := c.events.ListByMatches(t.Context(), []string{m.ID})
	stats, _ := c.stats.ListByMatch(t.Context(), m.ID)
	if len(events) != 0 || len(stats) != 0 {
		t.Fatalf("old events and stats should be gone: events=%d stats=%d", len(events), len(stats))
	}
	matches, _ := c.matches.ListBySession(t.Context(), item.ID)
	if len(matches) != 9 {
		t.Fatalf("expected 9 fixtures for three teams, got %d", len(matches))
	}
}

func TestTeamService_ReplaceTeams(t *testing.T) {
	t.Parallel()

	c := newClub(t)
	item := c.sessionWithAttendance(t, fixtureNow, seededPlayerIDs(4))

	got, err := c.teamService.ReplaceTeams(t.Context(), item.ID, []TeamInput{
		{Name: "Lions", VestColor: "Green", Members: []player.Ref{player.PlayerRef("plr-001"), player.PlayerRef("plr-002")}},
		{Members: []player.Ref{player.PlayerRef("plr-003"), player.GuestRef("Budi")}},
	})
	if err != nil {
		t.Fatalf("replace teams: %v", err)
	}
	if got.Teams[0].Name != "Lions" || got.Teams[0].VestColor != "green" {
		t.Fatalf("expected custom name and vest, got %+v", got.Teams[0])
	}
	if got.Teams[1].Name != "Team B" || got.Teams[1].VestColor != "blue" {
		t.Fatalf("expected default name and vest, got %+v", got.Teams[1])
	}
	if len(got.Matches) != 6 {
		t.Fatalf("expected regenerated fixtures, got %d", len(got.Matches))
	}

	_, err = c.teamService.ReplaceTeams(t.Context(), item.ID, []TeamInput{
		{Members: []player.Ref{player.PlayerRef("plr-001")}},
		{Members: []player.Ref{player.PlayerRef("plr-001")}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for player on two teams, got %v", err)
	}

	_, err = c.teamService.ReplaceTeams(t.Context(), item.ID, []TeamInput{
		{Members: []player.Ref{player.PlayerRef("plr-001")}},
		{Members: []player.Ref{player.PlayerRef("ghost")}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
}
