package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/riskibarqy/futsal-club/internal/domain/session"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
	"github.com/riskibarqy/futsal-club/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/futsal-club/internal/platform/logging"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type sequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

type failingInvalidator struct{}

func (failingInvalidator) Invalidate(context.Context, int) error {
	return errors.New("snapshot store unavailable")
}

var fixtureNow = time.Date(2025, time.March, 8, 19, 0, 0, 0, time.UTC)

// club wires every service over one set of memory repositories.
type club struct {
	players  *memory.PlayerRepository
	ratings  *memory.RatingRepository
	sessions *memory.SessionRepository
	teams    *memory.TeamRepository
	matches  *memory.MatchRepository
	events   *memory.MatchEventRepository
	stats    *memory.MatchStatRepository
	rankings *memory.RankingRepository

	playerService  *PlayerService
	ratingService  *RatingService
	rankingService *RankingService
	sessionService *SessionService
	teamService    *TeamService
	matchService   *MatchService
}

func newClub(t *testing.T) *club {
	t.Helper()
	return newClubWithInvalidator(t, nil)
}

// newClubWithInvalidator swaps the snapshot invalidator used by mutations;
// nil means the ranking service itself.
func newClubWithInvalidator(t *testing.T, invalidator SnapshotInvalidator) *club {
	t.Helper()

	logger := logging.NewNop()
	c := &club{
		players:  memory.NewPlayerRepository(memory.SeedPlayers()),
		ratings:  memory.NewRatingRepository(),
		sessions: memory.NewSessionRepository(),
		teams:    memory.NewTeamRepository(),
		rankings: memory.NewRankingRepository(),
	}
	c.matches, c.events, c.stats = memory.NewMatchRepositories()

	idGen := &sequenceIDGenerator{prefix: "id"}
	pipeline := NewPipeline(logger, nil)

	c.playerService = NewPlayerService(c.players, idGen)
	c.ratingService = NewRatingService(c.players, c.ratings, logger, nil)
	c.rankingService = NewRankingService(c.players, c.sessions, c.teams, c.matches, c.stats, c.rankings, ranking.DefaultRules(), logger, nil)
	if invalidator == nil {
		invalidator = c.rankingService
	}
	guestSkills := skill.Uniform(skill.FromTenScale(5))
	c.sessionService = NewSessionService(c.sessions, c.players, c.teams, invalidator, pipeline, idGen)
	c.teamService = NewTeamService(c.sessions, c.players, c.teams, c.matches, invalidator, pipeline, idGen, nil, guestSkills)
	c.matchService = NewMatchService(c.sessions, c.players, c.teams, c.matches, c.events, c.stats, invalidator, pipeline, idGen)

	now := func() time.Time { return fixtureNow }
	c.playerService.now = now
	c.ratingService.now = now
	c.rankingService.now = now
	c.sessionService.now = now
	c.teamService.now = now
	c.matchService.now = now
	return c
}

// sessionWithAttendance creates a session on date attended by the given
// seeded players plus guests.
func (c *club) sessionWithAttendance(t *testing.T, date time.Time, playerIDs []string, guests ...string) session.Session {
	t.Helper()

	item, err := c.sessionService.Create(t.Context(), CreateSessionInput{Date: date, Venue: "GOR Senayan"})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	refs := make([]player.Ref, 0, len(playerIDs)+len(guests))
	for _, id := range playerIDs {
		refs = append(refs, player.PlayerRef(id))
	}
	for _, name := range guests {
		refs = append(refs, player.GuestRef(name))
	}
	if _, err := c.sessionService.ReplaceAttendance(t.Context(), item.ID, refs); err != nil {
		t.Fatalf("replace attendance: %v", err)
	}
	return item
}

func seededPlayerIDs(n int) []string {
	out := make([]string, 0, n)
	for _, item := range memory.SeedPlayers()[:n] {
		out = append(out, item.ID)
	}
	return out
}
