package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/match"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/session"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
	"github.com/riskibarqy/futsal-club/internal/domain/team"
	"github.com/riskibarqy/futsal-club/internal/platform/id"
	"github.com/riskibarqy/futsal-club/internal/platform/metrics"
)

type TeamService struct {
	sessionRepo session.Repository
	playerRepo  player.Repository
	teamRepo    team.Repository
	matchRepo   match.Repository
	invalidator SnapshotInvalidator
	pipeline    Pipeline
	idGen       id.Generator
	metrics     *metrics.Recorder
	guestSkills skill.Vector
	now         func() time.Time
}

func NewTeamService(
	sessionRepo session.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	invalidator SnapshotInvalidator,
	pipeline Pipeline,
	idGen id.Generator,
	recorder *metrics.Recorder,
	guestSkills skill.Vector,
) *TeamService {
	return &TeamService{
		sessionRepo: sessionRepo,
		playerRepo:  playerRepo,
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		invalidator: invalidator,
		pipeline:    pipeline,
		idGen:       idGen,
		metrics:     recorder,
		guestSkills: guestSkills,
		now:         time.Now,
	}
}

// TeamSetResult is a replaced team set with the fixtures regenerated for it.
type TeamSetResult struct {
	Teams        []team.Team
	BalanceScore float64
	Matches      []match.Match
	Effects      SecondaryEffects
}

type TeamInput struct {
	Name      string
	VestColor string
	Members   []player.Ref
}

// Balance splits the session attendance into teamCount teams, replaces the
// session's teams and regenerates its fixtures.
func (s *TeamService) Balance(ctx context.Context, sessionID string, teamCount int) (TeamSetResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Balance")
	defer span.End()

	if err := team.ValidateTeamCount(teamCount); err != nil {
		return TeamSetResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	item, err := loadSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return TeamSetResult{}, err
	}

	attendance, err := s.sessionRepo.ListAttendance(ctx, item.ID)
	if err != nil {
		return TeamSetResult{}, fmt.Errorf("list attendance: %w", err)
	}
	if len(attendance) < teamCount {
		return TeamSetResult{}, fmt.Errorf("%w: %d attendees cannot fill %d teams", ErrInvalidInput, len(attendance), teamCount)
	}

	candidates, err := s.candidates(ctx, attendance)
	if err != nil {
		return TeamSetResult{}, err
	}
	groups, err := team.Balance(candidates, teamCount)
	if err != nil {
		return TeamSetResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	teams, err := team.Build(item.ID, groups, s.idGen.NewID)
	if err != nil {
		return TeamSetResult{}, err
	}

	score := team.BalanceScore(groups)
	s.metrics.ObserveBalanceScore(score)
	return s.replace(ctx, item, teams, score)
}

// ReplaceTeams stores a hand-edited team set. Type and key player are
// derived from the members' skills, as for balanced teams.
func (s *TeamService) ReplaceTeams(ctx context.Context, sessionID string, inputs []TeamInput) (TeamSetResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ReplaceTeams")
	defer span.End()

	if err := team.ValidateTeamCount(len(inputs)); err != nil {
		return TeamSetResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	item, err := loadSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return TeamSetResult{}, err
	}

	groups := make([][]team.Candidate, 0, len(inputs))
	for idx, input := range inputs {
		if len(input.Members) == 0 {
			return TeamSetResult{}, fmt.Errorf("%w: team %d has no members", ErrInvalidInput, idx+1)
		}
		for _, ref := range input.Members {
			if err := ref.Validate(); err != nil {
				return TeamSetResult{}, fmt.Errorf("%w: team %d: %v", ErrInvalidInput, idx+1, err)
			}
		}
		members, err := s.candidates(ctx, input.Members)
		if err != nil {
			return TeamSetResult{}, err
		}
		groups = append(groups, members)
	}

	teams, err := team.Build(item.ID, groups, s.idGen.NewID)
	if err != nil {
		return TeamSetResult{}, err
	}
	for idx, input := range inputs {
		if name := strings.TrimSpace(input.Name); name != "" {
			teams[idx].Name = name
		}
		if color := strings.TrimSpace(input.VestColor); color != "" {
			teams[idx].VestColor = strings.ToLower(color)
		}
	}
	if err := team.ValidateRoster(teams); err != nil {
		return TeamSetResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.replace(ctx, item, teams, team.BalanceScore(groups))
}

func (s *TeamService) ListBySession(ctx context.Context, sessionID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListBySession")
	defer span.End()

	item, err := loadSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListBySession(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) replace(ctx context.Context, item session.Session, teams []team.Team, score float64) (TeamSetResult, error) {
	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}
	matches, err := buildFixtureMatches(item.ID, teamIDs, s.idGen, s.now().UTC())
	if err != nil {
		return TeamSetResult{}, err
	}

	if err := s.teamRepo.ReplaceBySession(ctx, item.ID, teams); err != nil {
		return TeamSetResult{}, fmt.Errorf("replace teams: %w", err)
	}
	if err := s.matchRepo.ReplaceBySession(ctx, item.ID, matches); err != nil {
		return TeamSetResult{}, fmt.Errorf("replace fixtures: %w", err)
	}

	effects := s.pipeline.Run(ctx, invalidationStep(s.invalidator, item.Year()))
	return TeamSetResult{Teams: teams, BalanceScore: score, Matches: matches, Effects: effects}, nil
}

// candidates attaches skills to each attendee. Guests, and registered
// players flagged as guests, use the configured guest vector.
func (s *TeamService) candidates(ctx context.Context, refs []player.Ref) ([]team.Candidate, error) {
	playerIDs := make([]string, 0, len(refs))
	for _, ref := range refs {
		if !ref.IsGuest() {
			playerIDs = append(playerIDs, ref.PlayerID)
		}
	}

	skillsByID := make(map[string]skill.Vector, len(playerIDs))
	if len(playerIDs) > 0 {
		players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, fmt.Errorf("get players: %w", err)
		}
		for _, item := range players {
			if item.IsGuest {
				skillsByID[item.ID] = s.guestSkills
				continue
			}
			skillsByID[item.ID] = item.Skills
		}
	}

	out := make([]team.Candidate, 0, len(refs))
	for _, ref := range refs {
		if ref.IsGuest() {
			out = append(out, team.Candidate{Ref: ref, Skills: s.guestSkills})
			continue
		}
		skills, ok := skillsByID[ref.PlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: player=%s", ErrNotFound, ref.PlayerID)
		}
		out = append(out, team.Candidate{Ref: ref, Skills: skills})
	}
	return out, nil
}

func buildFixtureMatches(sessionID string, teamIDs []string, idGen id.Generator, now time.Time) ([]match.Match, error) {
	fixtures, err := match.GenerateFixtures(teamIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	out := make([]match.Match, 0, len(fixtures))
	for _, fixture := range fixtures {
		matchID, err := idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate match id: %w", err)
		}
		out = append(out, match.Match{
			ID:        matchID,
			SessionID: sessionID,
			MatchNo:   fixture.MatchNo,
			Team1ID:   fixture.Team1ID,
			Team2ID:   fixture.Team2ID,
			Status:    match.StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out, nil
}
