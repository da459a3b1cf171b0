package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/match"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/session"
	"github.com/riskibarqy/futsal-club/internal/domain/standing"
	"github.com/riskibarqy/futsal-club/internal/domain/team"
	"github.com/riskibarqy/futsal-club/internal/platform/id"
)

type MatchService struct {
	sessionRepo session.Repository
	playerRepo  player.Repository
	teamRepo    team.Repository
	matchRepo   match.Repository
	eventRepo   match.EventRepository
	statRepo    match.StatRepository
	invalidator SnapshotInvalidator
	pipeline    Pipeline
	idGen       id.Generator
	now         func() time.Time
}

func NewMatchService(
	sessionRepo session.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	eventRepo match.EventRepository,
	statRepo match.StatRepository,
	invalidator SnapshotInvalidator,
	pipeline Pipeline,
	idGen id.Generator,
) *MatchService {
	return &MatchService{
		sessionRepo: sessionRepo,
		playerRepo:  playerRepo,
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		eventRepo:   eventRepo,
		statRepo:    statRepo,
		invalidator: invalidator,
		pipeline:    pipeline,
		idGen:       idGen,
		now:         time.Now,
	}
}

type AddEventInput struct {
	MatchID    string
	Type       string
	TeamID     string
	PlayerID   string
	GuestName  string
	AssisterID string
	Minute     int
}

// EventMutation reports the primary event write separately from the derived
// data work that followed it. Match holds the score as stored afterwards.
type EventMutation struct {
	Event   match.Event
	Match   match.Match
	Effects SecondaryEffects
}

// MatchMutation is a direct match update and its secondary effects.
type MatchMutation struct {
	Match   match.Match
	Effects SecondaryEffects
}

// FixtureResult is a regenerated schedule.
type FixtureResult struct {
	Matches []match.Match
	Effects SecondaryEffects
}

// GenerateFixtures replaces the session schedule from its current teams.
// Events and stats of the dropped matches go with them.
func (s *MatchService) GenerateFixtures(ctx context.Context, sessionID string) (FixtureResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GenerateFixtures")
	defer span.End()

	item, err := loadSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return FixtureResult{}, err
	}
	teams, err := s.teamRepo.ListBySession(ctx, item.ID)
	if err != nil {
		return FixtureResult{}, fmt.Errorf("list teams: %w", err)
	}
	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	matches, err := buildFixtureMatches(item.ID, teamIDs, s.idGen, s.now().UTC())
	if err != nil {
		return FixtureResult{}, err
	}
	if err := s.matchRepo.ReplaceBySession(ctx, item.ID, matches); err != nil {
		return FixtureResult{}, fmt.Errorf("replace fixtures: %w", err)
	}

	effects := s.pipeline.Run(ctx, invalidationStep(s.invalidator, item.Year()))
	return FixtureResult{Matches: matches, Effects: effects}, nil
}

func (s *MatchService) ListBySession(ctx context.Context, sessionID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListBySession")
	defer span.End()

	item, err := loadSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListBySession(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (s *MatchService) ListEvents(ctx context.Context, matchID string) ([]match.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListEvents")
	defer span.End()

	m, err := s.match(ctx, matchID)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Standings computes the session table from its completed matches.
func (s *MatchService) Standings(ctx context.Context, sessionID string) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Standings")
	defer span.End()

	item, err := loadSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListBySession(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	matches, err := s.matchRepo.ListBySession(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}
	return standing.Compute(teamIDs, matches), nil
}

// AddEvent appends an event, then recomputes the score, rebuilds the
// player stats and drops the season snapshot, in that order.
func (s *MatchService) AddEvent(ctx context.Context, input AddEventInput) (EventMutation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AddEvent")
	defer span.End()

	m, err := s.match(ctx, input.MatchID)
	if err != nil {
		return EventMutation{}, err
	}
	eventType, err := match.ParseEventType(input.Type)
	if err != nil {
		return EventMutation{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	event := match.Event{
		MatchID:    m.ID,
		Type:       eventType,
		TeamID:     strings.TrimSpace(input.TeamID),
		Actor:      player.Ref{PlayerID: strings.TrimSpace(input.PlayerID), GuestName: strings.TrimSpace(input.GuestName)},
		AssisterID: strings.TrimSpace(input.AssisterID),
		Minute:     input.Minute,
		CreatedAt:  s.now().UTC(),
	}
	if err := event.ValidateFor(m); err != nil {
		return EventMutation{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	registered := make([]string, 0, 2)
	if !event.Actor.IsGuest() {
		registered = append(registered, event.Actor.PlayerID)
	}
	if event.AssisterID != "" {
		registered = append(registered, event.AssisterID)
	}
	if err := ensurePlayersExist(ctx, s.playerRepo, registered); err != nil {
		return EventMutation{}, err
	}
	year, err := s.seasonOf(ctx, m)
	if err != nil {
		return EventMutation{}, err
	}

	event.ID, err = s.idGen.NewID()
	if err != nil {
		return EventMutation{}, fmt.Errorf("generate event id: %w", err)
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return EventMutation{}, fmt.Errorf("create match event: %w", err)
	}

	return s.afterEventChange(ctx, m, year, event), nil
}

// DeleteEvent removes an event and rebuilds everything derived from the
// remaining events of its match.
func (s *MatchService) DeleteEvent(ctx context.Context, matchID, eventID string) (EventMutation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.DeleteEvent")
	defer span.End()

	m, err := s.match(ctx, matchID)
	if err != nil {
		return EventMutation{}, err
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return EventMutation{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	event, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return EventMutation{}, fmt.Errorf("get match event: %w", err)
	}
	if !exists || event.MatchID != m.ID {
		return EventMutation{}, fmt.Errorf("%w: event=%s match=%s", ErrNotFound, eventID, m.ID)
	}
	year, err := s.seasonOf(ctx, m)
	if err != nil {
		return EventMutation{}, err
	}

	deleted, err := s.eventRepo.Delete(ctx, eventID)
	if err != nil {
		return EventMutation{}, fmt.Errorf("delete match event: %w", err)
	}
	if !deleted {
		return EventMutation{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	return s.afterEventChange(ctx, m, year, event), nil
}

// OverrideScore sets the score by hand. The next event change on the match
// derives it from events again.
func (s *MatchService) OverrideScore(ctx context.Context, matchID string, score1, score2 int) (MatchMutation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.OverrideScore")
	defer span.End()

	if score1 < 0 || score2 < 0 {
		return MatchMutation{}, fmt.Errorf("%w: scores must be non-negative", ErrInvalidInput)
	}
	m, err := s.match(ctx, matchID)
	if err != nil {
		return MatchMutation{}, err
	}
	year, err := s.seasonOf(ctx, m)
	if err != nil {
		return MatchMutation{}, err
	}
	if err := s.matchRepo.UpdateScore(ctx, m.ID, score1, score2); err != nil {
		return MatchMutation{}, fmt.Errorf("update match score: %w", err)
	}
	m.Score1, m.Score2 = score1, score2

	return s.afterMatchChange(ctx, m, year), nil
}

// UpdateStatus moves a match through pending, playing and completed.
// A completed match may be reopened to playing for corrections.
func (s *MatchService) UpdateStatus(ctx context.Context, matchID, status string) (MatchMutation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateStatus")
	defer span.End()

	next, err := match.ParseStatus(status)
	if err != nil {
		return MatchMutation{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	m, err := s.match(ctx, matchID)
	if err != nil {
		return MatchMutation{}, err
	}
	if !statusTransitionAllowed(m.Status, next) {
		return MatchMutation{}, fmt.Errorf("%w: match %s cannot go from %s to %s", ErrConflict, m.ID, m.Status, next)
	}
	year, err := s.seasonOf(ctx, m)
	if err != nil {
		return MatchMutation{}, err
	}

	if err := s.matchRepo.UpdateStatus(ctx, m.ID, next); err != nil {
		return MatchMutation{}, fmt.Errorf("update match status: %w", err)
	}
	m.Status = next

	return s.afterMatchChange(ctx, m, year), nil
}

func statusTransitionAllowed(from, to match.Status) bool {
	switch from {
	case match.StatusPending:
		return to == match.StatusPlaying || to == match.StatusCompleted
	case match.StatusPlaying:
		return to == match.StatusCompleted || to == match.StatusPending
	case match.StatusCompleted:
		return to == match.StatusPlaying
	default:
		return false
	}
}

// afterEventChange runs once the event write is stored and never fails the
// caller; year is resolved before that write.
func (s *MatchService) afterEventChange(ctx context.Context, m match.Match, year int, event match.Event) EventMutation {
	effects := s.pipeline.Run(ctx,
		Step{Name: StepScoreRecompute, Run: func(ctx context.Context) error {
			return s.recomputeScore(ctx, m)
		}},
		Step{Name: StepStatRebuild, Run: func(ctx context.Context) error {
			return s.rebuildStats(ctx, m.ID)
		}},
		invalidationStep(s.invalidator, year),
	)

	current, exists, err := s.matchRepo.GetByID(ctx, m.ID)
	if err != nil || !exists {
		current = m
	}
	return EventMutation{Event: event, Match: current, Effects: effects}
}

func (s *MatchService) afterMatchChange(ctx context.Context, m match.Match, year int) MatchMutation {
	effects := s.pipeline.Run(ctx, invalidationStep(s.invalidator, year))
	return MatchMutation{Match: m, Effects: effects}
}

func (s *MatchService) recomputeScore(ctx context.Context, m match.Match) error {
	events, err := s.eventRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("list match events: %w", err)
	}
	score1, score2 := match.ScoreFromEvents(m, events)
	if err := s.matchRepo.UpdateScore(ctx, m.ID, score1, score2); err != nil {
		return fmt.Errorf("update match score: %w", err)
	}
	return nil
}

func (s *MatchService) rebuildStats(ctx context.Context, matchID string) error {
	events, err := s.eventRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("list match events: %w", err)
	}
	if err := s.statRepo.ReplaceByMatch(ctx, matchID, match.BuildPlayerStats(matchID, events)); err != nil {
		return fmt.Errorf("replace player stats: %w", err)
	}
	return nil
}

func (s *MatchService) seasonOf(ctx context.Context, m match.Match) (int, error) {
	item, err := loadSession(ctx, s.sessionRepo, m.SessionID)
	if err != nil {
		return 0, err
	}
	return item.Year(), nil
}

func (s *MatchService) match(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return m, nil
}
