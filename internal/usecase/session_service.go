package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/session"
	"github.com/riskibarqy/futsal-club/internal/domain/team"
	"github.com/riskibarqy/futsal-club/internal/platform/id"
)

type SessionService struct {
	sessionRepo session.Repository
	playerRepo  player.Repository
	teamRepo    team.Repository
	invalidator SnapshotInvalidator
	pipeline    Pipeline
	idGen       id.Generator
	now         func() time.Time
}

func NewSessionService(
	sessionRepo session.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	invalidator SnapshotInvalidator,
	pipeline Pipeline,
	idGen id.Generator,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		playerRepo:  playerRepo,
		teamRepo:    teamRepo,
		invalidator: invalidator,
		pipeline:    pipeline,
		idGen:       idGen,
		now:         time.Now,
	}
}

type CreateSessionInput struct {
	Date  time.Time
	Venue string
}

// SessionDetail is a session with its current roster.
type SessionDetail struct {
	Session    session.Session
	Attendance []player.Ref
	Teams      []team.Team
}

// SessionMutation pairs a session write with its secondary effects.
type SessionMutation struct {
	Session    session.Session
	Attendance []player.Ref
	Effects    SecondaryEffects
}

func (s *SessionService) Create(ctx context.Context, input CreateSessionInput) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Create")
	defer span.End()

	sessionID, err := s.idGen.NewID()
	if err != nil {
		return session.Session{}, fmt.Errorf("generate session id: %w", err)
	}

	now := s.now().UTC()
	item := session.Session{
		ID:        sessionID,
		Date:      input.Date.UTC(),
		Venue:     strings.TrimSpace(input.Venue),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return session.Session{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateYear(item.Year()); err != nil {
		return session.Session{}, err
	}

	if err := s.sessionRepo.Create(ctx, item); err != nil {
		return session.Session{}, fmt.Errorf("create session: %w", err)
	}
	return item, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (SessionDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Get")
	defer span.End()

	item, err := loadSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return SessionDetail{}, err
	}
	attendance, err := s.sessionRepo.ListAttendance(ctx, item.ID)
	if err != nil {
		return SessionDetail{}, fmt.Errorf("list attendance: %w", err)
	}
	teams, err := s.teamRepo.ListBySession(ctx, item.ID)
	if err != nil {
		return SessionDetail{}, fmt.Errorf("list teams: %w", err)
	}
	return SessionDetail{Session: item, Attendance: attendance, Teams: teams}, nil
}

// ReplaceAttendance swaps the whole attendee list. Registered attendees must
// exist; guests are free text.
func (s *SessionService) ReplaceAttendance(ctx context.Context, sessionID string, attendees []player.Ref) (SessionMutation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.ReplaceAttendance")
	defer span.End()

	item, err := loadSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return SessionMutation{}, err
	}

	normalized := make([]player.Ref, 0, len(attendees))
	playerIDs := make([]string, 0, len(attendees))
	for _, ref := range attendees {
		ref.PlayerID = strings.TrimSpace(ref.PlayerID)
		ref.GuestName = strings.TrimSpace(ref.GuestName)
		normalized = append(normalized, ref)
		if ref.PlayerID != "" {
			playerIDs = append(playerIDs, ref.PlayerID)
		}
	}
	if err := session.ValidateAttendance(normalized); err != nil {
		return SessionMutation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := ensurePlayersExist(ctx, s.playerRepo, playerIDs); err != nil {
		return SessionMutation{}, err
	}

	if err := s.sessionRepo.ReplaceAttendance(ctx, item.ID, normalized); err != nil {
		return SessionMutation{}, fmt.Errorf("replace attendance: %w", err)
	}

	effects := s.pipeline.Run(ctx, invalidationStep(s.invalidator, item.Year()))
	return SessionMutation{Session: item, Attendance: normalized, Effects: effects}, nil
}

// SetMVP records the explicitly chosen MVP. The player must have attended.
func (s *SessionService) SetMVP(ctx context.Context, sessionID, playerID string) (SessionMutation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.SetMVP")
	defer span.End()

	item, err := loadSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return SessionMutation{}, err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return SessionMutation{}, fmt.Errorf("%w: mvp player id is required", ErrInvalidInput)
	}

	attendance, err := s.sessionRepo.ListAttendance(ctx, item.ID)
	if err != nil {
		return SessionMutation{}, fmt.Errorf("list attendance: %w", err)
	}
	attended := false
	for _, ref := range attendance {
		if ref.PlayerID == playerID {
			attended = true
			break
		}
	}
	if !attended {
		return SessionMutation{}, fmt.Errorf("%w: player %s did not attend session %s", ErrInvalidInput, playerID, item.ID)
	}

	if err := s.sessionRepo.SetMVP(ctx, item.ID, playerID); err != nil {
		return SessionMutation{}, fmt.Errorf("set session mvp: %w", err)
	}
	item.MVPPlayerID = playerID

	effects := s.pipeline.Run(ctx, invalidationStep(s.invalidator, item.Year()))
	return SessionMutation{Session: item, Attendance: attendance, Effects: effects}, nil
}

func loadSession(ctx context.Context, repo session.Repository, sessionID string) (session.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return session.Session{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	item, exists, err := repo.GetByID(ctx, sessionID)
	if err != nil {
		return session.Session{}, fmt.Errorf("get session: %w", err)
	}
	if !exists {
		return session.Session{}, fmt.Errorf("%w: session=%s", ErrNotFound, sessionID)
	}
	return item, nil
}

func invalidationStep(invalidator SnapshotInvalidator, year int) Step {
	return Step{
		Name: StepSnapshotInvalidation,
		Run: func(ctx context.Context) error {
			return invalidator.Invalidate(ctx, year)
		},
	}
}

func ensurePlayersExist(ctx context.Context, repo player.Repository, playerIDs []string) error {
	if len(playerIDs) == 0 {
		return nil
	}
	found, err := repo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return fmt.Errorf("get players: %w", err)
	}
	known := make(map[string]struct{}, len(found))
	for _, item := range found {
		known[item.ID] = struct{}{}
	}
	for _, playerID := range playerIDs {
		if _, ok := known[playerID]; !ok {
			return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}
	}
	return nil
}
