package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/match"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/riskibarqy/futsal-club/internal/domain/session"
	"github.com/riskibarqy/futsal-club/internal/domain/team"
	"github.com/riskibarqy/futsal-club/internal/platform/logging"
	"github.com/riskibarqy/futsal-club/internal/platform/metrics"
	"github.com/sourcegraph/conc/pool"
)

const (
	RefreshTriggerManual    = "manual"
	RefreshTriggerOnRead    = "on_read"
	RefreshTriggerScheduled = "scheduled"

	systemRefresher    = "system"
	minSeasonYear      = 2000
	maxSeasonYear      = 2100
	hallOfFameParallel = 4
)

// SnapshotInvalidator drops the stored ranking of a season.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, year int) error
}

type RankingService struct {
	playerRepo  player.Repository
	sessionRepo session.Repository
	teamRepo    team.Repository
	matchRepo   match.Repository
	statRepo    match.StatRepository
	rankingRepo ranking.Repository
	rules       ranking.Rules
	logger      *logging.Logger
	metrics     *metrics.Recorder
	now         func() time.Time
}

func NewRankingService(
	playerRepo player.Repository,
	sessionRepo session.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	statRepo match.StatRepository,
	rankingRepo ranking.Repository,
	rules ranking.Rules,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingService{
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		statRepo:    statRepo,
		rankingRepo: rankingRepo,
		rules:       rules,
		logger:      logger,
		metrics:     recorder,
		now:         time.Now,
	}
}

func (s *RankingService) Rules() ranking.Rules {
	return s.rules
}

// Get returns the stored snapshot of year, compiling and storing one when
// none exists. The result is a copy owned by the caller; later invalidation
// or refresh never changes it.
func (s *RankingService) Get(ctx context.Context, year int) (ranking.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Get")
	defer span.End()

	if err := validateYear(year); err != nil {
		return ranking.Snapshot{}, err
	}

	snapshot, exists, err := s.rankingRepo.Get(ctx, year)
	if err != nil {
		return ranking.Snapshot{}, fmt.Errorf("get ranking snapshot: %w", err)
	}
	if exists {
		return snapshot.Clone(), nil
	}

	return s.refresh(ctx, year, systemRefresher, RefreshTriggerOnRead)
}

// Refresh recompiles year from raw records and replaces the stored snapshot.
func (s *RankingService) Refresh(ctx context.Context, year int, refreshedBy string) (ranking.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Refresh")
	defer span.End()

	if err := validateYear(year); err != nil {
		return ranking.Snapshot{}, err
	}
	refreshedBy = strings.TrimSpace(refreshedBy)
	if refreshedBy == "" {
		refreshedBy = systemRefresher
	}
	return s.refresh(ctx, year, refreshedBy, RefreshTriggerManual)
}

// RefreshScheduled is Refresh for the background job.
func (s *RankingService) RefreshScheduled(ctx context.Context, year int) (ranking.Snapshot, error) {
	return s.refresh(ctx, year, systemRefresher, RefreshTriggerScheduled)
}

func (s *RankingService) Invalidate(ctx context.Context, year int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Invalidate")
	defer span.End()

	if err := s.rankingRepo.Delete(ctx, year); err != nil {
		return fmt.Errorf("delete ranking snapshot year=%d: %w", year, err)
	}
	return nil
}

func (s *RankingService) Leaderboard(ctx context.Context, year int, category string, limit int) ([]ranking.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Leaderboard")
	defer span.End()

	parsed, err := ranking.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be non-negative", ErrInvalidInput)
	}

	snapshot, err := s.Get(ctx, year)
	if err != nil {
		return nil, err
	}
	return ranking.Leaderboard(snapshot, parsed, limit), nil
}

// HallOfFame collects the honors of every season that has sessions, newest
// season first. Seasons load concurrently.
func (s *RankingService) HallOfFame(ctx context.Context) ([]ranking.Honor, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.HallOfFame")
	defer span.End()

	years, err := s.sessionRepo.ListYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("list season years: %w", err)
	}

	p := pool.NewWithResults[[]ranking.Honor]().
		WithContext(ctx).
		WithMaxGoroutines(hallOfFameParallel).
		WithCancelOnError()
	for _, year := range years {
		year := year
		p.Go(func(ctx context.Context) ([]ranking.Honor, error) {
			snapshot, err := s.Get(ctx, year)
			if err != nil {
				return nil, fmt.Errorf("season %d: %w", year, err)
			}
			return ranking.HallOfFame(snapshot, s.rules), nil
		})
	}
	perSeason, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make([]ranking.Honor, 0, len(perSeason)*len(ranking.Categories))
	for _, honors := range perSeason {
		out = append(out, honors...)
	}
	categoryOrder := make(map[ranking.Category]int, len(ranking.Categories))
	for idx, category := range ranking.Categories {
		categoryOrder[category] = idx
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return categoryOrder[out[i].Category] < categoryOrder[out[j].Category]
	})
	return out, nil
}

func (s *RankingService) refresh(ctx context.Context, year int, refreshedBy, trigger string) (snapshot ranking.Snapshot, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveSnapshotRefresh(year, trigger, len(snapshot.Entries), time.Since(start), err)
	}()

	input, err := s.loadSeason(ctx, year)
	if err != nil {
		return ranking.Snapshot{}, err
	}
	input.RefreshedAt = s.now().UTC()
	input.RefreshedBy = refreshedBy

	snapshot = ranking.Compile(input, s.rules)
	if err := s.rankingRepo.Upsert(ctx, snapshot); err != nil {
		return ranking.Snapshot{}, fmt.Errorf("store ranking snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "ranking snapshot refreshed",
		"year", year,
		"trigger", trigger,
		"refreshed_by", refreshedBy,
		"entries", len(snapshot.Entries),
		"sessions", len(input.Sessions),
	)
	return snapshot.Clone(), nil
}

func (s *RankingService) loadSeason(ctx context.Context, year int) (ranking.Input, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return ranking.Input{}, fmt.Errorf("list players: %w", err)
	}
	sessions, err := s.sessionRepo.ListByYear(ctx, year)
	if err != nil {
		return ranking.Input{}, fmt.Errorf("list sessions year=%d: %w", year, err)
	}

	out := ranking.Input{Year: year, Players: players, Sessions: make([]ranking.SessionData, 0, len(sessions))}
	for _, item := range sessions {
		data := ranking.SessionData{Session: item}

		if data.Attendance, err = s.sessionRepo.ListAttendance(ctx, item.ID); err != nil {
			return ranking.Input{}, fmt.Errorf("list attendance session=%s: %w", item.ID, err)
		}
		if data.Teams, err = s.teamRepo.ListBySession(ctx, item.ID); err != nil {
			return ranking.Input{}, fmt.Errorf("list teams session=%s: %w", item.ID, err)
		}
		if data.Matches, err = s.matchRepo.ListBySession(ctx, item.ID); err != nil {
			return ranking.Input{}, fmt.Errorf("list matches session=%s: %w", item.ID, err)
		}

		matchIDs := make([]string, 0, len(data.Matches))
		for _, m := range data.Matches {
			matchIDs = append(matchIDs, m.ID)
		}
		if data.Stats, err = s.statRepo.ListByMatches(ctx, matchIDs); err != nil {
			return ranking.Input{}, fmt.Errorf("list player stats session=%s: %w", item.ID, err)
		}
		out.Sessions = append(out.Sessions, data)
	}
	return out, nil
}

func validateYear(year int) error {
	if year < minSeasonYear || year > maxSeasonYear {
		return fmt.Errorf("%w: season year %d out of range", ErrInvalidInput, year)
	}
	return nil
}
