package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/rating"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
	"github.com/riskibarqy/futsal-club/internal/platform/logging"
	"github.com/riskibarqy/futsal-club/internal/platform/metrics"
)

const defaultRecalcWorkers = 4

type RatingService struct {
	playerRepo player.Repository
	ratingRepo rating.Repository
	logger     *logging.Logger
	metrics    *metrics.Recorder
	pipeline   Pipeline
	now        func() time.Time
}

func NewRatingService(
	playerRepo player.Repository,
	ratingRepo rating.Repository,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *RatingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RatingService{
		playerRepo: playerRepo,
		ratingRepo: ratingRepo,
		logger:     logger,
		metrics:    recorder,
		pipeline:   NewPipeline(logger, recorder),
		now:        time.Now,
	}
}

type SubmitRatingInput struct {
	RaterID  string
	PlayerID string
	Skills   map[string]int
	Comment  string
}

// RatingResult carries the rating write and the player's skills after the
// skill recompute step. When that step fails, Player holds the skills as they
// were before the write.
type RatingResult struct {
	Rating  rating.Rating
	Player  player.Player
	Effects SecondaryEffects
}

// Submit upserts the rater's rating, then recomputes the player's skills from
// every current rating as a secondary effect.
func (s *RatingService) Submit(ctx context.Context, input SubmitRatingInput) (RatingResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.Submit")
	defer span.End()

	raterID := strings.TrimSpace(input.RaterID)
	playerID := strings.TrimSpace(input.PlayerID)
	skills, err := skill.FromMap(input.Skills)
	if err != nil {
		return RatingResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	item := rating.Rating{
		RaterID:   raterID,
		PlayerID:  playerID,
		Skills:    skills,
		Comment:   strings.TrimSpace(input.Comment),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return RatingResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	target, err := s.ratedPlayer(ctx, playerID)
	if err != nil {
		return RatingResult{}, err
	}
	if _, exists, err := s.playerRepo.GetByID(ctx, raterID); err != nil {
		return RatingResult{}, fmt.Errorf("get rater: %w", err)
	} else if !exists {
		return RatingResult{}, fmt.Errorf("%w: rater=%s", ErrNotFound, raterID)
	}

	if err := s.ratingRepo.Upsert(ctx, item); err != nil {
		return RatingResult{}, fmt.Errorf("upsert rating: %w", err)
	}

	updated, effects := s.afterRatingChange(ctx, target)
	return RatingResult{Rating: item, Player: updated, Effects: effects}, nil
}

func (s *RatingService) ListByPlayer(ctx context.Context, playerID string) ([]rating.Rating, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.ListByPlayer")
	defer span.End()

	if _, err := s.ratedPlayer(ctx, strings.TrimSpace(playerID)); err != nil {
		return nil, err
	}
	items, err := s.ratingRepo.ListByPlayer(ctx, strings.TrimSpace(playerID))
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return items, nil
}

// Delete removes one rating and recomputes the player's skills from the
// remaining ones. With nothing left the skills stay as they are.
func (s *RatingService) Delete(ctx context.Context, playerID, raterID string) (RatingResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.Delete")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	raterID = strings.TrimSpace(raterID)
	if raterID == "" {
		return RatingResult{}, fmt.Errorf("%w: rater id is required", ErrInvalidInput)
	}

	target, err := s.ratedPlayer(ctx, playerID)
	if err != nil {
		return RatingResult{}, err
	}

	deleted, err := s.ratingRepo.Delete(ctx, raterID, playerID)
	if err != nil {
		return RatingResult{}, fmt.Errorf("delete rating: %w", err)
	}
	if !deleted {
		return RatingResult{}, fmt.Errorf("%w: rating rater=%s player=%s", ErrNotFound, raterID, playerID)
	}

	updated, effects := s.afterRatingChange(ctx, target)
	return RatingResult{
		Rating:  rating.Rating{RaterID: raterID, PlayerID: playerID},
		Player:  updated,
		Effects: effects,
	}, nil
}

// afterRatingChange runs once the rating write is stored and never fails the
// caller.
func (s *RatingService) afterRatingChange(ctx context.Context, target player.Player) (player.Player, SecondaryEffects) {
	updated := target
	effects := s.pipeline.Run(ctx, Step{Name: StepSkillRecompute, Run: func(ctx context.Context) error {
		recalculated, err := s.recalculate(ctx, target)
		if err != nil {
			return err
		}
		updated = recalculated
		return nil
	}})
	return updated, effects
}

// Recalculate recomputes one player's skills.
func (s *RatingService) Recalculate(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.Recalculate")
	defer span.End()

	target, err := s.ratedPlayer(ctx, strings.TrimSpace(playerID))
	if err != nil {
		return player.Player{}, err
	}
	return s.recalculate(ctx, target)
}

type RecalculateAllResult struct {
	PlayerCount  int      `json:"playerCount"`
	UpdatedCount int      `json:"updatedCount"`
	FailedCount  int      `json:"failedCount"`
	WorkerCount  int      `json:"workerCount"`
	FailedIDs    []string `json:"failedIds,omitempty"`
}

// RecalculateAll recomputes every registered player on a bounded worker
// pool. One player's failure does not stop the others.
func (s *RatingService) RecalculateAll(ctx context.Context, workers int) (RecalculateAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.RecalculateAll")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return RecalculateAllResult{}, fmt.Errorf("list players: %w", err)
	}

	targets := make([]player.Player, 0, len(players))
	for _, item := range players {
		if !item.IsGuest {
			targets = append(targets, item)
		}
	}
	if workers <= 0 {
		workers = defaultRecalcWorkers
	}
	if workers > len(targets) {
		workers = max(len(targets), 1)
	}

	result := RecalculateAllResult{PlayerCount: len(targets), WorkerCount: workers}
	if len(targets) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return RecalculateAllResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, target := range targets {
		target := target
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			updated, recalcErr := s.recalculate(ctx, target)
			mu.Lock()
			defer mu.Unlock()
			if recalcErr != nil {
				result.FailedCount++
				result.FailedIDs = append(result.FailedIDs, target.ID)
				s.logger.WarnContext(ctx, "recalculate player skills failed", "player_id", target.ID, "error", recalcErr)
				return
			}
			if updated.Skills != target.Skills {
				result.UpdatedCount++
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return result, fmt.Errorf("submit recalculation: %w", err)
		}
	}
	wg.Wait()

	s.logger.InfoContext(ctx, "player skills recalculated",
		"players", result.PlayerCount,
		"updated", result.UpdatedCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)
	return result, nil
}

func (s *RatingService) ratedPlayer(ctx context.Context, playerID string) (player.Player, error) {
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if item.IsGuest {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, player.ErrGuestNotRated)
	}
	return item, nil
}

// recalculate rebuilds the skill vector from scratch. Rater roles are read
// now, so a promoted member's old ratings move to the admin class.
func (s *RatingService) recalculate(ctx context.Context, target player.Player) (updated player.Player, err error) {
	defer func() { s.metrics.ObserveSkillRecalculation(err) }()

	ratings, err := s.ratingRepo.ListByPlayer(ctx, target.ID)
	if err != nil {
		return player.Player{}, fmt.Errorf("list ratings: %w", err)
	}

	raterIDs := make([]string, 0, len(ratings))
	for _, item := range ratings {
		raterIDs = append(raterIDs, item.RaterID)
	}
	raters, err := s.playerRepo.GetByIDs(ctx, raterIDs)
	if err != nil {
		return player.Player{}, fmt.Errorf("get raters: %w", err)
	}
	roles := make(map[string]player.Role, len(raters))
	for _, item := range raters {
		roles[item.ID] = item.Role
	}

	weighted := make([]rating.Weighted, 0, len(ratings))
	for _, item := range ratings {
		role, ok := roles[item.RaterID]
		if !ok {
			role = player.RoleMember
		}
		weighted = append(weighted, rating.Weighted{Rating: item, RaterRole: role})
	}

	skills, applied := rating.Aggregate(target.Skills, weighted)
	if !applied || skills == target.Skills {
		return target, nil
	}

	if err := s.playerRepo.UpdateSkills(ctx, target.ID, skills); err != nil {
		return player.Player{}, fmt.Errorf("update player skills: %w", err)
	}
	target.Skills = skills
	target.UpdatedAt = s.now().UTC()
	return target, nil
}
