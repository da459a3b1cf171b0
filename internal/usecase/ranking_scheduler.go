package usecase

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/riskibarqy/futsal-club/internal/platform/logging"
	"github.com/riskibarqy/futsal-club/internal/platform/resilience"
)

const (
	refreshJobName          = "ranking-snapshot-refresh"
	refreshJobTimeout       = 2 * time.Minute
	refreshFailureThreshold = 3
)

type scheduledRefresher interface {
	RefreshScheduled(ctx context.Context, year int) (ranking.Snapshot, error)
}

// RankingRefreshScheduler recompiles the current season on a fixed
// interval. Repeated failures open a breaker that skips runs for a while.
type RankingRefreshScheduler struct {
	refresher scheduledRefresher
	interval  time.Duration
	breaker   *resilience.CircuitBreaker
	logger    *logging.Logger
	now       func() time.Time
	scheduler gocron.Scheduler
}

func NewRankingRefreshScheduler(refresher scheduledRefresher, interval time.Duration, logger *logging.Logger) *RankingRefreshScheduler {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingRefreshScheduler{
		refresher: refresher,
		interval:  interval,
		breaker:   resilience.NewCircuitBreaker(refreshFailureThreshold, 4*interval),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *RankingRefreshScheduler) Start() error {
	if s.interval <= 0 {
		return crerr.Newf("ranking refresh interval must be positive, got %s", s.interval)
	}

	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return crerr.Wrap(err, "create scheduler")
	}
	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), refreshJobTimeout)
			defer cancel()
			_ = s.RunOnce(ctx)
		}),
		gocron.WithName(refreshJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return crerr.Wrap(err, "register ranking refresh job")
	}

	sched.Start()
	s.scheduler = sched
	s.logger.Info("ranking refresh scheduler started", "interval", s.interval.String())
	return nil
}

// RunOnce refreshes the current season through the breaker.
func (s *RankingRefreshScheduler) RunOnce(ctx context.Context) error {
	year := s.now().UTC().Year()
	err := s.breaker.Execute(func() error {
		_, err := s.refresher.RefreshScheduled(ctx, year)
		return err
	})
	switch {
	case crerr.Is(err, resilience.ErrCircuitOpen):
		s.logger.WarnContext(ctx, "skip scheduled ranking refresh: breaker open", "year", year)
	case err != nil:
		s.logger.WarnContext(ctx, "scheduled ranking refresh failed", "year", year, "error", err)
	}
	return err
}

func (s *RankingRefreshScheduler) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	if err := s.scheduler.Shutdown(); err != nil {
		return crerr.Wrap(err, "shutdown scheduler")
	}
	s.scheduler = nil
	return nil
}
