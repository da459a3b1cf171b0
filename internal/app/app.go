package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/futsal-club/internal/config"
	"github.com/riskibarqy/futsal-club/internal/domain/match"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/riskibarqy/futsal-club/internal/domain/rating"
	"github.com/riskibarqy/futsal-club/internal/domain/session"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
	"github.com/riskibarqy/futsal-club/internal/domain/team"
	cacherepo "github.com/riskibarqy/futsal-club/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/futsal-club/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/futsal-club/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/futsal-club/internal/interfaces/httpapi"
	"github.com/riskibarqy/futsal-club/internal/platform/id"
	"github.com/riskibarqy/futsal-club/internal/platform/logging"
	"github.com/riskibarqy/futsal-club/internal/platform/metrics"
	"github.com/riskibarqy/futsal-club/internal/usecase"
)

// App owns the HTTP server and the resources behind it.
type App struct {
	Server    *http.Server
	Scheduler *usecase.RankingRefreshScheduler
	db        *sqlx.DB
	logger    *logging.Logger
}

type repositories struct {
	players  player.Repository
	ratings  rating.Repository
	sessions session.Repository
	teams    team.Repository
	matches  match.Repository
	events   match.EventRepository
	stats    match.StatRepository
	rankings ranking.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.New("")
	}

	a := &App{logger: logger}
	repos, err := a.buildRepositories(ctx, cfg, recorder)
	if err != nil {
		return nil, err
	}

	rules := ranking.DefaultRules()
	rules.HallOfFameMinAttendance = cfg.HallOfFameMinAttendance
	if err := rules.Validate(); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("ranking rules: %w", err)
	}

	idGen := id.NewUUIDGenerator()
	pipeline := usecase.NewPipeline(logger, recorder)
	guestSkills := skill.Uniform(skill.FromTenScale(cfg.GuestSkillTenScale))

	rankingSvc := usecase.NewRankingService(repos.players, repos.sessions, repos.teams, repos.matches, repos.stats, repos.rankings, rules, logger, recorder)
	handler := httpapi.NewHandler(
		usecase.NewPlayerService(repos.players, idGen),
		usecase.NewRatingService(repos.players, repos.ratings, logger, recorder),
		usecase.NewSessionService(repos.sessions, repos.players, repos.teams, rankingSvc, pipeline, idGen),
		usecase.NewTeamService(repos.sessions, repos.players, repos.teams, repos.matches, rankingSvc, pipeline, idGen, recorder, guestSkills),
		usecase.NewMatchService(repos.sessions, repos.players, repos.teams, repos.matches, repos.events, repos.stats, rankingSvc, pipeline, idGen),
		rankingSvc,
		cfg.RatingRecalcWorkers,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminToken:         cfg.AdminToken,
		Metrics:            recorder,
	})
	if cfg.AdminToken == "" {
		logger.Warn("admin routes disabled", "reason", "ADMIN_TOKEN empty")
	}

	if cfg.RankingRefreshEnabled {
		a.Scheduler = usecase.NewRankingRefreshScheduler(rankingSvc, cfg.RankingRefreshInterval, logger.Named("ranking-scheduler"))
	}

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config, recorder *metrics.Recorder) (repositories, error) {
	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := postgres.Open(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		if cfg.DBSeedEnabled {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = a.Close()
				return repositories{}, fmt.Errorf("seed database: %w", err)
			}
		}

		matches := postgres.NewMatchRepository(db)
		repos = repositories{
			players:  postgres.NewPlayerRepository(db),
			ratings:  postgres.NewRatingRepository(db),
			sessions: postgres.NewSessionRepository(db),
			teams:    postgres.NewTeamRepository(db),
			matches:  matches,
			events:   postgres.NewMatchEventRepository(db),
			stats:    postgres.NewMatchStatRepository(db),
			rankings: postgres.NewRankingRepository(db),
		}
	default:
		matches, events, stats := memory.NewMatchRepositories()
		repos = repositories{
			players:  memory.NewPlayerRepository(memory.SeedPlayers()),
			ratings:  memory.NewRatingRepository(),
			sessions: memory.NewSessionRepository(),
			teams:    memory.NewTeamRepository(),
			matches:  matches,
			events:   events,
			stats:    stats,
			rankings: memory.NewRankingRepository(),
		}
	}

	if cfg.CacheEnabled {
		repos.players = cacherepo.NewPlayerRepository(repos.players, cfg.CacheTTL, recorder)
		repos.rankings = cacherepo.NewRankingRepository(repos.rankings, cfg.CacheTTL, recorder)
	}

	a.logger.Info("storage ready",
		"driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL.String(),
	)
	return repos, nil
}

// Start launches the background scheduler, if configured.
func (a *App) Start() error {
	if a.Scheduler == nil {
		return nil
	}
	return a.Scheduler.Start()
}

// Close stops the scheduler and releases the database pool.
func (a *App) Close() error {
	var errs []error
	if a.Scheduler != nil {
		if err := a.Scheduler.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, crerr.Wrap(err, "close postgres"))
		}
		a.db = nil
	}
	return crerr.Join(errs...)
}
