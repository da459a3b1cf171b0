package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
	basecache "github.com/riskibarqy/futsal-club/internal/platform/cache"
)

type RankingRepository struct {
	next  ranking.Repository
	cache *basecache.Store[cachedSnapshot]
}

func NewRankingRepository(next ranking.Repository, ttl time.Duration, observer basecache.LookupObserver) *RankingRepository {
	return &RankingRepository{next: next, cache: basecache.NewStore[cachedSnapshot]("ranking", ttl, observer)}
}

type cachedSnapshot struct {
	value  ranking.Snapshot
	exists bool
}

func rankingKey(year int) string {
	return "ranking:year:" + strconv.Itoa(year)
}

func (r *RankingRepository) Get(ctx context.Context, year int) (ranking.Snapshot, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, rankingKey(year), func(ctx context.Context) (cachedSnapshot, error) {
		item, exists, err := r.next.Get(ctx, year)
		if err != nil {
			return cachedSnapshot{}, err
		}
		return cachedSnapshot{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return ranking.Snapshot{}, false, err
	}
	if !cached.exists {
		return ranking.Snapshot{}, false, nil
	}
	return cached.value.Clone(), true, nil
}

func (r *RankingRepository) Upsert(ctx context.Context, snapshot ranking.Snapshot) error {
	r.cache.Delete(ctx, rankingKey(snapshot.Year))
	if err := r.next.Upsert(ctx, snapshot); err != nil {
		return err
	}
	r.cache.Delete(ctx, rankingKey(snapshot.Year))
	return nil
}

// Delete drops the cached copy even when the backing delete fails, so a
// later read goes to the store.
func (r *RankingRepository) Delete(ctx context.Context, year int) error {
	r.cache.Delete(ctx, rankingKey(year))
	return r.next.Delete(ctx, year)
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[[]player.Player]
}

func NewPlayerRepository(next player.Repository, ttl time.Duration, observer basecache.LookupObserver) *PlayerRepository {
	return &PlayerRepository{next: next, cache: basecache.NewStore[[]player.Player]("players", ttl, observer)}
}

const playerListKey = "player:list"

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := r.cache.GetOrLoad(ctx, playerListKey, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	return r.next.GetByID(ctx, playerID)
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	return r.next.GetByIDs(ctx, playerIDs)
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	defer r.cache.Delete(ctx, playerListKey)
	return r.next.Create(ctx, item)
}

func (r *PlayerRepository) UpdateProfile(ctx context.Context, playerID string, patch player.Patch) (player.Player, error) {
	defer r.cache.Delete(ctx, playerListKey)
	return r.next.UpdateProfile(ctx, playerID, patch)
}

func (r *PlayerRepository) UpdateSkills(ctx context.Context, playerID string, skills skill.Vector) error {
	defer r.cache.Delete(ctx, playerListKey)
	return r.next.UpdateSkills(ctx, playerID, skills)
}
