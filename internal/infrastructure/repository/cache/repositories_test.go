package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/riskibarqy/futsal-club/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRankingRepository struct {
	*memory.RankingRepository
	gets int
}

func (r *countingRankingRepository) Get(ctx context.Context, year int) (ranking.Snapshot, bool, error) {
	r.gets++
	return r.RankingRepository.Get(ctx, year)
}

func TestRankingRepository_ReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	backing := &countingRankingRepository{RankingRepository: memory.NewRankingRepository()}
	repo := NewRankingRepository(backing, time.Minute, nil)

	_, exists, err := repo.Get(ctx, 2025)
	require.NoError(t, err)
	assert.False(t, exists)
	_, _, _ = repo.Get(ctx, 2025)
	assert.Equal(t, 1, backing.gets, "misses are cached too")

	require.NoError(t, repo.Upsert(ctx, ranking.Snapshot{Year: 2025, Entries: []ranking.Entry{{PlayerID: "plr-001", Goals: 3}}}))
	got, exists, err := repo.Get(ctx, 2025)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, 3, got.Entries[0].Goals)
	assert.Equal(t, 2, backing.gets)

	got.Entries[0].Goals = 99
	again, _, _ := repo.Get(ctx, 2025)
	assert.Equal(t, 3, again.Entries[0].Goals, "callers get copies")
	assert.Equal(t, 2, backing.gets)

	require.NoError(t, repo.Delete(ctx, 2025))
	_, exists, err = repo.Get(ctx, 2025)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 3, backing.gets)
}

// blockingRankingRepository parks Get after it has read from the store
// until release is closed.
type blockingRankingRepository struct {
	*memory.RankingRepository
	read    chan struct{}
	release chan struct{}
}

func (r *blockingRankingRepository) Get(ctx context.Context, year int) (ranking.Snapshot, bool, error) {
	item, exists, err := r.RankingRepository.Get(ctx, year)
	close(r.read)
	<-r.release
	return item, exists, err
}

func TestRankingRepository_DeleteDuringReadIsNotResurrected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRankingRepository()
	require.NoError(t, store.Upsert(ctx, ranking.Snapshot{Year: 2025, Entries: []ranking.Entry{{PlayerID: "plr-001", Goals: 3}}}))

	backing := &blockingRankingRepository{RankingRepository: store, read: make(chan struct{}), release: make(chan struct{})}
	repo := NewRankingRepository(backing, time.Minute, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = repo.Get(ctx, 2025)
	}()

	<-backing.read
	require.NoError(t, repo.Delete(ctx, 2025))
	close(backing.release)
	<-done

	_, exists, err := store.Get(ctx, 2025)
	require.NoError(t, err)
	require.False(t, exists)

	// the next read must see the deletion rather than the snapshot read before it
	backing.read = make(chan struct{})
	_, exists, err = repo.Get(ctx, 2025)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPlayerRepository_ListInvalidatedByWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository(memory.NewPlayerRepository(memory.SeedPlayers()), time.Minute, nil)

	before, err := repo.List(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, player.Player{ID: "plr-900", Name: "Zaki", Role: player.RoleMember}))
	after, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)

	name := "Andi Renamed"
	_, err = repo.UpdateProfile(ctx, "plr-001", player.Patch{Name: &name})
	require.NoError(t, err)
	renamed, err := repo.List(ctx)
	require.NoError(t, err)

	found := false
	for _, item := range renamed {
		if item.ID == "plr-001" {
			found = item.Name == name
		}
	}
	assert.True(t, found, "list must reflect the profile update")
}
