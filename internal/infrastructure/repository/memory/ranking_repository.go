package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
)

// RankingRepository keeps one snapshot per season and hands out copies.
type RankingRepository struct {
	mu        sync.RWMutex
	snapshots map[int]ranking.Snapshot
}

func NewRankingRepository() *RankingRepository {
	return &RankingRepository{snapshots: make(map[int]ranking.Snapshot)}
}

func (r *RankingRepository) Get(_ context.Context, year int) (ranking.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.snapshots[year]
	if !ok {
		return ranking.Snapshot{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *RankingRepository) Upsert(_ context.Context, snapshot ranking.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[snapshot.Year] = snapshot.Clone()
	return nil
}

func (r *RankingRepository) Delete(_ context.Context, year int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.snapshots, year)
	return nil
}
