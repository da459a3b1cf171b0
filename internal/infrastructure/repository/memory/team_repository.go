package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/team"
)

type TeamRepository struct {
	mu        sync.RWMutex
	bySession map[string][]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{bySession: make(map[string][]team.Team)}
}

func (r *TeamRepository) ListBySession(_ context.Context, sessionID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneTeams(r.bySession[sessionID]), nil
}

func (r *TeamRepository) ReplaceBySession(_ context.Context, sessionID string, teams []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySession[sessionID] = cloneTeams(teams)
	return nil
}

func cloneTeams(in []team.Team) []team.Team {
	out := make([]team.Team, 0, len(in))
	for _, item := range in {
		item.Members = append([]player.Ref(nil), item.Members...)
		if item.KeyPlayer != nil {
			key := *item.KeyPlayer
			item.KeyPlayer = &key
		}
		out = append(out, item)
	}
	return out
}
