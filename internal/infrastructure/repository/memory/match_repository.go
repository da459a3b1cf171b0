package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/match"
)

// matchStore backs the match, event and stat repositories so that replacing
// a schedule also drops its events and stats.
type matchStore struct {
	mu      sync.RWMutex
	matches map[string]match.Match
	events  map[string]match.Event
	stats   map[string][]match.PlayerStat
	now     func() time.Time
}

type MatchRepository struct{ store *matchStore }

type MatchEventRepository struct{ store *matchStore }

type MatchStatRepository struct{ store *matchStore }

func NewMatchRepositories() (*MatchRepository, *MatchEventRepository, *MatchStatRepository) {
	store := &matchStore{
		matches: make(map[string]match.Match),
		events:  make(map[string]match.Event),
		stats:   make(map[string][]match.PlayerStat),
		now:     time.Now,
	}
	return &MatchRepository{store: store}, &MatchEventRepository{store: store}, &MatchStatRepository{store: store}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.matches[matchID]
	return item, ok, nil
}

func (r *MatchRepository) ListBySession(_ context.Context, sessionID string) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.store.matches {
		if item.SessionID == sessionID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchNo < out[j].MatchNo })
	return out, nil
}

func (r *MatchRepository) ReplaceBySession(_ context.Context, sessionID string, items []match.Match) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for matchID, item := range s.matches {
		if item.SessionID != sessionID {
			continue
		}
		delete(s.matches, matchID)
		delete(s.stats, matchID)
		for eventID, event := range s.events {
			if event.MatchID == matchID {
				delete(s.events, eventID)
			}
		}
	}
	for _, item := range items {
		if item.SessionID != sessionID {
			return fmt.Errorf("match %s belongs to session %s, not %s", item.ID, item.SessionID, sessionID)
		}
		s.matches[item.ID] = item
	}
	return nil
}

func (r *MatchRepository) UpdateScore(_ context.Context, matchID string, score1, score2 int) error {
	return r.update(matchID, func(m *match.Match) {
		m.Score1, m.Score2 = score1, score2
	})
}

func (r *MatchRepository) UpdateStatus(_ context.Context, matchID string, status match.Status) error {
	return r.update(matchID, func(m *match.Match) {
		m.Status = status
	})
}

func (r *MatchRepository) update(matchID string, apply func(*match.Match)) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	apply(&item)
	item.UpdatedAt = s.now().UTC()
	s.matches[matchID] = item
	return nil
}

func (r *MatchEventRepository) GetByID(_ context.Context, eventID string) (match.Event, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.events[eventID]
	return item, ok, nil
}

func (r *MatchEventRepository) ListByMatch(ctx context.Context, matchID string) ([]match.Event, error) {
	return r.ListByMatches(ctx, []string{matchID})
}

// ListByMatches orders events by minute, then creation time.
func (r *MatchEventRepository) ListByMatches(_ context.Context, matchIDs []string) ([]match.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := toSet(matchIDs)
	out := make([]match.Event, 0)
	for _, item := range r.store.events {
		if _, ok := wanted[item.MatchID]; ok {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minute != out[j].Minute {
			return out[i].Minute < out[j].Minute
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchEventRepository) Create(_ context.Context, item match.Event) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[item.MatchID]; !ok {
		return fmt.Errorf("match %s not found", item.MatchID)
	}
	if _, exists := s.events[item.ID]; exists {
		return fmt.Errorf("event %s already exists", item.ID)
	}
	s.events[item.ID] = item
	return nil
}

func (r *MatchEventRepository) Delete(_ context.Context, eventID string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		return false, nil
	}
	delete(s.events, eventID)
	return true, nil
}

func (r *MatchStatRepository) ListByMatch(ctx context.Context, matchID string) ([]match.PlayerStat, error) {
	return r.ListByMatches(ctx, []string{matchID})
}

func (r *MatchStatRepository) ListByMatches(_ context.Context, matchIDs []string) ([]match.PlayerStat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.PlayerStat, 0)
	for _, matchID := range matchIDs {
		out = append(out, r.store.stats[matchID]...)
	}
	return out, nil
}

func (r *MatchStatRepository) ReplaceByMatch(_ context.Context, matchID string, items []match.PlayerStat) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[matchID]; !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	if len(items) == 0 {
		delete(s.stats, matchID)
		return nil
	}
	s.stats[matchID] = append([]match.PlayerStat(nil), items...)
	return nil
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
