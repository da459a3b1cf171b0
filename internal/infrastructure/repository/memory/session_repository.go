package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/session"
)

type SessionRepository struct {
	mu         sync.RWMutex
	sessions   map[string]session.Session
	attendance map[string][]player.Ref
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions:   make(map[string]session.Session),
		attendance: make(map[string][]player.Ref),
	}
}

func (r *SessionRepository) GetByID(_ context.Context, sessionID string) (session.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.sessions[sessionID]
	return item, ok, nil
}

// ListByYear orders sessions by date.
func (r *SessionRepository) ListByYear(_ context.Context, year int) ([]session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]session.Session, 0)
	for _, item := range r.sessions {
		if item.Year() == year {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *SessionRepository) ListYears(_ context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int]struct{})
	for _, item := range r.sessions {
		seen[item.Year()] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for year := range seen {
		out = append(out, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, nil
}

func (r *SessionRepository) Create(_ context.Context, item session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[item.ID]; exists {
		return fmt.Errorf("session %s already exists", item.ID)
	}
	r.sessions[item.ID] = item
	return nil
}

func (r *SessionRepository) SetMVP(_ context.Context, sessionID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s not found", sessionID)
	}
	item.MVPPlayerID = playerID
	r.sessions[sessionID] = item
	return nil
}

func (r *SessionRepository) ListAttendance(_ context.Context, sessionID string) ([]player.Ref, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]player.Ref(nil), r.attendance[sessionID]...), nil
}

func (r *SessionRepository) ReplaceAttendance(_ context.Context, sessionID string, attendees []player.Ref) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return fmt.Errorf("session %s not found", sessionID)
	}
	r.attendance[sessionID] = append([]player.Ref(nil), attendees...)
	return nil
}
