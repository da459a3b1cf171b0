package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/futsal-club/internal/domain/rating"
)

type ratingKey struct {
	raterID  string
	playerID string
}

type RatingRepository struct {
	mu      sync.RWMutex
	ratings map[ratingKey]rating.Rating
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{ratings: make(map[ratingKey]rating.Rating)}
}

func (r *RatingRepository) ListByPlayer(_ context.Context, playerID string) ([]rating.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rating.Rating, 0)
	for key, item := range r.ratings {
		if key.playerID == playerID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RaterID < out[j].RaterID })
	return out, nil
}

// Upsert keeps the original CreatedAt of a replaced rating.
func (r *RatingRepository) Upsert(_ context.Context, item rating.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ratingKey{raterID: item.RaterID, playerID: item.PlayerID}
	if existing, ok := r.ratings[key]; ok {
		item.CreatedAt = existing.CreatedAt
	}
	r.ratings[key] = item
	return nil
}

func (r *RatingRepository) Delete(_ context.Context, raterID, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ratingKey{raterID: raterID, playerID: playerID}
	if _, ok := r.ratings[key]; !ok {
		return false, nil
	}
	delete(r.ratings, key)
	return true, nil
}
