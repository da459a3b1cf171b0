package rating

import "context"

// Repository stores at most one rating per (rater, player) pair.
type Repository interface {
	ListByPlayer(ctx context.Context, playerID string) ([]Rating, error)
	Upsert(ctx context.Context, item Rating) error
	Delete(ctx context.Context, raterID, playerID string) (bool, error)
}
