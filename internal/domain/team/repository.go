package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListBySession(ctx context.Context, sessionID string) ([]Team, error)
	ReplaceBySession(ctx context.Context, sessionID string, teams []Team) error
}
