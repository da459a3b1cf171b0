package match

import "context"

// Repository stores the fixtures of a session.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListBySession(ctx context.Context, sessionID string) ([]Match, error)
	// ReplaceBySession drops every match of the session, with its events and
	// stats, before inserting items.
	ReplaceBySession(ctx context.Context, sessionID string, items []Match) error
	UpdateScore(ctx context.Context, matchID string, score1, score2 int) error
	UpdateStatus(ctx context.Context, matchID string, status Status) error
}

type EventRepository interface {
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Event, error)
	ListByMatches(ctx context.Context, matchIDs []string) ([]Event, error)
	Create(ctx context.Context, item Event) error
	Delete(ctx context.Context, eventID string) (bool, error)
}

type StatRepository interface {
	ListByMatch(ctx context.Context, matchID string) ([]PlayerStat, error)
	ListByMatches(ctx context.Context, matchIDs []string) ([]PlayerStat, error)
	ReplaceByMatch(ctx context.Context, matchID string, items []PlayerStat) error
}
