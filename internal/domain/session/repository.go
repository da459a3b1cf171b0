package session

import (
	"context"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
)

type Repository interface {
	GetByID(ctx context.Context, sessionID string) (Session, bool, error)
	ListByYear(ctx context.Context, year int) ([]Session, error)
	ListYears(ctx context.Context) ([]int, error)
	Create(ctx context.Context, item Session) error
	SetMVP(ctx context.Context, sessionID, playerID string) error
	ListAttendance(ctx context.Context, sessionID string) ([]player.Ref, error)
	ReplaceAttendance(ctx context.Context, sessionID string, attendees []player.Ref) error
}
