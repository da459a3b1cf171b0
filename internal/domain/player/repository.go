package player

import (
	"context"

	"github.com/riskibarqy/futsal-club/internal/domain/skill"
)

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	Create(ctx context.Context, item Player) error
	UpdateProfile(ctx context.Context, playerID string, patch Patch) (Player, error)
	UpdateSkills(ctx context.Context, playerID string, skills skill.Vector) error
}
