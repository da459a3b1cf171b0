package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/futsal-club/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/futsal-club/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo roster into an empty players table.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := memory.SeedPlayers()
	models := make([]any, 0, len(seeds))
	for _, item := range seeds {
		models = append(models, playerInsertModel{
			PublicID:  item.ID,
			Name:      item.Name,
			Role:      string(item.Role),
			IsGuest:   item.IsGuest,
			Skills:    skillsToArray(item.Skills),
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}

	return withTx(ctx, db, "bootstrap seed", func(tx *sqlx.Tx) error {
		query, args, err := qb.InsertModels("players", models, "ON CONFLICT (public_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert seed players: %w", err)
		}
		return nil
	})
}
