package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/futsal-club/internal/domain/rating"
	qb "github.com/riskibarqy/futsal-club/internal/platform/querybuilder"
)

type RatingRepository struct {
	db *sqlx.DB
}

var ratingSelectColumns = []string{
	"id",
	"rater_public_id",
	"player_public_id",
	"skills",
	"comment",
	"created_at",
	"updated_at",
}

func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) ListByPlayer(ctx context.Context, playerID string) ([]rating.Rating, error) {
	query, args, err := qb.Select(ratingSelectColumns...).From("player_ratings").
		Where(qb.Eq("player_public_id", playerID)).
		OrderBy("rater_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select ratings by player query: %w", err)
	}

	var rows []ratingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select ratings by player: %w", err)
	}

	out := make([]rating.Rating, 0, len(rows))
	for _, row := range rows {
		skills, err := skillsFromArray(row.Skills)
		if err != nil {
			return nil, fmt.Errorf("rating %s->%s: %w", row.RaterPublicID, row.PlayerPublicID, err)
		}
		out = append(out, rating.Rating{
			RaterID:   row.RaterPublicID,
			PlayerID:  row.PlayerPublicID,
			Skills:    skills,
			Comment:   row.Comment,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *RatingRepository) Upsert(ctx context.Context, item rating.Rating) error {
	query, args, err := qb.InsertModel("player_ratings", ratingInsertModel{
		RaterPublicID:  item.RaterID,
		PlayerPublicID: item.PlayerID,
		Skills:         skillsToArray(item.Skills),
		Comment:        item.Comment,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}, `ON CONFLICT (rater_public_id, player_public_id) DO UPDATE SET
skills = EXCLUDED.skills,
comment = EXCLUDED.comment,
updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert rating query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

func (r *RatingRepository) Delete(ctx context.Context, raterID, playerID string) (bool, error) {
	query, args, err := qb.DeleteFrom("player_ratings").
		Where(
			qb.Eq("rater_public_id", raterID),
			qb.Eq("player_public_id", playerID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete rating query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete rating: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete rating: %w", err)
	}
	return affected > 0, nil
}
