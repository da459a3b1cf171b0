package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
	qb "github.com/riskibarqy/futsal-club/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"role",
	"is_guest",
	"skills",
	"created_at",
	"updated_at",
}

// playerProfileColumns is the only set of columns a profile patch may write.
var playerProfileColumns = qb.Allow("name", "role", "is_guest")

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	return playersFromRows(rows)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("public_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}
	item, err := playerFromRow(row)
	if err != nil {
		return player.Player{}, false, err
	}
	return item, true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.InStrings("public_id", playerIDs)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}
	return playersFromRows(rows)
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertModel("players", playerInsertModel{
		PublicID:  item.ID,
		Name:      item.Name,
		Role:      string(item.Role),
		IsGuest:   item.IsGuest,
		Skills:    skillsToArray(item.Skills),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("player %s already exists: %w", item.ID, err)
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

// UpdateProfile writes only the patched columns through the profile allow-list.
func (r *PlayerRepository) UpdateProfile(ctx context.Context, playerID string, patch player.Patch) (player.Player, error) {
	builder := qb.Update("players")
	if patch.Name != nil {
		builder.SetAllowed(playerProfileColumns, "name", strings.TrimSpace(*patch.Name))
	}
	if patch.Role != nil {
		builder.SetAllowed(playerProfileColumns, "role", string(*patch.Role))
	}
	if patch.IsGuest != nil {
		builder.SetAllowed(playerProfileColumns, "is_guest", *patch.IsGuest)
	}
	query, args, err := builder.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build update player profile query: %w", err)
	}

	var row playerTableModel
	query += " RETURNING " + strings.Join(playerSelectColumns, ", ")
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, fmt.Errorf("update player profile: player %s not found", playerID)
		}
		return player.Player{}, fmt.Errorf("update player profile: %w", err)
	}
	return playerFromRow(row)
}

func (r *PlayerRepository) UpdateSkills(ctx context.Context, playerID string, skills skill.Vector) error {
	query, args, err := qb.Update("players").
		Set("skills", skillsToArray(skills)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player skills query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player skills: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update player skills: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update player skills: player %s not found", playerID)
	}
	return nil
}

func playersFromRows(rows []playerTableModel) ([]player.Player, error) {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		item, err := playerFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func playerFromRow(row playerTableModel) (player.Player, error) {
	skills, err := skillsFromArray(row.Skills)
	if err != nil {
		return player.Player{}, fmt.Errorf("player %s: %w", row.PublicID, err)
	}
	return player.Player{
		ID:        row.PublicID,
		Name:      row.Name,
		Role:      player.Role(row.Role),
		IsGuest:   row.IsGuest,
		Skills:    skills,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
