package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/futsal-club/internal/domain/match"
	qb "github.com/riskibarqy/futsal-club/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

var matchSelectColumns = []string{
	"public_id",
	"session_public_id",
	"match_no",
	"team1_public_id",
	"team2_public_id",
	"score1",
	"score2",
	"status",
	"created_at",
	"updated_at",
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("public_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListBySession(ctx context.Context, sessionID string) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("session_public_id", sessionID)).
		OrderBy("match_no").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by session query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by session: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

// ReplaceBySession swaps the schedule in one transaction; events and stats
// of the old matches cascade away with them.
func (r *MatchRepository) ReplaceBySession(ctx context.Context, sessionID string, items []match.Match) error {
	return withTx(ctx, r.db, "replace matches", func(tx *sqlx.Tx) error {
		deleteQuery, deleteArgs, err := qb.DeleteFrom("matches").
			Where(qb.Eq("session_public_id", sessionID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("delete matches: %w", err)
		}
		if len(items) == 0 {
			return nil
		}

		models := make([]any, 0, len(items))
		for _, item := range items {
			if item.SessionID != sessionID {
				return fmt.Errorf("match %s belongs to session %s, not %s", item.ID, item.SessionID, sessionID)
			}
			models = append(models, matchTableModel{
				PublicID:        item.ID,
				SessionPublicID: item.SessionID,
				MatchNo:         item.MatchNo,
				Team1PublicID:   item.Team1ID,
				Team2PublicID:   item.Team2ID,
				Score1:          item.Score1,
				Score2:          item.Score2,
				Status:          string(item.Status),
				CreatedAt:       item.CreatedAt,
				UpdatedAt:       item.UpdatedAt,
			})
		}
		insertQuery, insertArgs, err := qb.InsertModels("matches", models, "")
		if err != nil {
			return fmt.Errorf("build insert matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert matches: %w", err)
		}
		return nil
	})
}

func (r *MatchRepository) UpdateScore(ctx context.Context, matchID string, score1, score2 int) error {
	return r.update(ctx, matchID, "score", qb.Update("matches").
		Set("score1", score1).
		Set("score2", score2))
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, matchID string, status match.Status) error {
	return r.update(ctx, matchID, "status", qb.Update("matches").Set("status", string(status)))
}

func (r *MatchRepository) update(ctx context.Context, matchID, what string, builder *qb.UpdateBuilder) error {
	query, args, err := builder.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match %s query: %w", what, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match %s: %w", what, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update match %s: %w", what, err)
	}
	if affected == 0 {
		return fmt.Errorf("update match %s: match %s not found", what, matchID)
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:        row.PublicID,
		SessionID: row.SessionPublicID,
		MatchNo:   row.MatchNo,
		Team1ID:   row.Team1PublicID,
		Team2ID:   row.Team2PublicID,
		Score1:    row.Score1,
		Score2:    row.Score2,
		Status:    match.Status(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type MatchEventRepository struct {
	db *sqlx.DB
}

var matchEventSelectColumns = []string{
	"public_id",
	"match_public_id",
	"event_type",
	"team_public_id",
	"player_public_id",
	"guest_name",
	"assister_public_id",
	"minute",
	"created_at",
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

func (r *MatchEventRepository) GetByID(ctx context.Context, eventID string) (match.Event, bool, error) {
	query, args, err := qb.Select(matchEventSelectColumns...).From("match_events").
		Where(qb.Eq("public_id", eventID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Event{}, false, fmt.Errorf("build select match event by id query: %w", err)
	}

	var row matchEventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Event{}, false, nil
		}
		return match.Event{}, false, fmt.Errorf("select match event by id: %w", err)
	}
	return eventFromRow(row), true, nil
}

func (r *MatchEventRepository) ListByMatch(ctx context.Context, matchID string) ([]match.Event, error) {
	return r.ListByMatches(ctx, []string{matchID})
}

func (r *MatchEventRepository) ListByMatches(ctx context.Context, matchIDs []string) ([]match.Event, error) {
	if len(matchIDs) == 0 {
		return []match.Event{}, nil
	}

	query, args, err := qb.Select(matchEventSelectColumns...).From("match_events").
		Where(qb.InStrings("match_public_id", matchIDs)).
		OrderBy("minute", "created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match events: %w", err)
	}

	out := make([]match.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *MatchEventRepository) Create(ctx context.Context, item match.Event) error {
	playerID, guestName := refColumns(item.Actor)
	query, args, err := qb.InsertModel("match_events", matchEventTableModel{
		PublicID:         item.ID,
		MatchPublicID:    item.MatchID,
		EventType:        string(item.Type),
		TeamPublicID:     item.TeamID,
		PlayerPublicID:   playerID,
		GuestName:        guestName,
		AssisterPublicID: nullString(item.AssisterID),
		Minute:           item.Minute,
		CreatedAt:        item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert match event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match event: %w", err)
	}
	return nil
}

func (r *MatchEventRepository) Delete(ctx context.Context, eventID string) (bool, error) {
	query, args, err := qb.DeleteFrom("match_events").
		Where(qb.Eq("public_id", eventID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete match event query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete match event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete match event: %w", err)
	}
	return affected > 0, nil
}

func eventFromRow(row matchEventTableModel) match.Event {
	return match.Event{
		ID:         row.PublicID,
		MatchID:    row.MatchPublicID,
		Type:       match.EventType(row.EventType),
		TeamID:     row.TeamPublicID,
		Actor:      refFromColumns(row.PlayerPublicID, row.GuestName),
		AssisterID: row.AssisterPublicID.String,
		Minute:     row.Minute,
		CreatedAt:  row.CreatedAt,
	}
}

type MatchStatRepository struct {
	db *sqlx.DB
}

func NewMatchStatRepository(db *sqlx.DB) *MatchStatRepository {
	return &MatchStatRepository{db: db}
}

func (r *MatchStatRepository) ListByMatch(ctx context.Context, matchID string) ([]match.PlayerStat, error) {
	return r.ListByMatches(ctx, []string{matchID})
}

func (r *MatchStatRepository) ListByMatches(ctx context.Context, matchIDs []string) ([]match.PlayerStat, error) {
	if len(matchIDs) == 0 {
		return []match.PlayerStat{}, nil
	}

	query, args, err := qb.Select("match_public_id", "player_public_id", "team_public_id", "position", "goals", "assists", "blocks").
		From("match_player_stats").
		Where(qb.InStrings("match_public_id", matchIDs)).
		OrderBy("match_public_id", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player stats query: %w", err)
	}

	var rows []matchPlayerStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player stats: %w", err)
	}

	out := make([]match.PlayerStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.PlayerStat{
			MatchID:  row.MatchPublicID,
			PlayerID: row.PlayerPublicID,
			TeamID:   row.TeamPublicID,
			Goals:    row.Goals,
			Assists:  row.Assists,
			Blocks:   row.Blocks,
		})
	}
	return out, nil
}

func (r *MatchStatRepository) ReplaceByMatch(ctx context.Context, matchID string, items []match.PlayerStat) error {
	return withTx(ctx, r.db, "replace player stats", func(tx *sqlx.Tx) error {
		deleteQuery, deleteArgs, err := qb.DeleteFrom("match_player_stats").
			Where(qb.Eq("match_public_id", matchID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete player stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("delete player stats: %w", err)
		}
		if len(items) == 0 {
			return nil
		}

		models := make([]any, 0, len(items))
		for idx, item := range items {
			models = append(models, matchPlayerStatTableModel{
				MatchPublicID:  matchID,
				PlayerPublicID: item.PlayerID,
				TeamPublicID:   item.TeamID,
				Position:       idx,
				Goals:          item.Goals,
				Assists:        item.Assists,
				Blocks:         item.Blocks,
			})
		}
		insertQuery, insertArgs, err := qb.InsertModels("match_player_stats", models, "")
		if err != nil {
			return fmt.Errorf("build insert player stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert player stats: %w", err)
		}
		return nil
	})
}
