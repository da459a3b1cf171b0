package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/session"
	qb "github.com/riskibarqy/futsal-club/internal/platform/querybuilder"
)

type SessionRepository struct {
	db *sqlx.DB
}

var sessionSelectColumns = []string{
	"id",
	"public_id",
	"session_date",
	"venue",
	"mvp_player_public_id",
	"created_at",
	"updated_at",
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (session.Session, bool, error) {
	query, args, err := qb.Select(sessionSelectColumns...).From("sessions").
		Where(qb.Eq("public_id", sessionID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return session.Session{}, false, fmt.Errorf("build select session by id query: %w", err)
	}

	var row sessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return session.Session{}, false, nil
		}
		return session.Session{}, false, fmt.Errorf("select session by id: %w", err)
	}
	return sessionFromRow(row), true, nil
}

func (r *SessionRepository) ListByYear(ctx context.Context, year int) ([]session.Session, error) {
	start, end := session.SeasonRange(year)
	query, args, err := qb.Select(sessionSelectColumns...).From("sessions").
		Where(
			qb.Expr("session_date >= ?", start),
			qb.Expr("session_date < ?", end),
		).
		OrderBy("session_date", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sessions by year query: %w", err)
	}

	var rows []sessionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select sessions by year: %w", err)
	}

	out := make([]session.Session, 0, len(rows))
	for _, row := range rows {
		out = append(out, sessionFromRow(row))
	}
	return out, nil
}

func (r *SessionRepository) ListYears(ctx context.Context) ([]int, error) {
	var years []int
	if err := r.db.SelectContext(ctx, &years, `
SELECT DISTINCT EXTRACT(YEAR FROM session_date AT TIME ZONE 'UTC')::INT AS season_year
FROM sessions
ORDER BY season_year DESC`); err != nil {
		return nil, fmt.Errorf("select session years: %w", err)
	}
	return years, nil
}

func (r *SessionRepository) Create(ctx context.Context, item session.Session) error {
	query, args, err := qb.InsertModel("sessions", sessionInsertModel{
		PublicID:    item.ID,
		SessionDate: item.Date.UTC(),
		Venue:       item.Venue,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("session %s already exists: %w", item.ID, err)
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) SetMVP(ctx context.Context, sessionID, playerID string) error {
	query, args, err := qb.Update("sessions").
		Set("mvp_player_public_id", nullString(playerID)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", sessionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update session mvp query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session mvp: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update session mvp: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update session mvp: session %s not found", sessionID)
	}
	return nil
}

func (r *SessionRepository) ListAttendance(ctx context.Context, sessionID string) ([]player.Ref, error) {
	query, args, err := qb.Select("session_public_id", "position", "player_public_id", "guest_name").
		From("session_attendance").
		Where(qb.Eq("session_public_id", sessionID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select attendance query: %w", err)
	}

	var rows []attendanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select attendance: %w", err)
	}

	out := make([]player.Ref, 0, len(rows))
	for _, row := range rows {
		out = append(out, refFromColumns(row.PlayerPublicID, row.GuestName))
	}
	return out, nil
}

// ReplaceAttendance swaps the attendee list in one transaction.
func (r *SessionRepository) ReplaceAttendance(ctx context.Context, sessionID string, attendees []player.Ref) error {
	return withTx(ctx, r.db, "replace attendance", func(tx *sqlx.Tx) error {
		deleteQuery, deleteArgs, err := qb.DeleteFrom("session_attendance").
			Where(qb.Eq("session_public_id", sessionID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete attendance query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("delete attendance: %w", err)
		}
		if len(attendees) == 0 {
			return nil
		}

		models := make([]any, 0, len(attendees))
		for idx, ref := range attendees {
			playerID, guestName := refColumns(ref)
			models = append(models, attendanceTableModel{
				SessionPublicID: sessionID,
				Position:        idx,
				PlayerPublicID:  playerID,
				GuestName:       guestName,
			})
		}
		insertQuery, insertArgs, err := qb.InsertModels("session_attendance", models, "")
		if err != nil {
			return fmt.Errorf("build insert attendance query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert attendance: %w", err)
		}
		return nil
	})
}

func sessionFromRow(row sessionTableModel) session.Session {
	return session.Session{
		ID:          row.PublicID,
		Date:        row.SessionDate.UTC(),
		Venue:       row.Venue,
		MVPPlayerID: row.MVPPlayerPublicID.String,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
