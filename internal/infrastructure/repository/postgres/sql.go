package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
)

const uniqueViolation = pq.ErrorCode("23505")

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// withTx runs fn inside a transaction and commits when it returns nil.
func withTx(ctx context.Context, db *sqlx.DB, name string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx %s: %w", name, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s tx: %w", name, err)
	}
	return nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func refColumns(ref player.Ref) (sql.NullString, sql.NullString) {
	return nullString(ref.PlayerID), nullString(ref.GuestName)
}

func refFromColumns(playerID, guestName sql.NullString) player.Ref {
	if playerID.Valid && playerID.String != "" {
		return player.PlayerRef(playerID.String)
	}
	return player.GuestRef(guestName.String)
}

func skillsToArray(v skill.Vector) pq.Int64Array {
	out := make(pq.Int64Array, skill.Count)
	for idx, value := range v {
		out[idx] = int64(value)
	}
	return out
}

func skillsFromArray(values pq.Int64Array) (skill.Vector, error) {
	var out skill.Vector
	if len(values) != skill.Count {
		return out, fmt.Errorf("expected %d skill values, got %d", skill.Count, len(values))
	}
	for idx, value := range values {
		out[idx] = int(value)
	}
	return out, nil
}
