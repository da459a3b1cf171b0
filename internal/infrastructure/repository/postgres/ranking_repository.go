package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	qb "github.com/riskibarqy/futsal-club/internal/platform/querybuilder"
)

type rankingSnapshotTableModel struct {
	SeasonYear  int       `db:"season_year"`
	Payload     []byte    `db:"payload"`
	RefreshedAt time.Time `db:"refreshed_at"`
	RefreshedBy string    `db:"refreshed_by"`
}

type rankingSnapshotInsertModel struct {
	SeasonYear  int       `db:"season_year"`
	Payload     string    `db:"payload"`
	RefreshedAt time.Time `db:"refreshed_at"`
	RefreshedBy string    `db:"refreshed_by"`
}

// RankingRepository keeps one compiled snapshot per season.
type RankingRepository struct {
	db *sqlx.DB
}

func NewRankingRepository(db *sqlx.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

func (r *RankingRepository) Get(ctx context.Context, year int) (ranking.Snapshot, bool, error) {
	query, args, err := qb.Select("season_year", "payload", "refreshed_at", "refreshed_by").
		From("ranking_snapshots").
		Where(qb.Eq("season_year", year)).
		Limit(1).
		ToSQL()
	if err != nil {
		return ranking.Snapshot{}, false, fmt.Errorf("build select ranking snapshot query: %w", err)
	}

	var row rankingSnapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return ranking.Snapshot{}, false, nil
		}
		return ranking.Snapshot{}, false, fmt.Errorf("select ranking snapshot: %w", err)
	}

	entries, err := decodeSnapshotEntries(row.Payload)
	if err != nil {
		return ranking.Snapshot{}, false, fmt.Errorf("ranking snapshot year=%d: %w", year, err)
	}
	return ranking.Snapshot{
		Year:        row.SeasonYear,
		Entries:     entries,
		RefreshedAt: row.RefreshedAt.UTC(),
		RefreshedBy: row.RefreshedBy,
	}, true, nil
}

// Upsert is last-writer-wins.
func (r *RankingRepository) Upsert(ctx context.Context, snapshot ranking.Snapshot) error {
	payload, err := encodeSnapshotEntries(snapshot.Entries)
	if err != nil {
		return fmt.Errorf("ranking snapshot year=%d: %w", snapshot.Year, err)
	}

	query, args, err := qb.InsertModel("ranking_snapshots", rankingSnapshotInsertModel{
		SeasonYear:  snapshot.Year,
		Payload:     payload,
		RefreshedAt: snapshot.RefreshedAt,
		RefreshedBy: snapshot.RefreshedBy,
	}, `ON CONFLICT (season_year) DO UPDATE SET
payload = EXCLUDED.payload,
refreshed_at = EXCLUDED.refreshed_at,
refreshed_by = EXCLUDED.refreshed_by`)
	if err != nil {
		return fmt.Errorf("build upsert ranking snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert ranking snapshot: %w", err)
	}
	return nil
}

func (r *RankingRepository) Delete(ctx context.Context, year int) error {
	query, args, err := qb.DeleteFrom("ranking_snapshots").
		Where(qb.Eq("season_year", year)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete ranking snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete ranking snapshot: %w", err)
	}
	return nil
}
