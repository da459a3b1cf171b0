package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/team"
	qb "github.com/riskibarqy/futsal-club/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"public_id",
	"session_public_id",
	"position",
	"name",
	"vest_color",
	"team_type",
	"key_player_public_id",
	"key_guest_name",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListBySession(ctx context.Context, sessionID string) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("session_teams").
		Where(qb.Eq("session_public_id", sessionID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by session query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by session: %w", err)
	}
	if len(rows) == 0 {
		return []team.Team{}, nil
	}

	teamIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		teamIDs = append(teamIDs, row.PublicID)
	}
	memberQuery, memberArgs, err := qb.Select("team_public_id", "position", "player_public_id", "guest_name").
		From("session_team_members").
		Where(qb.InStrings("team_public_id", teamIDs)).
		OrderBy("team_public_id", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team members query: %w", err)
	}

	var memberRows []teamMemberTableModel
	if err := r.db.SelectContext(ctx, &memberRows, memberQuery, memberArgs...); err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}
	members := make(map[string][]player.Ref, len(rows))
	for _, row := range memberRows {
		members[row.TeamPublicID] = append(members[row.TeamPublicID], refFromColumns(row.PlayerPublicID, row.GuestName))
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		item := team.Team{
			ID:        row.PublicID,
			SessionID: row.SessionPublicID,
			Name:      row.Name,
			VestColor: row.VestColor,
			Type:      team.Type(row.TeamType),
			Members:   members[row.PublicID],
		}
		if row.KeyPlayerPublicID.Valid || row.KeyGuestName.Valid {
			key := refFromColumns(row.KeyPlayerPublicID, row.KeyGuestName)
			item.KeyPlayer = &key
		}
		out = append(out, item)
	}
	return out, nil
}

// ReplaceBySession drops the session's teams, members cascading, and inserts
// the new set in one transaction.
func (r *TeamRepository) ReplaceBySession(ctx context.Context, sessionID string, teams []team.Team) error {
	return withTx(ctx, r.db, "replace teams", func(tx *sqlx.Tx) error {
		deleteQuery, deleteArgs, err := qb.DeleteFrom("session_teams").
			Where(qb.Eq("session_public_id", sessionID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete teams query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("delete teams: %w", err)
		}
		if len(teams) == 0 {
			return nil
		}

		teamModels := make([]any, 0, len(teams))
		memberModels := make([]any, 0)
		for idx, item := range teams {
			row := teamTableModel{
				PublicID:        item.ID,
				SessionPublicID: sessionID,
				Position:        idx,
				Name:            item.Name,
				VestColor:       item.VestColor,
				TeamType:        string(item.Type),
			}
			if item.KeyPlayer != nil {
				row.KeyPlayerPublicID, row.KeyGuestName = refColumns(*item.KeyPlayer)
			}
			teamModels = append(teamModels, row)

			for memberIdx, ref := range item.Members {
				playerID, guestName := refColumns(ref)
				memberModels = append(memberModels, teamMemberTableModel{
					TeamPublicID:   item.ID,
					Position:       memberIdx,
					PlayerPublicID: playerID,
					GuestName:      guestName,
				})
			}
		}

		teamQuery, teamArgs, err := qb.InsertModels("session_teams", teamModels, "")
		if err != nil {
			return fmt.Errorf("build insert teams query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, teamQuery, teamArgs...); err != nil {
			return fmt.Errorf("insert teams: %w", err)
		}
		if len(memberModels) == 0 {
			return nil
		}
		memberQuery, memberArgs, err := qb.InsertModels("session_team_members", memberModels, "")
		if err != nil {
			return fmt.Errorf("build insert team members query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, memberQuery, memberArgs...); err != nil {
			return fmt.Errorf("insert team members: %w", err)
		}
		return nil
	})
}
