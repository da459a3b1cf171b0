package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	PublicID        string    `db:"public_id"`
	SessionPublicID string    `db:"session_public_id"`
	MatchNo         int       `db:"match_no"`
	Team1PublicID   string    `db:"team1_public_id"`
	Team2PublicID   string    `db:"team2_public_id"`
	Score1          int       `db:"score1"`
	Score2          int       `db:"score2"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type matchEventTableModel struct {
	PublicID         string         `db:"public_id"`
	MatchPublicID    string         `db:"match_public_id"`
	EventType        string         `db:"event_type"`
	TeamPublicID     string         `db:"team_public_id"`
	PlayerPublicID   sql.NullString `db:"player_public_id"`
	GuestName        sql.NullString `db:"guest_name"`
	AssisterPublicID sql.NullString `db:"assister_public_id"`
	Minute           int            `db:"minute"`
	CreatedAt        time.Time      `db:"created_at"`
}

type matchPlayerStatTableModel struct {
	MatchPublicID  string `db:"match_public_id"`
	PlayerPublicID string `db:"player_public_id"`
	TeamPublicID   string `db:"team_public_id"`
	Position       int    `db:"position"`
	Goals          int    `db:"goals"`
	Assists        int    `db:"assists"`
	Blocks         int    `db:"blocks"`
}
