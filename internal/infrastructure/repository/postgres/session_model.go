package postgres

import (
	"database/sql"
	"time"
)

type sessionTableModel struct {
	ID                int64          `db:"id"`
	PublicID          string         `db:"public_id"`
	SessionDate       time.Time      `db:"session_date"`
	Venue             string         `db:"venue"`
	MVPPlayerPublicID sql.NullString `db:"mvp_player_public_id"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

type sessionInsertModel struct {
	PublicID    string    `db:"public_id"`
	SessionDate time.Time `db:"session_date"`
	Venue       string    `db:"venue"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type attendanceTableModel struct {
	SessionPublicID string         `db:"session_public_id"`
	Position        int            `db:"position"`
	PlayerPublicID  sql.NullString `db:"player_public_id"`
	GuestName       sql.NullString `db:"guest_name"`
}

type teamTableModel struct {
	PublicID          string         `db:"public_id"`
	SessionPublicID   string         `db:"session_public_id"`
	Position          int            `db:"position"`
	Name              string         `db:"name"`
	VestColor         string         `db:"vest_color"`
	TeamType          string         `db:"team_type"`
	KeyPlayerPublicID sql.NullString `db:"key_player_public_id"`
	KeyGuestName      sql.NullString `db:"key_guest_name"`
}

type teamMemberTableModel struct {
	TeamPublicID   string         `db:"team_public_id"`
	Position       int            `db:"position"`
	PlayerPublicID sql.NullString `db:"player_public_id"`
	GuestName      sql.NullString `db:"guest_name"`
}
