package postgres

import (
	"time"

	"github.com/lib/pq"
)

type playerTableModel struct {
	ID        int64         `db:"id"`
	PublicID  string        `db:"public_id"`
	Name      string        `db:"name"`
	Role      string        `db:"role"`
	IsGuest   bool          `db:"is_guest"`
	Skills    pq.Int64Array `db:"skills"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

type playerInsertModel struct {
	PublicID  string        `db:"public_id"`
	Name      string        `db:"name"`
	Role      string        `db:"role"`
	IsGuest   bool          `db:"is_guest"`
	Skills    pq.Int64Array `db:"skills"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

type ratingTableModel struct {
	ID             int64         `db:"id"`
	RaterPublicID  string        `db:"rater_public_id"`
	PlayerPublicID string        `db:"player_public_id"`
	Skills         pq.Int64Array `db:"skills"`
	Comment        string        `db:"comment"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

type ratingInsertModel struct {
	RaterPublicID  string        `db:"rater_public_id"`
	PlayerPublicID string        `db:"player_public_id"`
	Skills         pq.Int64Array `db:"skills"`
	Comment        string        `db:"comment"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}
