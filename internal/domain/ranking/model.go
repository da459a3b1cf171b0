package ranking

import (
	"context"
	"time"
)

// Entry is one player's season line. The JSON shape is the stored snapshot
// format; changing it requires dropping every stored snapshot.
type Entry struct {
	PlayerID          string  `json:"playerId"`
	Name              string  `json:"name"`
	Goals             int     `json:"goals"`
	Assists           int     `json:"assists"`
	Defenses          int     `json:"defenses"`
	Attendance        int     `json:"attendance"`
	Games             int     `json:"games"`
	MatchesWithEvents int     `json:"matchesWithEvents"`
	Won               int     `json:"won"`
	Drawn             int     `json:"drawn"`
	Lost              int     `json:"lost"`
	Points            int     `json:"points"`
	PPM               float64 `json:"ppm"`
	SessionWins       int     `json:"sessionWins"`
	WinRate           float64 `json:"winRate"`
	FirstPlaces       int     `json:"firstPlaces"`
	SecondPlaces      int     `json:"secondPlaces"`
	ThirdPlaces       int     `json:"thirdPlaces"`
	MVPScore          float64 `json:"mvpScore"`
	MVPCount          int     `json:"mvpCount"`
}

// Snapshot is the persisted ranking of one season, sorted by MVP score.
type Snapshot struct {
	Year        int
	Entries     []Entry
	RefreshedAt time.Time
	RefreshedBy string
}

// Clone returns a copy that shares no backing array with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Entries = append([]Entry(nil), s.Entries...)
	return out
}

func (s Snapshot) Find(playerID string) (Entry, bool) {
	for _, item := range s.Entries {
		if item.PlayerID == playerID {
			return item, true
		}
	}
	return Entry{}, false
}

// Repository is the per-season snapshot store.
type Repository interface {
	Get(ctx context.Context, year int) (Snapshot, bool, error)
	Upsert(ctx context.Context, snapshot Snapshot) error
	Delete(ctx context.Context, year int) error
}
