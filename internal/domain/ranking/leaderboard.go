package ranking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Category string

const (
	CategoryMVPScore   Category = "mvp-score"
	CategoryGoals      Category = "goals"
	CategoryAssists    Category = "assists"
	CategoryDefenses   Category = "defenses"
	CategoryAttendance Category = "attendance"
	CategoryWinRate    Category = "win-rate"
	CategoryMVPCount   Category = "mvp-count"
	CategoryPoints     Category = "points"
	CategoryPPM        Category = "ppm"
)

// Categories lists every leaderboard in display order.
var Categories = []Category{
	CategoryMVPScore,
	CategoryGoals,
	CategoryAssists,
	CategoryDefenses,
	CategoryAttendance,
	CategoryWinRate,
	CategoryMVPCount,
	CategoryPoints,
	CategoryPPM,
}

var ErrUnknownCategory = errors.New("unknown leaderboard category")

func ParseCategory(value string) (Category, error) {
	category := Category(strings.ToLower(strings.TrimSpace(value)))
	for _, item := range Categories {
		if item == category {
			return category, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownCategory, value)
}

// Value extracts the metric a category ranks on.
func (c Category) Value(entry Entry) float64 {
	switch c {
	case CategoryMVPScore:
		return entry.MVPScore
	case CategoryGoals:
		return float64(entry.Goals)
	case CategoryAssists:
		return float64(entry.Assists)
	case CategoryDefenses:
		return float64(entry.Defenses)
	case CategoryAttendance:
		return float64(entry.Attendance)
	case CategoryWinRate:
		return entry.WinRate
	case CategoryMVPCount:
		return float64(entry.MVPCount)
	case CategoryPoints:
		return float64(entry.Points)
	case CategoryPPM:
		return entry.PPM
	default:
		return 0
	}
}

// Leaderboard re-sorts the snapshot by category, keeping only positive values.
// Ties keep snapshot order. limit <= 0 returns every row.
func Leaderboard(snapshot Snapshot, category Category, limit int) []Entry {
	out := make([]Entry, 0, len(snapshot.Entries))
	for _, item := range snapshot.Entries {
		if category.Value(item) > 0 {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return category.Value(out[i]) > category.Value(out[j])
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
