package ranking

// Honor is the top holder set of one category in one season.
type Honor struct {
	Year     int      `json:"year"`
	Category Category `json:"category"`
	Value    float64  `json:"value"`
	Holders  []Entry  `json:"holders"`
}

// HallOfFame picks, per category, every eligible player sharing the best
// positive value. Categories with no such player are left out.
func HallOfFame(snapshot Snapshot, rules Rules) []Honor {
	eligible := make([]Entry, 0, len(snapshot.Entries))
	for _, item := range snapshot.Entries {
		if item.Attendance >= rules.HallOfFameMinAttendance {
			eligible = append(eligible, item)
		}
	}

	out := make([]Honor, 0, len(Categories))
	for _, category := range Categories {
		best := 0.0
		var holders []Entry
		for _, item := range eligible {
			value := category.Value(item)
			switch {
			case value <= 0 || value < best:
			case value > best:
				best = value
				holders = []Entry{item}
			default:
				holders = append(holders, item)
			}
		}
		if len(holders) == 0 {
			continue
		}
		out = append(out, Honor{Year: snapshot.Year, Category: category, Value: best, Holders: holders})
	}
	return out
}
