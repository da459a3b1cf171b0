package session

import (
	"fmt"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
)

// Session is one club meet-up. Its season is the calendar year of Date.
type Session struct {
	ID          string
	Date        time.Time
	Venue       string
	MVPPlayerID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s Session) Year() int {
	return s.Date.Year()
}

func (s Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if s.Date.IsZero() {
		return fmt.Errorf("session date is required")
	}
	return nil
}

// ValidateAttendance rejects blank or duplicated attendees.
func ValidateAttendance(attendees []player.Ref) error {
	seen := make(map[string]struct{}, len(attendees))
	for _, item := range attendees {
		if err := item.Validate(); err != nil {
			return err
		}
		key := item.Key()
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate attendee %s", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// SeasonRange returns the [start, end) window of a season year in UTC.
func SeasonRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}
