package match

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
)

var AllStatuses = map[Status]struct{}{
	StatusPending:   {},
	StatusPlaying:   {},
	StatusCompleted: {},
}

var ErrUnknownStatus = errors.New("unknown match status")

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := AllStatuses[status]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownStatus, value)
	}
	return status, nil
}

// Match is one fixture between two teams of a session. Scores are derived
// from events unless explicitly overridden.
type Match struct {
	ID        string
	SessionID string
	MatchNo   int
	Team1ID   string
	Team2ID   string
	Score1    int
	Score2    int
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m Match) IsCompleted() bool {
	return m.Status == StatusCompleted
}

func (m Match) HasTeam(teamID string) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}

// Result reports goals for and against from teamID's side.
func (m Match) Result(teamID string) (goalsFor, goalsAgainst int, ok bool) {
	switch teamID {
	case m.Team1ID:
		return m.Score1, m.Score2, true
	case m.Team2ID:
		return m.Score2, m.Score1, true
	default:
		return 0, 0, false
	}
}
