package match

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
)

type EventType string

const (
	EventGoal    EventType = "GOAL"
	EventDefense EventType = "DEFENSE"
)

var (
	ErrUnknownEventType  = errors.New("unknown match event type")
	ErrAssistOnDefense   = errors.New("defense events cannot carry an assist")
	ErrTeamNotInMatch    = errors.New("team does not play in this match")
	ErrSelfAssist        = errors.New("scorer cannot assist own goal")
	ErrEventMatchMissing = errors.New("event match id is required")
)

func ParseEventType(value string) (EventType, error) {
	eventType := EventType(strings.ToUpper(strings.TrimSpace(value)))
	switch eventType {
	case EventGoal, EventDefense:
		return eventType, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownEventType, value)
	}
}

// Event is an append-only fact recorded during a match.
type Event struct {
	ID         string
	MatchID    string
	Type       EventType
	TeamID     string
	Actor      player.Ref
	AssisterID string
	Minute     int
	CreatedAt  time.Time
}

// ValidateFor checks the event against the match it is recorded on.
func (e Event) ValidateFor(m Match) error {
	if e.MatchID == "" {
		return ErrEventMatchMissing
	}
	if e.MatchID != m.ID {
		return fmt.Errorf("event match %s does not match %s", e.MatchID, m.ID)
	}
	if _, err := ParseEventType(string(e.Type)); err != nil {
		return err
	}
	if !m.HasTeam(e.TeamID) {
		return fmt.Errorf("%w: team=%s match=%s", ErrTeamNotInMatch, e.TeamID, m.ID)
	}
	if err := e.Actor.Validate(); err != nil {
		return fmt.Errorf("event actor: %w", err)
	}
	if e.Minute < 0 {
		return fmt.Errorf("event minute cannot be negative")
	}
	if e.AssisterID != "" {
		if e.Type != EventGoal {
			return ErrAssistOnDefense
		}
		if e.AssisterID == e.Actor.PlayerID {
			return ErrSelfAssist
		}
	}
	return nil
}
