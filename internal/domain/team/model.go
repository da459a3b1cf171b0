package team

import (
	"fmt"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
)

// Type describes where a team's strength sits.
type Type string

const (
	TypeAttack   Type = "attack"
	TypeDefense  Type = "defense"
	TypeBalanced Type = "balanced"
)

// VestColors is handed out in team order.
var VestColors = []string{"orange", "blue", "yellow"}

// Team is one side of a session. It is always replaced as a whole.
type Team struct {
	ID        string
	SessionID string
	Name      string
	VestColor string
	Type      Type
	KeyPlayer *player.Ref
	Members   []player.Ref
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.SessionID == "" {
		return fmt.Errorf("team session id is required")
	}
	if len(t.Members) == 0 {
		return fmt.Errorf("team %s has no members", t.ID)
	}
	seen := make(map[string]struct{}, len(t.Members))
	for _, member := range t.Members {
		if err := member.Validate(); err != nil {
			return fmt.Errorf("team %s: %w", t.ID, err)
		}
		key := member.Key()
		if _, exists := seen[key]; exists {
			return fmt.Errorf("team %s has duplicate member %s", t.ID, key)
		}
		seen[key] = struct{}{}
	}

	return nil
}

func (t Team) HasPlayer(playerID string) bool {
	for _, member := range t.Members {
		if member.PlayerID == playerID {
			return true
		}
	}
	return false
}

// ValidateRoster rejects an attendee placed on more than one team.
func ValidateRoster(teams []Team) error {
	seen := make(map[string]string)
	for _, item := range teams {
		if err := item.Validate(); err != nil {
			return err
		}
		for _, member := range item.Members {
			key := member.Key()
			if other, exists := seen[key]; exists {
				return fmt.Errorf("%s is on both team %s and team %s", key, other, item.ID)
			}
			seen[key] = item.ID
		}
	}
	return nil
}
