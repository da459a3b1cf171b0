package player

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/skill"
)

// Role decides the weight class of a member when they rate other players.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

var AllRoles = map[Role]struct{}{
	RoleAdmin:  {},
	RoleMember: {},
}

var (
	ErrUnknownRole   = errors.New("unknown player role")
	ErrEmptyPatch    = errors.New("player patch has no fields")
	ErrGuestNotRated = errors.New("guests cannot hold ratings")
)

func NormalizeRole(value string) Role {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if role == "" {
		return RoleMember
	}
	return role
}

// Player is a club member or a registered guest.
type Player struct {
	ID        string
	Name      string
	Role      Role
	IsGuest   bool
	Skills    skill.Vector
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overall is derived from the stored skills and never persisted.
func (p Player) Overall() float64 {
	return p.Skills.Overall()
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRole, p.Role)
	}
	if err := p.Skills.Validate(); err != nil {
		return fmt.Errorf("invalid player skills: %w", err)
	}

	return nil
}

// Patch lists the profile fields an update may touch. Skills are not here:
// they only change through rating aggregation.
type Patch struct {
	Name    *string
	Role    *Role
	IsGuest *bool
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Role == nil && p.IsGuest == nil
}

func (p Patch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("player name cannot be blank")
	}
	if p.Role != nil {
		if _, ok := AllRoles[*p.Role]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRole, *p.Role)
		}
	}
	return nil
}

func (p Patch) Apply(item Player) Player {
	if p.Name != nil {
		item.Name = strings.TrimSpace(*p.Name)
	}
	if p.Role != nil {
		item.Role = *p.Role
	}
	if p.IsGuest != nil {
		item.IsGuest = *p.IsGuest
	}
	return item
}

// Ref points at whoever stands on the pitch: a registered player or a
// free-text guest.
type Ref struct {
	PlayerID  string
	GuestName string
}

func PlayerRef(playerID string) Ref {
	return Ref{PlayerID: playerID}
}

func GuestRef(name string) Ref {
	return Ref{GuestName: strings.TrimSpace(name)}
}

func (r Ref) IsGuest() bool {
	return r.PlayerID == ""
}

func (r Ref) IsZero() bool {
	return r.PlayerID == "" && r.GuestName == ""
}

// Key is unique within one session roster.
func (r Ref) Key() string {
	if r.PlayerID != "" {
		return "player:" + r.PlayerID
	}
	return "guest:" + strings.ToLower(r.GuestName)
}

func (r Ref) Validate() error {
	if r.PlayerID != "" && r.GuestName != "" {
		return fmt.Errorf("attendee must be either a player or a guest")
	}
	if r.IsZero() {
		return fmt.Errorf("attendee player id or guest name is required")
	}
	return nil
}
