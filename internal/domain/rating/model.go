package rating

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/skill"
)

var (
	ErrEmptyRating     = errors.New("rating has no positive skill value")
	ErrSkillOutOfRange = errors.New("rating skill value out of range")
)

// Rating is one rater's assessment of one player. A zero skill means the
// rater skipped it.
type Rating struct {
	RaterID   string
	PlayerID  string
	Skills    skill.Vector
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Rating) Validate() error {
	if r.RaterID == "" {
		return fmt.Errorf("rater id is required")
	}
	if r.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	for idx, value := range r.Skills {
		if value < skill.MinValue || value > skill.MaxValue {
			return fmt.Errorf("%w: %s=%d", ErrSkillOutOfRange, skill.Skill(idx), value)
		}
	}
	if r.Skills.IsZero() {
		return ErrEmptyRating
	}

	return nil
}
