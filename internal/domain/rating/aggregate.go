package rating

import (
	"math"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
)

const (
	AdminClassWeight  = 0.3
	MemberClassWeight = 0.7
)

// Weighted pairs a rating with the role its rater holds right now.
type Weighted struct {
	Rating    Rating
	RaterRole player.Role
}

// Aggregate folds every valid rating into one skill vector. The boolean is
// false when no rating counts, in which case current is returned untouched.
func Aggregate(current skill.Vector, ratings []Weighted) (skill.Vector, bool) {
	valid := make([]Weighted, 0, len(ratings))
	for _, item := range ratings {
		if item.Rating.Skills.IsZero() {
			continue
		}
		valid = append(valid, item)
	}
	if len(valid) == 0 {
		return current, false
	}

	var out skill.Vector
	for _, s := range skill.All {
		values := make([]float64, 0, len(valid))
		roles := make([]player.Role, 0, len(valid))
		for _, item := range valid {
			value := item.Rating.Skills.Get(s)
			if value <= 0 {
				continue
			}
			values = append(values, float64(value))
			roles = append(roles, item.RaterRole)
		}
		if len(values) == 0 {
			out[s] = skill.NeutralValue
			continue
		}

		weights := ContributionWeights(roles)
		total := 0.0
		for idx, value := range values {
			total += value * weights[idx]
		}
		out[s] = int(math.Round(total))
	}

	return out, true
}

// ContributionWeights returns one weight per contributor, summing to 1.
// With both classes present admins share AdminClassWeight and members share
// MemberClassWeight; otherwise everyone gets an equal share.
func ContributionWeights(roles []player.Role) []float64 {
	out := make([]float64, len(roles))
	if len(roles) == 0 {
		return out
	}

	admins := 0
	for _, role := range roles {
		if role == player.RoleAdmin {
			admins++
		}
	}
	members := len(roles) - admins

	if admins == 0 || members == 0 {
		share := 1.0 / float64(len(roles))
		for idx := range out {
			out[idx] = share
		}
		return out
	}

	adminShare := AdminClassWeight / float64(admins)
	memberShare := MemberClassWeight / float64(members)
	for idx, role := range roles {
		if role == player.RoleAdmin {
			out[idx] = adminShare
			continue
		}
		out[idx] = memberShare
	}
	return out
}
