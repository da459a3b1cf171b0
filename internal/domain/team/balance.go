package team

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
)

var ErrInvalidTeamCount = errors.New("team count must be 2 or 3")

// typeMargin is how far attack and defense must drift apart before a team
// is labelled one-sided.
const typeMargin = 3.0

// Candidate is an attendee together with the skills used for balancing.
type Candidate struct {
	Ref    player.Ref
	Skills skill.Vector
}

func (c Candidate) Overall() float64 {
	return c.Skills.Overall()
}

func ValidateTeamCount(teamCount int) error {
	if teamCount != 2 && teamCount != 3 {
		return fmt.Errorf("%w: got %d", ErrInvalidTeamCount, teamCount)
	}
	return nil
}

// Balance sorts attendees by overall descending and places each one on the
// eligible team with the lowest average-overall times member-count product.
// Only teams at the current minimum size are eligible.
func Balance(candidates []Candidate, teamCount int) ([][]Candidate, error) {
	if err := ValidateTeamCount(teamCount); err != nil {
		return nil, err
	}

	ordered := append([]Candidate(nil), candidates...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Overall() > ordered[j].Overall()
	})

	teams := make([][]Candidate, teamCount)
	totals := make([]float64, teamCount)
	for _, candidate := range ordered {
		minSize := len(teams[0])
		for _, members := range teams[1:] {
			if len(members) < minSize {
				minSize = len(members)
			}
		}

		best := -1
		bestProduct := 0.0
		for idx, members := range teams {
			if len(members) > minSize {
				continue
			}
			// average overall × member count is the running total
			product := totals[idx]
			if best == -1 || product < bestProduct {
				best = idx
				bestProduct = product
			}
		}

		teams[best] = append(teams[best], candidate)
		totals[best] += candidate.Overall()
	}

	return teams, nil
}

// AverageOverall returns 0 for an empty team.
func AverageOverall(members []Candidate) float64 {
	if len(members) == 0 {
		return 0
	}
	total := 0.0
	for _, member := range members {
		total += member.Overall()
	}
	return total / float64(len(members))
}

// BalanceScore is 100 for identical team averages and falls to 0 once the
// spread reaches two overall points.
func BalanceScore(teams [][]Candidate) float64 {
	if len(teams) == 0 {
		return 0
	}
	maxAvg := AverageOverall(teams[0])
	minAvg := maxAvg
	for _, members := range teams[1:] {
		avg := AverageOverall(members)
		if avg > maxAvg {
			maxAvg = avg
		}
		if avg < minAvg {
			minAvg = avg
		}
	}

	quality := 1 - (maxAvg-minAvg)/2
	if quality < 0 {
		quality = 0
	}
	return 100 * quality
}

// Classify labels a team by comparing its average attack and defense.
func Classify(members []Candidate) Type {
	if len(members) == 0 {
		return TypeBalanced
	}
	attack := 0.0
	defense := 0.0
	for _, member := range members {
		attack += member.Skills.Attack()
		defense += member.Skills.Defense()
	}
	diff := (attack - defense) / float64(len(members))
	switch {
	case diff > typeMargin:
		return TypeAttack
	case diff < -typeMargin:
		return TypeDefense
	default:
		return TypeBalanced
	}
}

// KeyPlayer is the strongest member; the first one wins a tie.
func KeyPlayer(members []Candidate) (player.Ref, bool) {
	if len(members) == 0 {
		return player.Ref{}, false
	}
	best := members[0]
	for _, member := range members[1:] {
		if member.Overall() > best.Overall() {
			best = member
		}
	}
	return best.Ref, true
}

// Build turns balanced groups into session teams; newID supplies team ids.
func Build(sessionID string, groups [][]Candidate, newID func() (string, error)) ([]Team, error) {
	out := make([]Team, 0, len(groups))
	for idx, members := range groups {
		teamID, err := newID()
		if err != nil {
			return nil, fmt.Errorf("generate team id: %w", err)
		}

		refs := make([]player.Ref, 0, len(members))
		for _, member := range members {
			refs = append(refs, member.Ref)
		}

		item := Team{
			ID:        teamID,
			SessionID: sessionID,
			Name:      fmt.Sprintf("Team %c", 'A'+idx),
			VestColor: VestColors[idx%len(VestColors)],
			Type:      Classify(members),
			Members:   refs,
		}
		if key, ok := KeyPlayer(members); ok {
			item.KeyPlayer = &key
		}
		out = append(out, item)
	}
	return out, nil
}
