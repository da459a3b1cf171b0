package rating

import (
	"errors"
	"math"
	"testing"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
)

func ratingWith(raterID string, values map[skill.Skill]int) Rating {
	var v skill.Vector
	for s, value := range values {
		v[s] = value
	}
	return Rating{RaterID: raterID, PlayerID: "p1", Skills: v}
}

func TestAggregate_MixedClassesSplitThirtySeventy(t *testing.T) {
	t.Parallel()

	got, ok := Aggregate(skill.Neutral(), []Weighted{
		{Rating: ratingWith("admin", map[skill.Skill]int{skill.Shooting: 80}), RaterRole: player.RoleAdmin},
		{Rating: ratingWith("m1", map[skill.Skill]int{skill.Shooting: 40}), RaterRole: player.RoleMember},
		{Rating: ratingWith("m2", map[skill.Skill]int{skill.Shooting: 60}), RaterRole: player.RoleMember},
	})
	if !ok {
		t.Fatalf("expected aggregation to apply")
	}
	if got[skill.Shooting] != 59 {
		t.Fatalf("unexpected shooting: got=%d want=59", got[skill.Shooting])
	}
	if got[skill.Passing] != skill.NeutralValue {
		t.Fatalf("skill without contributors should fall back to neutral, got %d", got[skill.Passing])
	}
}

func TestAggregate_SingleClassSplitsEvenly(t *testing.T) {
	t.Parallel()

	got, _ := Aggregate(skill.Neutral(), []Weighted{
		{Rating: ratingWith("m1", map[skill.Skill]int{skill.Speed: 70}), RaterRole: player.RoleMember},
		{Rating: ratingWith("m2", map[skill.Skill]int{skill.Speed: 81}), RaterRole: player.RoleMember},
	})
	if got[skill.Speed] != 76 {
		t.Fatalf("unexpected speed: got=%d want=76", got[skill.Speed])
	}
}

func TestAggregate_ZeroSkillDoesNotContribute(t *testing.T) {
	t.Parallel()

	got, _ := Aggregate(skill.Neutral(), []Weighted{
		{Rating: ratingWith("admin", map[skill.Skill]int{skill.Shooting: 90, skill.Marking: 0, skill.Passing: 10}), RaterRole: player.RoleAdmin},
		{Rating: ratingWith("m1", map[skill.Skill]int{skill.Marking: 30, skill.Passing: 20}), RaterRole: player.RoleMember},
	})
	if got[skill.Shooting] != 90 {
		t.Fatalf("only the admin rated shooting: got=%d", got[skill.Shooting])
	}
	if got[skill.Marking] != 30 {
		t.Fatalf("only the member rated marking: got=%d", got[skill.Marking])
	}
	// 10*0.3 + 20*0.7
	if got[skill.Passing] != 17 {
		t.Fatalf("unexpected passing: got=%d want=17", got[skill.Passing])
	}
}

func TestAggregate_AllZeroRatingIsExcluded(t *testing.T) {
	t.Parallel()

	base := []Weighted{
		{Rating: ratingWith("admin", map[skill.Skill]int{skill.Shooting: 80}), RaterRole: player.RoleAdmin},
		{Rating: ratingWith("m1", map[skill.Skill]int{skill.Shooting: 40}), RaterRole: player.RoleMember},
	}
	withZero := append([]Weighted{{Rating: ratingWith("m2", nil), RaterRole: player.RoleMember}}, base...)

	want, _ := Aggregate(skill.Neutral(), base)
	got, _ := Aggregate(skill.Neutral(), withZero)
	if got != want {
		t.Fatalf("all-zero rating changed the aggregate: got=%v want=%v", got, want)
	}
}

func TestAggregate_NoValidRatingsKeepsCurrent(t *testing.T) {
	t.Parallel()

	current := skill.Uniform(63)
	got, ok := Aggregate(current, []Weighted{{Rating: ratingWith("m1", nil), RaterRole: player.RoleMember}})
	if ok {
		t.Fatalf("expected no-op aggregation")
	}
	if got != current {
		t.Fatalf("current vector should be returned untouched: %v", got)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	t.Parallel()

	ratings := []Weighted{
		{Rating: ratingWith("admin", map[skill.Skill]int{skill.Shooting: 77, skill.Teamwork: 12}), RaterRole: player.RoleAdmin},
		{Rating: ratingWith("m1", map[skill.Skill]int{skill.Shooting: 33, skill.Stamina: 91}), RaterRole: player.RoleMember},
	}
	first, _ := Aggregate(skill.Neutral(), ratings)
	second, _ := Aggregate(first, ratings)
	if first != second {
		t.Fatalf("aggregate is not idempotent: %v vs %v", first, second)
	}
}

func TestContributionWeights_ClassSums(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		roles []player.Role
	}{
		{name: "one admin two members", roles: []player.Role{player.RoleAdmin, player.RoleMember, player.RoleMember}},
		{name: "three admins one member", roles: []player.Role{player.RoleAdmin, player.RoleAdmin, player.RoleMember, player.RoleAdmin}},
		{name: "two and five", roles: []player.Role{player.RoleMember, player.RoleAdmin, player.RoleMember, player.RoleMember, player.RoleAdmin, player.RoleMember, player.RoleMember}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			weights := ContributionWeights(tc.roles)
			adminSum, memberSum := 0.0, 0.0
			for idx, role := range tc.roles {
				if role == player.RoleAdmin {
					adminSum += weights[idx]
				} else {
					memberSum += weights[idx]
				}
			}
			if math.Abs(adminSum-AdminClassWeight) > 1e-9 {
				t.Fatalf("admin weights sum to %v", adminSum)
			}
			if math.Abs(memberSum-MemberClassWeight) > 1e-9 {
				t.Fatalf("member weights sum to %v", memberSum)
			}
		})
	}
}

func TestRatingValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		item      Rating
		targetErr error
	}{
		{name: "valid", item: ratingWith("r1", map[skill.Skill]int{skill.Speed: 10})},
		{name: "all zero", item: ratingWith("r1", nil), targetErr: ErrEmptyRating},
		{name: "out of range", item: ratingWith("r1", map[skill.Skill]int{skill.Speed: 101}), targetErr: ErrSkillOutOfRange},
		{name: "negative", item: ratingWith("r1", map[skill.Skill]int{skill.Speed: -1, skill.Passing: 40}), targetErr: ErrSkillOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.item.Validate()
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}
