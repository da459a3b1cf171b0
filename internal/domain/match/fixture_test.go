package match

import (
	"reflect"
	"testing"
)

func TestGenerateFixtures_TwoTeamsAlternate(t *testing.T) {
	t.Parallel()

	got, err := GenerateFixtures([]string{"A", "B"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := []Fixture{
		{MatchNo: 1, Team1ID: "A", Team2ID: "B"},
		{MatchNo: 2, Team1ID: "B", Team2ID: "A"},
		{MatchNo: 3, Team1ID: "A", Team2ID: "B"},
		{MatchNo: 4, Team1ID: "B", Team2ID: "A"},
		{MatchNo: 5, Team1ID: "A", Team2ID: "B"},
		{MatchNo: 6, Team1ID: "B", Team2ID: "A"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected fixtures: %+v", got)
	}
}

func TestGenerateFixtures_ThreeTeamsCycle(t *testing.T) {
	t.Parallel()

	got, err := GenerateFixtures([]string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(got) != 9 {
		t.Fatalf("expected 9 fixtures, got %d", len(got))
	}
	cycle := [][2]string{{"A", "B"}, {"C", "A"}, {"B", "C"}}
	appearances := map[string]int{}
	leads := map[string]int{}
	for idx, item := range got {
		if item.MatchNo != idx+1 {
			t.Fatalf("fixture %d has match no %d", idx, item.MatchNo)
		}
		pair := cycle[idx%3]
		if item.Team1ID != pair[0] || item.Team2ID != pair[1] {
			t.Fatalf("fixture %d: got %s-%s want %s-%s", idx+1, item.Team1ID, item.Team2ID, pair[0], pair[1])
		}
		appearances[item.Team1ID]++
		appearances[item.Team2ID]++
		leads[item.Team1ID]++
	}
	for _, teamID := range []string{"A", "B", "C"} {
		if appearances[teamID] != 6 || leads[teamID] != 3 {
			t.Fatalf("team %s: appearances=%d leads=%d", teamID, appearances[teamID], leads[teamID])
		}
	}
}

func TestGenerateFixtures_Deterministic(t *testing.T) {
	t.Parallel()

	for _, teams := range [][]string{{"x", "y"}, {"x", "y", "z"}} {
		first, _ := GenerateFixtures(teams)
		second, _ := GenerateFixtures(teams)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("fixtures differ for %v", teams)
		}
	}
}

func TestGenerateFixtures_RejectsTeamCount(t *testing.T) {
	t.Parallel()

	for _, teams := range [][]string{nil, {"A"}, {"A", "B", "C", "D"}} {
		if _, err := GenerateFixtures(teams); err == nil {
			t.Fatalf("expected error for %d teams", len(teams))
		}
	}
}
