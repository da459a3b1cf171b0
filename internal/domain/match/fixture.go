package match

import "fmt"

// Fixture is one generated pairing before it becomes a stored match.
type Fixture struct {
	MatchNo int
	Team1ID string
	Team2ID string
}

const twoTeamFixtureCount = 6

// threeTeamCycle is (A-B, C-A, B-C); every team leads once per cycle.
var threeTeamCycle = [3][2]int{{0, 1}, {2, 0}, {1, 2}}

const threeTeamCycles = 3

// GenerateFixtures returns the fixed schedule for two or three teams.
func GenerateFixtures(teamIDs []string) ([]Fixture, error) {
	switch len(teamIDs) {
	case 2:
		out := make([]Fixture, 0, twoTeamFixtureCount)
		for idx := 0; idx < twoTeamFixtureCount; idx++ {
			first, second := teamIDs[0], teamIDs[1]
			if idx%2 == 1 {
				first, second = second, first
			}
			out = append(out, Fixture{MatchNo: idx + 1, Team1ID: first, Team2ID: second})
		}
		return out, nil
	case 3:
		out := make([]Fixture, 0, len(threeTeamCycle)*threeTeamCycles)
		for cycle := 0; cycle < threeTeamCycles; cycle++ {
			for _, pair := range threeTeamCycle {
				out = append(out, Fixture{
					MatchNo: len(out) + 1,
					Team1ID: teamIDs[pair[0]],
					Team2ID: teamIDs[pair[1]],
				})
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot schedule %d teams: need 2 or 3", len(teamIDs))
	}
}
