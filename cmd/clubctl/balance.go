package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
	"github.com/riskibarqy/futsal-club/internal/domain/team"
	"github.com/spf13/cobra"
)

// rosterEntry is one line of a roster file. Skills are on the 0-100 scale;
// entries without skills play at the guest level.
type rosterEntry struct {
	Name   string         `json:"name"`
	Skills map[string]int `json:"skills"`
}

func newBalanceCmd() *cobra.Command {
	var (
		teamCount  int
		guestSkill float64
	)

	cmd := &cobra.Command{
		Use:   "balance <roster.json>",
		Short: "Split a roster file into balanced teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return crerr.Wrap(err, "read roster")
			}
			candidates, err := parseRoster(raw, skill.Uniform(skill.FromTenScale(guestSkill)))
			if err != nil {
				return err
			}
			groups, err := team.Balance(candidates, teamCount)
			if err != nil {
				return err
			}
			return printBalance(cmd.OutOrStdout(), groups)
		},
	}

	cmd.Flags().IntVarP(&teamCount, "teams", "n", 2, "number of teams (2 or 3)")
	cmd.Flags().Float64Var(&guestSkill, "guest-skill", 5, "skill level on a 0-10 scale for entries without skills")
	return cmd
}

func parseRoster(raw []byte, guestSkills skill.Vector) ([]team.Candidate, error) {
	var entries []rosterEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, crerr.Wrap(err, "decode roster")
	}

	seen := make(map[string]struct{}, len(entries))
	out := make([]team.Candidate, 0, len(entries))
	for idx, entry := range entries {
		ref := player.GuestRef(entry.Name)
		if ref.IsZero() {
			return nil, crerr.Newf("roster entry %d has no name", idx+1)
		}
		if _, ok := seen[ref.Key()]; ok {
			return nil, crerr.Newf("duplicate roster name %q", ref.GuestName)
		}
		seen[ref.Key()] = struct{}{}

		skills := guestSkills
		if len(entry.Skills) > 0 {
			parsed, err := skill.FromMap(entry.Skills)
			if err != nil {
				return nil, crerr.Wrapf(err, "roster entry %q", ref.GuestName)
			}
			if err := parsed.Validate(); err != nil {
				return nil, crerr.Wrapf(err, "roster entry %q", ref.GuestName)
			}
			skills = parsed
		}
		out = append(out, team.Candidate{Ref: ref, Skills: skills})
	}
	return out, nil
}

func printBalance(w io.Writer, groups [][]team.Candidate) error {
	table := newTable(w)
	table.Header("TEAM", "VEST", "TYPE", "AVG", "KEY", "PLAYERS")
	for idx, members := range groups {
		names := make([]string, 0, len(members))
		for _, member := range members {
			names = append(names, member.Ref.GuestName)
		}
		key := "-"
		if ref, ok := team.KeyPlayer(members); ok {
			key = ref.GuestName
		}
		if err := table.Append(
			fmt.Sprintf("Team %c", 'A'+idx),
			team.VestColors[idx%len(team.VestColors)],
			string(team.Classify(members)),
			fmt.Sprintf("%.2f", team.AverageOverall(members)),
			key,
			strings.Join(names, ", "),
		); err != nil {
			return crerr.Wrap(err, "render teams")
		}
	}
	if err := table.Render(); err != nil {
		return crerr.Wrap(err, "render teams")
	}

	_, err := fmt.Fprintf(w, "balance score: %.2f\n", team.BalanceScore(groups))
	return err
}
