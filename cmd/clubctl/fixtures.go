package main

import (
	"io"
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/futsal-club/internal/domain/match"
	"github.com/spf13/cobra"
)

func newFixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "fixtures <team> <team> [team]",
		Short:   "Print the match schedule for two or three teams",
		Example: "  clubctl fixtures Orange Blue Yellow",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := match.GenerateFixtures(args)
			if err != nil {
				return err
			}
			return printFixtures(cmd.OutOrStdout(), fixtures)
		},
	}
}

func printFixtures(w io.Writer, fixtures []match.Fixture) error {
	table := newTable(w)
	table.Header("MATCH", "HOME", "AWAY")
	for _, item := range fixtures {
		if err := table.Append(strconv.Itoa(item.MatchNo), item.Team1ID, item.Team2ID); err != nil {
			return crerr.Wrap(err, "render fixtures")
		}
	}
	return crerr.Wrap(table.Render(), "render fixtures")
}
