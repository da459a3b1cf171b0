package main

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clubctl",
		Short:         "Futsal club companion tool",
		Long:          "Balance a roster offline, print the fixture schedule for a session, or read season leaderboards from the club API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newBalanceCmd())
	root.AddCommand(newFixturesCmd())
	root.AddCommand(newLeaderboardCmd())
	return root
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}
