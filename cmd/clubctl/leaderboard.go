package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/spf13/cobra"
)

const requestTimeout = 10 * time.Second

type leaderboardEnvelope struct {
	Data *struct {
		Year     int             `json:"year"`
		Category string          `json:"category"`
		Entries  []ranking.Entry `json:"entries"`
	} `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newLeaderboardCmd() *cobra.Command {
	var (
		baseURL string
		year    int
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "leaderboard <category>",
		Short: "Print a season leaderboard from the club API",
		Long:  "Categories: " + categoryList(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := ranking.ParseCategory(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			entries, err := fetchLeaderboard(ctx, http.DefaultClient, baseURL, year, category, limit)
			if err != nil {
				return err
			}
			return printLeaderboard(cmd.OutOrStdout(), category, entries)
		},
	}

	cmd.Flags().StringVar(&baseURL, "api", "http://localhost:8080", "club API base URL")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "season year")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum rows")
	return cmd
}

func categoryList() string {
	names := make([]string, 0, len(ranking.Categories))
	for _, item := range ranking.Categories {
		names = append(names, string(item))
	}
	return strings.Join(names, ", ")
}

func fetchLeaderboard(ctx context.Context, client *http.Client, baseURL string, year int, category ranking.Category, limit int) ([]ranking.Entry, error) {
	endpoint, err := url.JoinPath(baseURL, "v1", "rankings", strconv.Itoa(year), "leaderboards", string(category))
	if err != nil {
		return nil, crerr.Wrap(err, "build leaderboard url")
	}
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build leaderboard request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, crerr.Wrap(err, "request leaderboard")
	}
	defer resp.Body.Close()

	var payload leaderboardEnvelope
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, crerr.Wrapf(err, "decode leaderboard (status %d)", resp.StatusCode)
	}
	if payload.Error != nil {
		return nil, crerr.Newf("leaderboard request failed: %d %s", payload.Error.Code, payload.Error.Message)
	}
	if payload.Data == nil {
		return nil, crerr.Newf("leaderboard response has no data (status %d)", resp.StatusCode)
	}
	return payload.Data.Entries, nil
}

func printLeaderboard(w io.Writer, category ranking.Category, entries []ranking.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "No %s entries yet.\n", category)
		return err
	}

	table := newTable(w)
	table.Header("#", "PLAYER", strings.ToUpper(string(category)), "GAMES", "ATT")
	for idx, entry := range entries {
		if err := table.Append(
			strconv.Itoa(idx+1),
			entry.Name,
			strconv.FormatFloat(category.Value(entry), 'f', -1, 64),
			strconv.Itoa(entry.Games),
			strconv.Itoa(entry.Attendance),
		); err != nil {
			return crerr.Wrap(err, "render leaderboard")
		}
	}
	return crerr.Wrap(table.Render(), "render leaderboard")
}
