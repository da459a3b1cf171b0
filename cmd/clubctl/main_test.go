package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseRoster(t *testing.T) {
	guest := skill.Uniform(50)

	candidates, err := parseRoster([]byte(`[
		{"name": "Andi", "skills": {"shooting": 80, "passing": 70}},
		{"name": "Budi"}
	]`), guest)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Andi", candidates[0].Ref.GuestName)
	assert.Equal(t, 80, candidates[0].Skills.Get(skill.Shooting))
	assert.Equal(t, guest, candidates[1].Skills)

	_, err = parseRoster([]byte(`[{"name": "Andi"}, {"name": "andi"}]`), guest)
	assert.Error(t, err, "names are unique case-insensitively")

	_, err = parseRoster([]byte(`[{"name": "Andi", "skills": {"juggling": 90}}]`), guest)
	assert.ErrorIs(t, err, skill.ErrUnknownSkill)

	_, err = parseRoster([]byte(`[{"name": " "}]`), guest)
	assert.Error(t, err)
}

func TestBalanceCommand(t *testing.T) {
	roster := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(roster, []byte(`[
		{"name": "Andi"}, {"name": "Budi"}, {"name": "Cahya"},
		{"name": "Dedi"}, {"name": "Eko"}, {"name": "Fajar"}
	]`), 0o600))

	out, err := runCmd(t, "balance", roster, "--teams", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Team A")
	assert.Contains(t, out, "Team C")
	assert.Contains(t, out, "balance score: 100.00")

	_, err = runCmd(t, "balance", roster, "--teams", "4")
	assert.Error(t, err)
}

func TestFixturesCommand(t *testing.T) {
	out, err := runCmd(t, "fixtures", "Orange", "Blue", "Yellow")
	require.NoError(t, err)
	assert.Contains(t, out, "Orange")
	assert.Contains(t, out, "Yellow")

	_, err = runCmd(t, "fixtures", "Orange")
	assert.Error(t, err)
}

func TestFetchLeaderboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/rankings/2026/leaderboards/goals", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{"year":2026,"category":"goals","entries":[{"playerId":"p1","name":"Andi","goals":7,"games":4,"attendance":2}]}}`))
	}))
	defer srv.Close()

	entries, err := fetchLeaderboard(context.Background(), srv.Client(), srv.URL, 2026, ranking.CategoryGoals, 3)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 7, entries[0].Goals)

	var out bytes.Buffer
	require.NoError(t, printLeaderboard(&out, ranking.CategoryGoals, entries))
	assert.Contains(t, out.String(), "Andi")
}

func TestFetchLeaderboard_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":400,"message":"unknown leaderboard category"}}`))
	}))
	defer srv.Close()

	_, err := fetchLeaderboard(context.Background(), srv.Client(), srv.URL, 2026, ranking.CategoryGoals, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestLeaderboardCommand_RejectsUnknownCategory(t *testing.T) {
	_, err := runCmd(t, "leaderboard", "saves")
	assert.ErrorIs(t, err, ranking.ErrUnknownCategory)
}
