package httpapi

import (
	"net/http"

	"github.com/riskibarqy/futsal-club/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, recorder *metrics.Recorder) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if recorder == nil {
		return
	}

	mux.Handle("GET /metrics", recorder.Handler())
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PATCH /v1/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/ratings", handler.ListPlayerRatings)
	mux.HandleFunc("PUT /v1/players/{playerID}/ratings", handler.SubmitRating)
	mux.HandleFunc("DELETE /v1/players/{playerID}/ratings/{raterID}", handler.DeleteRating)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/sessions", handler.CreateSession)
	mux.HandleFunc("GET /v1/sessions/{sessionID}", handler.GetSession)
	mux.HandleFunc("PUT /v1/sessions/{sessionID}/attendance", handler.ReplaceAttendance)
	mux.HandleFunc("PUT /v1/sessions/{sessionID}/mvp", handler.SetSessionMVP)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/teams/balance", handler.BalanceTeams)
	mux.HandleFunc("PUT /v1/sessions/{sessionID}/teams", handler.ReplaceTeams)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/teams", handler.ListSessionTeams)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/fixtures", handler.GenerateFixtures)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/matches", handler.ListSessionMatches)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/standings", handler.ListSessionStandings)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}/events", handler.ListMatchEvents)
	mux.HandleFunc("POST /v1/matches/{matchID}/events", handler.AddMatchEvent)
	mux.HandleFunc("DELETE /v1/matches/{matchID}/events/{eventID}", handler.DeleteMatchEvent)
	mux.HandleFunc("PUT /v1/matches/{matchID}/score", handler.OverrideMatchScore)
	mux.HandleFunc("PUT /v1/matches/{matchID}/status", handler.UpdateMatchStatus)
}

func registerRankingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rankings/{year}", handler.GetRanking)
	mux.HandleFunc("GET /v1/rankings/{year}/leaderboards/{category}", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/hall-of-fame", handler.GetHallOfFame)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/admin/rankings/{year}/refresh", RequireAdminToken(adminToken, http.HandlerFunc(handler.RefreshRanking)))
	mux.Handle("POST /v1/admin/ratings/recalculate", RequireAdminToken(adminToken, http.HandlerFunc(handler.RecalculateSkills)))
}
