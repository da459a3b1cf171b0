package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/futsal-club/internal/usecase"
)

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSession")
	defer span.End()

	var req createSessionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := parseSessionDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.sessionService.Create(ctx, usecase.CreateSessionInput{Date: date, Venue: req.Venue})
	if err != nil {
		h.logger.WarnContext(ctx, "create session failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sessionToDTO(item))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	sessionID := r.PathValue("sessionID")
	detail, err := h.sessionService.Get(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get session failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionDetailDTO{
		Session:    sessionToDTO(detail.Session),
		Attendance: refsToDTO(detail.Attendance),
		Teams:      teamsToDTO(detail.Teams),
	})
}

func (h *Handler) ReplaceAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceAttendance")
	defer span.End()

	var req attendanceRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := r.PathValue("sessionID")
	result, err := h.sessionService.ReplaceAttendance(ctx, sessionID, refsFromRequest(req.Attendees))
	if err != nil {
		h.logger.WarnContext(ctx, "replace attendance failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionMutationToDTO(result))
}

func (h *Handler) SetSessionMVP(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetSessionMVP")
	defer span.End()

	var req sessionMVPRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := r.PathValue("sessionID")
	result, err := h.sessionService.SetMVP(ctx, sessionID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "set session mvp failed", "session_id", sessionID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionMutationToDTO(result))
}

func (h *Handler) BalanceTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BalanceTeams")
	defer span.End()

	var req balanceTeamsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := r.PathValue("sessionID")
	result, err := h.teamService.Balance(ctx, sessionID, req.TeamCount)
	if err != nil {
		h.logger.WarnContext(ctx, "balance teams failed", "session_id", sessionID, "team_count", req.TeamCount, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSetToDTO(result))
}

func (h *Handler) ReplaceTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceTeams")
	defer span.End()

	var req replaceTeamsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.TeamInput, 0, len(req.Teams))
	for _, item := range req.Teams {
		inputs = append(inputs, usecase.TeamInput{
			Name:      item.Name,
			VestColor: item.VestColor,
			Members:   refsFromRequest(item.Members),
		})
	}

	sessionID := r.PathValue("sessionID")
	result, err := h.teamService.ReplaceTeams(ctx, sessionID, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "replace teams failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSetToDTO(result))
}

func (h *Handler) ListSessionTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSessionTeams")
	defer span.End()

	sessionID := r.PathValue("sessionID")
	teams, err := h.teamService.ListBySession(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateFixtures")
	defer span.End()

	sessionID := r.PathValue("sessionID")
	result, err := h.matchService.GenerateFixtures(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate fixtures failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureSetDTO{
		Matches: matchesToDTO(result.Matches),
		Effects: result.Effects,
	})
}

func (h *Handler) ListSessionMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSessionMatches")
	defer span.End()

	sessionID := r.PathValue("sessionID")
	matches, err := h.matchService.ListBySession(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(matches))
}

func (h *Handler) ListSessionStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSessionStandings")
	defer span.End()

	sessionID := r.PathValue("sessionID")
	rows, err := h.matchService.Standings(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsOrEmpty(rows))
}

// parseSessionDate accepts a calendar date or a full RFC 3339 timestamp.
func parseSessionDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if date, err := time.Parse(sessionDateLayout, value); err == nil {
		return date, nil
	}
	date, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC 3339, got %q", usecase.ErrInvalidInput, raw)
	}
	return date, nil
}
