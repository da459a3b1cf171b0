package httpapi

import (
	"net/http"

	"github.com/riskibarqy/futsal-club/internal/usecase"
)

func (h *Handler) ListMatchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchEvents")
	defer span.End()

	matchID := r.PathValue("matchID")
	events, err := h.matchService.ListEvents(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match events failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]eventDTO, 0, len(events))
	for _, item := range events {
		out = append(out, eventToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AddMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMatchEvent")
	defer span.End()

	var req addEventRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	result, err := h.matchService.AddEvent(ctx, usecase.AddEventInput{
		MatchID:    matchID,
		Type:       req.Type,
		TeamID:     req.TeamID,
		PlayerID:   req.PlayerID,
		GuestName:  req.GuestName,
		AssisterID: req.AssisterID,
		Minute:     req.Minute,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add match event failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, eventMutationDTO{
		Event:   eventToDTO(result.Event),
		Match:   matchToDTO(result.Match),
		Effects: result.Effects,
	})
}

func (h *Handler) DeleteMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatchEvent")
	defer span.End()

	matchID := r.PathValue("matchID")
	eventID := r.PathValue("eventID")
	result, err := h.matchService.DeleteEvent(ctx, matchID, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete match event failed", "match_id", matchID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventMutationDTO{
		Event:   eventToDTO(result.Event),
		Match:   matchToDTO(result.Match),
		Effects: result.Effects,
	})
}

func (h *Handler) OverrideMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OverrideMatchScore")
	defer span.End()

	var req overrideScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	result, err := h.matchService.OverrideScore(ctx, matchID, *req.Score1, *req.Score2)
	if err != nil {
		h.logger.WarnContext(ctx, "override match score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchMutationDTO{Match: matchToDTO(result.Match), Effects: result.Effects})
}

func (h *Handler) UpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchStatus")
	defer span.End()

	var req matchStatusRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	result, err := h.matchService.UpdateStatus(ctx, matchID, req.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "update match status failed", "match_id", matchID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchMutationDTO{Match: matchToDTO(result.Match), Effects: result.Effects})
}
