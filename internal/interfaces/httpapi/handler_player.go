package httpapi

import (
	"net/http"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Create(ctx, usecase.CreatePlayerInput{
		Name:    req.Name,
		Role:    req.Role,
		IsGuest: req.IsGuest,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	var req updatePlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	patch := player.Patch{Name: req.Name, IsGuest: req.IsGuest}
	if req.Role != nil {
		role := player.Role(*req.Role)
		patch.Role = &role
	}

	playerID := r.PathValue("playerID")
	item, err := h.playerService.UpdateProfile(ctx, playerID, patch)
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) ListPlayerRatings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerRatings")
	defer span.End()

	playerID := r.PathValue("playerID")
	items, err := h.ratingService.ListByPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list ratings failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]ratingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, ratingToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitRating")
	defer span.End()

	var req submitRatingRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := r.PathValue("playerID")
	result, err := h.ratingService.Submit(ctx, usecase.SubmitRatingInput{
		RaterID:  req.RaterID,
		PlayerID: playerID,
		Skills:   req.Skills,
		Comment:  req.Comment,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit rating failed", "player_id", playerID, "rater_id", req.RaterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ratingResultDTO{
		Rating:  ratingToDTO(result.Rating),
		Player:  playerToDTO(result.Player),
		Effects: result.Effects,
	})
}

func (h *Handler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRating")
	defer span.End()

	playerID := r.PathValue("playerID")
	raterID := r.PathValue("raterID")
	result, err := h.ratingService.Delete(ctx, playerID, raterID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete rating failed", "player_id", playerID, "rater_id", raterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ratingDeletionDTO{
		Player:  playerToDTO(result.Player),
		Effects: result.Effects,
	})
}
