package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
)

func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRanking")
	defer span.End()

	year, err := pathInt(r, "year")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.rankingService.Get(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "get ranking failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankingToDTO(snapshot))
}

// GetLeaderboard accepts an optional limit query parameter; 0 returns every
// qualifying entry.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	year, err := pathInt(r, "year")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	category := strings.ToLower(strings.TrimSpace(r.PathValue("category")))
	entries, err := h.rankingService.Leaderboard(ctx, year, category, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "year", year, "category", category, "error", err)
		writeError(ctx, w, err)
		return
	}
	if entries == nil {
		entries = []ranking.Entry{}
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardDTO{Year: year, Category: category, Entries: entries})
}

func (h *Handler) GetHallOfFame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHallOfFame")
	defer span.End()

	honors, err := h.rankingService.HallOfFame(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get hall of fame failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if honors == nil {
		honors = []ranking.Honor{}
	}

	writeSuccess(ctx, w, http.StatusOK, honors)
}

func (h *Handler) RefreshRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshRanking")
	defer span.End()

	year, err := pathInt(r, "year")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	actor, _ := adminActorFromContext(ctx)
	snapshot, err := h.rankingService.Refresh(ctx, year, actor)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh ranking failed", "year", year, "actor", actor, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "ranking refreshed", "year", year, "actor", actor, "entries", len(snapshot.Entries))
	writeSuccess(ctx, w, http.StatusOK, rankingToDTO(snapshot))
}

// RecalculateSkills accepts an optional workers query parameter overriding
// the configured pool size.
func (h *Handler) RecalculateSkills(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateSkills")
	defer span.End()

	workers, err := queryInt(r, "workers", h.recalcWorkers)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.ratingService.RecalculateAll(ctx, workers)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate skills failed", "workers", workers, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "skills recalculated",
		"players", result.PlayerCount,
		"updated", result.UpdatedCount,
		"failed", result.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
