package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"go-signpdf/types"
)

const defaultHistoryLimit = 50

type HistoryListResponse struct {
	History []types.HistoryEntry `json:"history"`
}

// ListHistory godoc
// @Summary      List signing history
// @Description  Returns the authenticated user's signing history, newest first
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Maximum entries (default 50)"
// @Success      200  {object}  HistoryListResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/history [get]
func (h *APIHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.History.List(r.Context(), user.ID, limit)
	if err != nil {
		h.log.Error("list history failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	writeJSON(w, http.StatusOK, HistoryListResponse{History: entries})
}

// ClearHistory godoc
// @Summary      Clear signing history
// @Description  Deletes all of the authenticated user's history entries
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/history [delete]
func (h *APIHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.History.Clear(r.Context(), user.ID); err != nil {
		h.log.Error("clear history failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "history cleared"})
}
