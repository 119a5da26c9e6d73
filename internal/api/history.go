package api

import (
	"log/slog"
	"net/http"

	"github.com/riskscope/riskscope/internal/history"
)

func (h *Handler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, map[string]any{"entries": []history.Entry{}})
		return
	}
	entries, err := h.store.Load(r.Context())
	if err != nil {
		slog.Error("failed to load history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.Clear(r.Context()); err != nil {
			slog.Error("failed to clear history", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to clear history")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
