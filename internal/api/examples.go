package api

import (
	"net/http"

	"github.com/riskscope/riskscope/pkg/catalog"
)

func (h *Handler) handleExamples(w http.ResponseWriter, _ *http.Request) {
	outcomes := catalog.Check(h.engine, h.examples, h.now())
	writeJSON(w, http.StatusOK, map[string]any{
		"examples": outcomes,
		"failed":   len(catalog.Failed(outcomes)),
	})
}
