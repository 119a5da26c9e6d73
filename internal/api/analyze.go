package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/riskscope/riskscope/internal/history"
	"github.com/riskscope/riskscope/pkg/scoring"
	"github.com/riskscope/riskscope/pkg/validate"
)

type analyzeResponse struct {
	Result scoring.Result        `json:"result"`
	Errors []validate.FieldError `json:"errors,omitempty"`
	Entry  *history.Entry        `json:"entry,omitempty"`
}

// analyze decodes and validates the form in the request body.
// It writes the response itself and reports ok=false on any failure.
func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) (scoring.Input, scoring.Result, bool) {
	var form validate.Form
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return scoring.Input{}, scoring.Result{}, false
	}

	in, err := validate.Validate(form)
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, analyzeResponse{
				Result: scoring.Unset(),
				Errors: verr.Fields,
			})
			return scoring.Input{}, scoring.Result{}, false
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return scoring.Input{}, scoring.Result{}, false
	}

	res := h.engine.AnalyzeAt(in, h.now())
	h.metrics.record(r.Context(), res)
	return in, res, true
}

// handleAnalyze is the live preview: it never touches history.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	_, res, ok := h.analyze(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Result: res})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	in, res, ok := h.analyze(w, r)
	if !ok {
		return
	}

	resp := analyzeResponse{Result: res}
	if h.store != nil {
		entry, err := h.store.Add(r.Context(), in, res)
		if err != nil {
			slog.Error("failed to save submission", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save submission")
			return
		}
		resp.Entry = &entry
	}
	writeJSON(w, http.StatusCreated, resp)
}
