// Package api implements the local riskscope HTTP API.
// It serves live analysis, saved submissions and the bundled examples to a
// browser UI running on the same machine.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/riskscope/riskscope/internal/history"
	"github.com/riskscope/riskscope/pkg/catalog"
	"github.com/riskscope/riskscope/pkg/scoring"
)

const maxBodyBytes = 1 << 20

// Handler is the top-level API handler.
type Handler struct {
	engine   *scoring.Engine
	store    *history.Store
	examples []catalog.Example
	metrics  *instruments
	reader   sdkmetric.Reader
	now      func() time.Time

	meterProvider metric.MeterProvider
}

// Option configures a Handler.
type Option func(*Handler)

// WithMeterProvider records instruments through mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(h *Handler) { h.meterProvider = mp }
}

// WithMetricsReader serves the reader's current data on GET /metrics.
func WithMetricsReader(reader sdkmetric.Reader) Option {
	return func(h *Handler) { h.reader = reader }
}

// NewHandler creates a new API handler. A nil engine selects scoring.Default().
func NewHandler(engine *scoring.Engine, store *history.Store, examples []catalog.Example, opts ...Option) *Handler {
	if engine == nil {
		engine = scoring.Default()
	}
	h := &Handler{
		engine:        engine,
		store:         store,
		examples:      examples,
		now:           time.Now,
		meterProvider: otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(h)
	}

	m, err := newInstruments(h.meterProvider)
	if err != nil {
		slog.Warn("analysis metrics disabled", "error", err)
	}
	h.metrics = m
	return h
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/analyze", h.handleAnalyze)
	mux.HandleFunc("POST /api/submissions", h.handleSubmit)

	mux.HandleFunc("GET /api/history", h.handleListHistory)
	mux.HandleFunc("DELETE /api/history", h.handleClearHistory)

	mux.HandleFunc("GET /api/examples", h.handleExamples)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	if h.reader != nil {
		mux.HandleFunc("GET /metrics", h.handleMetrics)
	}
}

// Routes returns the full middleware-wrapped handler.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return RequestLog(CORS(mux))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
