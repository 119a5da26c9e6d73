package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"

	"github.com/riskscope/riskscope/pkg/scoring"
)

const meterName = "github.com/riskscope/riskscope/internal/api"

// Instrument names.
const (
	MetricAnalyses = "riskscope.analyses"
	MetricScore    = "riskscope.score"
)

type instruments struct {
	analyses metric.Int64Counter
	score    metric.Int64Histogram
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(meterName)
	analyses, err := meter.Int64Counter(MetricAnalyses,
		metric.WithDescription("Completed analyses by risk level"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricAnalyses, err)
	}
	score, err := meter.Int64Histogram(MetricScore,
		metric.WithDescription("Rounded risk score per analysis"))
	if err != nil {
		return nil, fmt.Errorf("create %s histogram: %w", MetricScore, err)
	}
	return &instruments{analyses: analyses, score: score}, nil
}

func (m *instruments) record(ctx context.Context, res scoring.Result) {
	if m == nil {
		return
	}
	m.analyses.Add(ctx, 1, metric.WithAttributes(attribute.String("level", string(res.Level))))
	m.score.Record(ctx, int64(res.Score))
}

// NewMeterProvider returns an SDK meter provider backed by a pull reader.
// Nothing is exported; the reader is drained by the /metrics route.
func NewMeterProvider() (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	res, err := sdkresource.Merge(sdkresource.Default(), sdkresource.NewSchemaless(
		attribute.String("service.name", "riskscope"),
	))
	if err != nil {
		slog.Warn("metrics resource merge failed", "error", err)
		res = sdkresource.Default()
	}
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	return mp, reader
}

// metricPoint is one data point in the /metrics response.
type metricPoint struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Value      *int64            `json:"value,omitempty"`
	Count      *uint64           `json:"count,omitempty"`
	Sum        *int64            `json:"sum,omitempty"`
}

func collectPoints(ctx context.Context, reader sdkmetric.Reader) ([]metricPoint, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collect metrics: %w", err)
	}

	points := []metricPoint{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					v := dp.Value
					points = append(points, metricPoint{Name: m.Name, Attributes: attrMap(dp.Attributes), Value: &v})
				}
			case metricdata.Histogram[int64]:
				for _, dp := range data.DataPoints {
					c, s := dp.Count, dp.Sum
					points = append(points, metricPoint{Name: m.Name, Attributes: attrMap(dp.Attributes), Count: &c, Sum: &s})
				}
			}
		}
	}
	return points, nil
}

func attrMap(set attribute.Set) map[string]string {
	if set.Len() == 0 {
		return nil
	}
	out := make(map[string]string, set.Len())
	iter := set.Iter()
	for iter.Next() {
		kv := iter.Attribute()
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	points, err := collectPoints(r.Context(), h.reader)
	if err != nil {
		slog.Error("failed to collect metrics", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to collect metrics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"metrics": points})
}
