package scoring

import (
	"math"
	"time"
)

// Metric is the interface that all scoring metrics implement.
type Metric interface {
	// Key returns the machine-readable metric identifier.
	Key() string
	// Name returns the human-readable metric name.
	Name() string
	// Evaluate computes the metric's contribution for an input at the given time.
	Evaluate(in Input, now time.Time) MetricResult
}

// Engine runs all configured metrics against an input and produces a Result.
// An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	metrics []Metric
	clock   func() time.Time
}

// NewEngine creates a scoring engine with the given metrics.
func NewEngine(metrics ...Metric) *Engine {
	return &Engine{metrics: metrics, clock: time.Now}
}

var defaultEngine = NewEngine(DefaultMetrics()...)

// Default returns the engine built from the fixed weight table.
func Default() *Engine {
	return defaultEngine
}

// Analyze scores an input with the default metrics against the wall clock.
func Analyze(in Input) Result {
	return defaultEngine.Analyze(in)
}

// Analyze scores an input against the engine's clock.
func (e *Engine) Analyze(in Input) Result {
	return e.AnalyzeAt(in, e.clock())
}

// AnalyzeAt scores an input as if the current time were now.
// For a fixed input and now the result is always identical.
func (e *Engine) AnalyzeAt(in Input, now time.Time) Result {
	result := Result{
		Factors:   []FactorCode{},
		Breakdown: make([]MetricResult, 0, len(e.metrics)),
	}

	seen := make(map[FactorCode]bool)
	for _, m := range e.metrics {
		mr := m.Evaluate(in, now)
		result.Breakdown = append(result.Breakdown, mr)
		result.RawTotal += mr.Contribution

		if mr.Triggered && mr.Factor != "" && !seen[mr.Factor] {
			seen[mr.Factor] = true
			result.Factors = append(result.Factors, mr.Factor)
		}
	}

	// Level comes from the unrounded total so rounding cannot move a
	// value across the 30/60 boundaries.
	result.Level = LevelFromTotal(result.RawTotal)
	result.Score = int(math.Round(result.RawTotal))

	return result
}
