package scoring

import "time"

// ConditionMetric (w2..w7) contributes a flat weight when its predicate holds.
type ConditionMetric struct {
	MetricKey  string
	MetricName string
	Factor     FactorCode
	Weight     float64
	Holds      func(in Input) bool
}

func (m *ConditionMetric) Key() string  { return m.MetricKey }
func (m *ConditionMetric) Name() string { return m.MetricName }

func (m *ConditionMetric) Evaluate(in Input, _ time.Time) MetricResult {
	result := MetricResult{
		Key:    m.Key(),
		Name:   m.Name(),
		Factor: m.Factor,
	}
	if m.Holds != nil && m.Holds(in) {
		result.Triggered = true
		result.Contribution = m.Weight
	}
	return result
}

// RecencyMetric (w8) fires when the reference date lies less than Window
// before now. The difference is continuous: 6d23h qualifies, 7d does not.
// Reference dates in the future always qualify.
type RecencyMetric struct {
	Weight float64
	Window time.Duration
}

func (m *RecencyMetric) Key() string  { return "recent_date" }
func (m *RecencyMetric) Name() string { return "Recent date" }

func (m *RecencyMetric) Evaluate(in Input, now time.Time) MetricResult {
	result := MetricResult{
		Key:    m.Key(),
		Name:   m.Name(),
		Factor: FactorRecentDate,
	}
	// Sub saturates instead of overflowing for dates centuries apart.
	if now.Sub(in.ReferenceDate) < m.Window {
		result.Triggered = true
		result.Contribution = m.Weight
	}
	return result
}
