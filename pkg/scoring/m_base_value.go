package scoring

import "time"

// BaseValueMetric (w1) scales the submitted value continuously.
// It has no trigger and never reports a factor code.
type BaseValueMetric struct {
	Scale  float64
	Weight float64
}

func (m *BaseValueMetric) Key() string  { return "base_value" }
func (m *BaseValueMetric) Name() string { return "Base value" }

func (m *BaseValueMetric) Evaluate(in Input, _ time.Time) MetricResult {
	return MetricResult{
		Key:          m.Key(),
		Name:         m.Name(),
		Contribution: in.Val * m.Scale * m.Weight,
	}
}
