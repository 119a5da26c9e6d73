package scoring_test

import (
	"testing"
	"time"

	"github.com/riskscope/riskscope/pkg/scoring"
)

func TestRecencyMetric(t *testing.T) {
	ref := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	m := &scoring.RecencyMetric{Weight: 14, Window: 7 * 24 * time.Hour}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"same instant", ref, true},
		{"six days twenty three hours", ref.Add(6*24*time.Hour + 23*time.Hour), true},
		{"one nanosecond short of seven days", ref.Add(7*24*time.Hour - time.Nanosecond), true},
		{"exactly seven days", ref.Add(7 * 24 * time.Hour), false},
		{"seven days and a second", ref.Add(7*24*time.Hour + time.Second), false},
		{"reference in the future", ref.Add(-30 * 24 * time.Hour), true},
		{"centuries later", ref.AddDate(500, 0, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Evaluate(scoring.Input{ReferenceDate: ref}, tc.now)
			if got.Triggered != tc.want {
				t.Errorf("triggered = %v, want %v", got.Triggered, tc.want)
			}
			if got.Factor != scoring.FactorRecentDate {
				t.Errorf("factor = %s, want F7", got.Factor)
			}
			wantContribution := 0.0
			if tc.want {
				wantContribution = 14
			}
			if got.Contribution != wantContribution {
				t.Errorf("contribution = %f, want %f", got.Contribution, wantContribution)
			}
		})
	}
}

func TestRecencyMetricZeroDate(t *testing.T) {
	m := &scoring.RecencyMetric{Weight: 14, Window: 7 * 24 * time.Hour}
	got := m.Evaluate(scoring.Input{}, time.Now())
	if got.Triggered {
		t.Error("zero reference date should not count as recent")
	}
}

func TestDefaultConditionMetrics(t *testing.T) {
	byKey := make(map[string]scoring.Metric)
	for _, m := range scoring.DefaultMetrics() {
		byKey[m.Key()] = m
	}

	tests := []struct {
		key  string
		in   scoring.Input
		want bool
	}{
		{"flag1_active", scoring.Input{Flag1: true}, true},
		{"flag1_active", scoring.Input{Flag1: false}, false},
		{"long_text", scoring.Input{Text: "abcd"}, false},
		{"long_text", scoring.Input{Text: "abcde"}, true},
		{"night_hour", scoring.Input{Hour: 5}, true},
		{"night_hour", scoring.Input{Hour: 6}, false},
		{"night_hour", scoring.Input{Hour: 23}, false},
		{"night_hour", scoring.Input{Hour: 24}, true},
		{"temp_email", scoring.Input{Email: "a@temp.com"}, true},
		{"temp_email", scoring.Input{Email: "temp@example.com"}, false},
		{"address_mismatch", scoring.Input{Addr1: "A", Addr2: "A"}, false},
		{"address_mismatch", scoring.Input{Addr1: "A", Addr2: "A "}, true},
		{"high_count", scoring.Input{Count: 5}, false},
		{"high_count", scoring.Input{Count: 6}, true},
	}

	for _, tc := range tests {
		m, ok := byKey[tc.key]
		if !ok {
			t.Fatalf("missing metric %s", tc.key)
		}
		if got := m.Evaluate(tc.in, time.Now()); got.Triggered != tc.want {
			t.Errorf("%s(%+v) triggered = %v, want %v", tc.key, tc.in, got.Triggered, tc.want)
		}
	}
}

func TestDefaultMetricsOrder(t *testing.T) {
	want := []string{
		"base_value", "flag1_active", "long_text", "night_hour",
		"temp_email", "address_mismatch", "high_count", "recent_date",
	}
	metrics := scoring.DefaultMetrics()
	if len(metrics) != len(want) {
		t.Fatalf("got %d metrics, want %d", len(metrics), len(want))
	}
	for i, m := range metrics {
		if m.Key() != want[i] {
			t.Errorf("metric %d = %s, want %s", i, m.Key(), want[i])
		}
	}
}

func TestBaseValueMetric(t *testing.T) {
	m := &scoring.BaseValueMetric{Scale: 100, Weight: 0.2}
	got := m.Evaluate(scoring.Input{Val: 2.5}, time.Now())
	if got.Contribution != 50 {
		t.Errorf("contribution = %f, want 50", got.Contribution)
	}
	if got.Triggered || got.Factor != "" {
		t.Errorf("base value should not trigger a factor: %+v", got)
	}
}
