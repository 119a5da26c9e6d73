package scoring

import "strings"

// DefaultMetrics returns the standard set of scoring metrics with default weights,
// in the order their factor codes are reported.
func DefaultMetrics() []Metric {
	w := Defaults()
	return []Metric{
		&BaseValueMetric{
			Scale:  w.BaseValueScale,
			Weight: w.BaseValueWeight,
		},
		&ConditionMetric{
			MetricKey:  "flag1_active",
			MetricName: "Flag 1 active",
			Factor:     FactorFlag1,
			Weight:     w.Flag1,
			Holds:      func(in Input) bool { return in.Flag1 },
		},
		&ConditionMetric{
			MetricKey:  "long_text",
			MetricName: "Long text",
			Factor:     FactorLongText,
			Weight:     w.LongText,
			Holds:      func(in Input) bool { return len(in.Text) > w.LongTextMinLen },
		},
		&ConditionMetric{
			MetricKey:  "night_hour",
			MetricName: "Night-time hour",
			Factor:     FactorNightHour,
			Weight:     w.NightHour,
			Holds: func(in Input) bool {
				return in.Hour > w.NightHourEnd || in.Hour < w.NightHourStart
			},
		},
		&ConditionMetric{
			MetricKey:  "temp_email",
			MetricName: "Temporary email",
			Factor:     FactorTempEmail,
			Weight:     w.TempEmail,
			Holds:      func(in Input) bool { return strings.Contains(in.Email, w.TempEmailMarker) },
		},
		&ConditionMetric{
			MetricKey:  "address_mismatch",
			MetricName: "Different addresses",
			Factor:     FactorAddressMismatch,
			Weight:     w.AddressMismatch,
			Holds:      func(in Input) bool { return in.Addr1 != in.Addr2 },
		},
		&ConditionMetric{
			MetricKey:  "high_count",
			MetricName: "High count",
			Factor:     FactorHighCount,
			Weight:     w.HighCount,
			Holds:      func(in Input) bool { return in.Count > w.HighCountMin },
		},
		&RecencyMetric{
			Weight: w.RecentDate,
			Window: w.RecentDateWindow,
		},
	}
}
