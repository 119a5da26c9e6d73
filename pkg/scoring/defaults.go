package scoring

import "time"

// Weights holds the fixed contribution of every metric.
type Weights struct {
	// w1: continuous base value, contributes Val * BaseValueScale * BaseValueWeight
	BaseValueScale  float64
	BaseValueWeight float64

	// w2..w8: flat contributions when the condition holds
	Flag1           float64
	LongText        float64
	NightHour       float64
	TempEmail       float64
	AddressMismatch float64
	HighCount       float64
	RecentDate      float64

	// Thresholds for the gated conditions
	LongTextMinLen   int // len(text) must exceed this
	NightHourStart   int // hour < NightHourStart counts as night
	NightHourEnd     int // hour > NightHourEnd counts as night
	TempEmailMarker  string
	HighCountMin     int // count must exceed this
	RecentDateWindow time.Duration
}

// Defaults returns the scoring weights. They are compiled in and not
// configurable at runtime.
func Defaults() Weights {
	return Weights{
		// w1
		BaseValueScale:  100,
		BaseValueWeight: 0.2,

		// w2..w8
		Flag1:           10,
		LongText:        8,
		NightHour:       15,
		TempEmail:       12,
		AddressMismatch: 20,
		HighCount:       9,
		RecentDate:      14,

		LongTextMinLen:   4,
		NightHourStart:   6,
		NightHourEnd:     23,
		TempEmailMarker:  "@temp",
		HighCountMin:     5,
		RecentDateWindow: 7 * 24 * time.Hour,
	}
}
