// Package scoring implements the riskscope weighted risk scorer.
// It maps a submitted input record to a rounded score, a three-tier risk level
// and the ordered list of factor codes that fired.
package scoring

import "time"

// Input is the record submitted for analysis.
// The scorer accepts any well-typed value; range checks belong to pkg/validate.
type Input struct {
	Val           float64   `json:"val" yaml:"val"`
	Flag1         bool      `json:"flag1" yaml:"flag1"`
	Text          string    `json:"text" yaml:"text"`
	Hour          int       `json:"hour" yaml:"hour"`
	Email         string    `json:"email" yaml:"email"`
	Addr1         string    `json:"addr1" yaml:"addr1"`
	Addr2         string    `json:"addr2" yaml:"addr2"`
	Count         int       `json:"count" yaml:"count"`
	ReferenceDate time.Time `json:"date" yaml:"date"`
}

// Result is the complete output of analyzing one Input.
// Immutable once computed.
type Result struct {
	Score     int            `json:"score"` // RawTotal rounded half away from zero
	Level     Level          `json:"level"`
	Factors   []FactorCode   `json:"factors"`
	RawTotal  float64        `json:"raw_total"`
	Breakdown []MetricResult `json:"breakdown,omitempty"`
}

// MetricResult is the output of a single scoring metric.
type MetricResult struct {
	Key          string     `json:"key"`              // machine key: "night_hour"
	Name         string     `json:"name"`             // human name: "Night-time hour"
	Factor       FactorCode `json:"factor,omitempty"` // empty for continuous metrics
	Triggered    bool       `json:"triggered"`
	Contribution float64    `json:"contribution"`
}

// Level is the three-tier risk classification.
type Level string

const (
	LevelGreen  Level = "GREEN"
	LevelYellow Level = "YELLOW"
	LevelRed    Level = "RED"
	LevelUnset  Level = "--" // before any analysis, or after a validation failure
)

// FactorCode identifies a boolean condition that fired during scoring.
type FactorCode string

const (
	FactorFlag1           FactorCode = "F1"
	FactorLongText        FactorCode = "F2"
	FactorNightHour       FactorCode = "F3"
	FactorTempEmail       FactorCode = "F4"
	FactorAddressMismatch FactorCode = "F5"
	FactorHighCount       FactorCode = "F6"
	FactorRecentDate      FactorCode = "F7"
)

// AllFactors lists every factor code in declaration order.
var AllFactors = []FactorCode{
	FactorFlag1,
	FactorLongText,
	FactorNightHour,
	FactorTempEmail,
	FactorAddressMismatch,
	FactorHighCount,
	FactorRecentDate,
}

const (
	redThreshold    = 60.0
	yellowThreshold = 30.0
)

// LevelFromTotal maps an unrounded raw total to a risk level.
// Both thresholds are strict: 60 is YELLOW and 30 is GREEN.
func LevelFromTotal(total float64) Level {
	switch {
	case total > redThreshold:
		return LevelRed
	case total > yellowThreshold:
		return LevelYellow
	default:
		return LevelGreen
	}
}

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelGreen, LevelYellow, LevelRed, LevelUnset:
		return Level(s), true
	default:
		return "", false
	}
}

// Unset returns the sentinel result shown before analysis or after a
// validation failure.
func Unset() Result {
	return Result{
		Score:   0,
		Level:   LevelUnset,
		Factors: []FactorCode{},
	}
}
