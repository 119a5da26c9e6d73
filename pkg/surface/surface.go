// Package surface renders analysis results for people and for machines.
package surface

import (
	"io"

	"github.com/riskscope/riskscope/pkg/scoring"
)

// Renderer produces formatted output from a Result.
type Renderer interface {
	// Render writes the formatted result to the writer.
	Render(w io.Writer, result *scoring.Result) error
}

// ForFormat returns the renderer for an output format name.
// Unknown names fall back to the terminal renderer.
func ForFormat(format string) Renderer {
	if format == "json" {
		return &JSONRenderer{}
	}
	return &TerminalRenderer{}
}

var factorDescriptions = map[scoring.FactorCode]string{
	scoring.FactorFlag1:           "Flag 1 is active",
	scoring.FactorLongText:        "Text longer than 4 characters",
	scoring.FactorNightHour:       "Night-time or out-of-range hour",
	scoring.FactorTempEmail:       "Temporary email address (@temp)",
	scoring.FactorAddressMismatch: "Addresses differ",
	scoring.FactorHighCount:       "Count above 5",
	scoring.FactorRecentDate:      "Reference date within the last 7 days",
}

// FactorDescription returns the human description of a factor code,
// or the empty string for an unknown code.
func FactorDescription(code scoring.FactorCode) string {
	return factorDescriptions[code]
}
