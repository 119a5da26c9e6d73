package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/riskscope/riskscope/pkg/scoring"
)

// TerminalRenderer renders a Result as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

const (
	barScale = 100.0 // points represented by a full bar
	barWidth = 20
)

func levelColor(level scoring.Level) string {
	if noColor() {
		return ""
	}
	switch level {
	case scoring.LevelGreen:
		return colorGreen
	case scoring.LevelYellow:
		return colorYellow
	case scoring.LevelRed:
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *scoring.Result) error {
	lc := levelColor(result.Level)

	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Risk level %s, score %d",
			colored(string(result.Level), lc), result.Score)))

	if len(result.Factors) == 0 {
		fmt.Fprintln(w, "No factors detected.")
	} else {
		fmt.Fprintln(w, "Detected factors:")
		for _, f := range result.Factors {
			fmt.Fprintf(w, "  %s %s\n", colored(string(f), colorBlue), FactorDescription(f))
		}
	}
	fmt.Fprintln(w)

	if len(result.Breakdown) > 0 {
		fmt.Fprintln(w, "Breakdown:")
		for _, mr := range result.Breakdown {
			fmt.Fprintf(w, "  %-22s %s %s\n",
				mr.Name, bar(mr.Contribution), dim(formatPoints(mr.Contribution)))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// bar draws a fixed-width gauge for a contribution measured against barScale.
func bar(points float64) string {
	filled := int(points / barScale * barWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	// Any positive contribution shows at least one cell.
	if filled == 0 && points > 0 {
		filled = 1
	}
	return colored(strings.Repeat("█", filled), colorBlue) + dim(strings.Repeat("░", barWidth-filled))
}

func formatPoints(p float64) string {
	s := fmt.Sprintf("%.2f", p)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
