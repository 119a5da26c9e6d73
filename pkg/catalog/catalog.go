// Package catalog holds the named example inputs used to sanity-check the
// scorer, each with the risk level it is expected to produce.
package catalog

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riskscope/riskscope/pkg/scoring"
)

//go:embed examples.yaml
var examplesYAML []byte

// Example is a named input with its expected level.
type Example struct {
	Name     string        `yaml:"name" json:"name"`
	Expected scoring.Level `yaml:"expected" json:"expected"`
	Input    scoring.Input `yaml:"input" json:"input"`
}

// Outcome is the result of running one Example through an engine.
type Outcome struct {
	Example Example        `json:"example"`
	Result  scoring.Result `json:"result"`
	Pass    bool           `json:"pass"`
}

// Load decodes the embedded examples.
func Load() ([]Example, error) {
	return Parse(examplesYAML)
}

// MustLoad is Load for callers that treat a broken embedded catalog as a bug.
func MustLoad() []Example {
	examples, err := Load()
	if err != nil {
		panic(err)
	}
	return examples
}

// Parse decodes examples from YAML and checks that each one is usable.
func Parse(data []byte) ([]Example, error) {
	var examples []Example
	if err := yaml.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parsing examples: %w", err)
	}

	seen := make(map[string]bool, len(examples))
	for i, ex := range examples {
		if ex.Name == "" {
			return nil, fmt.Errorf("example %d: missing name", i)
		}
		if seen[ex.Name] {
			return nil, fmt.Errorf("example %q: duplicate name", ex.Name)
		}
		seen[ex.Name] = true

		if lvl, ok := scoring.ParseLevel(string(ex.Expected)); !ok || lvl == scoring.LevelUnset {
			return nil, fmt.Errorf("example %q: invalid expected level %q", ex.Name, ex.Expected)
		}
	}
	return examples, nil
}

// Find returns the example with the given name.
func Find(examples []Example, name string) (Example, bool) {
	for _, ex := range examples {
		if ex.Name == name {
			return ex, true
		}
	}
	return Example{}, false
}

// Check runs every example through the engine as of now.
func Check(engine *scoring.Engine, examples []Example, now time.Time) []Outcome {
	outcomes := make([]Outcome, 0, len(examples))
	for _, ex := range examples {
		res := engine.AnalyzeAt(ex.Input, now)
		outcomes = append(outcomes, Outcome{
			Example: ex,
			Result:  res,
			Pass:    res.Level == ex.Expected,
		})
	}
	return outcomes
}

// Failed returns the outcomes whose level did not match the expectation.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if !o.Pass {
			failed = append(failed, o)
		}
	}
	return failed
}
