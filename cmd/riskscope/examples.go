package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/riskscope/riskscope/pkg/catalog"
	"github.com/riskscope/riskscope/pkg/scoring"
)

func newExamplesCmd(opts *rootOptions) *cobra.Command {
	var (
		now          string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Score the bundled example records and check their expected levels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			at, err := parseNow(now)
			if err != nil {
				return err
			}
			examples, err := catalog.Load()
			if err != nil {
				return err
			}
			outcomes := catalog.Check(scoring.Default(), examples, at)

			out := cmd.OutOrStdout()
			if firstNonEmpty(outputFormat, opts.cfg.Output.Format) == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(outcomes); err != nil {
					return err
				}
			} else {
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tEXPECTED\tLEVEL\tSCORE\tFACTORS\tOK")
				for _, o := range outcomes {
					mark := "yes"
					if !o.Pass {
						mark = "NO"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
						o.Example.Name, o.Example.Expected, o.Result.Level,
						o.Result.Score, joinFactors(o.Result.Factors), mark)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if failed := catalog.Failed(outcomes); len(failed) > 0 {
				return fmt.Errorf("%d of %d examples did not match their expected level", len(failed), len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&now, "now", "", "Evaluation time, RFC3339 or YYYY-MM-DD (default: current time)")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: text or json (default from config)")
	return cmd
}

func joinFactors(factors []scoring.FactorCode) string {
	if len(factors) == 0 {
		return "-"
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}
