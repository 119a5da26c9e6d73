package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskscope/riskscope/internal/history"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the most recent saved submissions, newest first",
		Long:  fmt.Sprintf("List saved submissions, newest first. At most %d are kept.", history.Capacity),
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if firstNonEmpty(outputFormat, opts.cfg.Output.Format) == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "No saved submissions.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s  %-6s %4d  %s\n",
					e.SubmittedAt.Local().Format(time.DateTime),
					shortID(e.ID), e.Result.Level, e.Result.Score,
					joinFactors(e.Result.Factors))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: text or json (default from config)")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all saved submissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "History cleared.")
			return nil
		},
	})
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
