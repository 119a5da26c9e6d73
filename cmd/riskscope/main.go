// Package main provides the riskscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "riskscope",
		Short: "Weighted risk scoring for submitted records",
		Long: `riskscope scores a record against eight weighted rules, classifies the
result as GREEN, YELLOW or RED, and reports which risk factors fired.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to config file (default: .riskscope/config.yaml in cwd or a parent)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.dataDir, "data-dir", "", "Directory holding the history store")
	pf.StringVar(&opts.backend, "backend", "", "History backend: bolt, sqlite or file")

	rootCmd.AddCommand(
		newAnalyzeCmd(opts),
		newExamplesCmd(opts),
		newHistoryCmd(opts),
		newServeCmd(opts),
	)
	return rootCmd
}
