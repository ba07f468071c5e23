// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for gazette-results, which inspects and
// deduplicates the results table produced by gazette.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gazette/internal/cliconfig"
	"github.com/pdiddy/gazette/internal/results"
	"github.com/pdiddy/gazette/pkg/types"
)

var rootCmd = &cobra.Command{
	Use:   "gazette-results",
	Short: "Inspect or deduplicate the gazette results table",
	Long: `gazette-results works on the CSV table written by gazette.

  gazette-results --stats     row count, status breakdown, and sample rows
  gazette-results --dedupe    drop repeated roll numbers, keeping the first

With both flags the table is deduplicated first. With neither, help is shown.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		slog.SetDefault(cliconfig.NewLogger(viper.GetString("log-level"), os.Stderr))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dedupe, _ := cmd.Flags().GetBool("dedupe")
		stats, _ := cmd.Flags().GetBool("stats")
		if !dedupe && !stats {
			return cmd.Help()
		}
		asYAML, _ := cmd.Flags().GetBool("yaml")
		cfg := types.ResultsConfig{
			CSVPath:    viper.GetString("csv"),
			SampleRows: viper.GetInt("sample-rows"),
		}
		return run(os.Stdout, cfg, dedupe, stats, asYAML)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./gazette.yaml or ~/.config/gazette/gazette.yaml)")
	pf.String("csv", types.DefaultCSVPath, "results table")
	pf.Int("sample-rows", types.DefaultSampleRows, "rows shown by --stats")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	for _, key := range []string{"csv", "sample-rows", "log-level"} {
		_ = viper.BindPFlag(key, pf.Lookup(key))
	}

	f := rootCmd.Flags()
	f.Bool("stats", false, "print total rows, status counts, and sample rows")
	f.Bool("dedupe", false, "remove repeated roll numbers in place")
	f.Bool("yaml", false, "print --stats output as YAML")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if used := cliconfig.Init(cfgFile); used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

// run deduplicates and then summarises the configured table, as requested.
func run(w io.Writer, cfg types.ResultsConfig, dedupe, stats bool, asYAML bool) error {
	path := cfg.CSVPath
	if dedupe {
		res, err := results.Dedupe(path)
		if err != nil {
			return err
		}
		slog.Info("deduplicated results", "csv", path, "before", res.Before, "after", res.After)
		fmt.Fprintf(w, "Deduplicated: %d removed. Final rows: %d\n", res.Removed(), res.After)
	}
	if stats {
		summary, err := results.Stats(path, cfg.SampleRows)
		if err != nil {
			return err
		}
		if asYAML {
			return summary.WriteYAML(w)
		}
		summary.WriteTable(w)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
