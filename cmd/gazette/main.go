// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gazette CLI, which parses
// examination result gazettes into a CSV table in page chunks.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gazette/internal/cliconfig"
	"github.com/pdiddy/gazette/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured from --log-level before any command runs.
var logger = slog.Default()

// rootCmd parses a page chunk of the gazette, or prints table stats.
var rootCmd = &cobra.Command{
	Use:   "gazette",
	Short: "Extract examination results from a PDF gazette into CSV",
	Long: `gazette reads a result gazette page by page, tracks the institution header
each block of candidates belongs to, and writes one CSV row per roll number.

Large gazettes are processed in chunks: run pages 1-300 fresh, then later
ranges with --append. Use "gazette info" to print a chunk plan.

  gazette --start 1 --end 300
  gazette --start 301 --end 600 --append
  gazette --stats`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = cliconfig.NewLogger(viper.GetString("log-level"), os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
	RunE: runParse,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./gazette.yaml or ~/.config/gazette/gazette.yaml)")
	pf.String("pdf", types.DefaultPDFPath, "gazette PDF to read")
	pf.String("csv", types.DefaultCSVPath, "results table to write")
	pf.String("backend", string(types.BackendNative), "page text backend: native or pdftotext")
	pf.String("vocabulary", "", "YAML file overriding institution hints, status keywords, and grades")
	pf.Int("chunk-size", types.DefaultChunkSize, "pages per chunk in the info plan")
	pf.String("log-level", "info", "log level: debug, info, warn, error")

	for _, key := range []string{"pdf", "csv", "backend", "vocabulary", "chunk-size", "log-level"} {
		_ = viper.BindPFlag(key, pf.Lookup(key))
	}

	addParseFlags(rootCmd)
	_ = viper.BindPFlag("sample-rows", rootCmd.Flags().Lookup("sample-rows"))
}

// addParseFlags registers the flags read by runParse on cmd.
func addParseFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("start", 0, "first page to process (1-based)")
	f.Int("end", 0, "last page to process (inclusive)")
	f.Bool("append", false, "append to the existing table instead of recreating it")
	f.Bool("stats", false, "print row count and sample rows of the table instead of parsing")
	f.Int("sample-rows", types.DefaultSampleRows, "rows shown by --stats")
	f.Bool("yaml", false, "print --stats output as YAML")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if used := cliconfig.Init(cfgFile); used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
