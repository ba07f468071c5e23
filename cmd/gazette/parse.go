// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gazette/internal/chunk"
	"github.com/pdiddy/gazette/internal/extract"
	"github.com/pdiddy/gazette/internal/pdftext"
	"github.com/pdiddy/gazette/internal/results"
	"github.com/pdiddy/gazette/pkg/types"
)

func runParse(cmd *cobra.Command, args []string) error {
	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		return runStats(cmd)
	}

	start, _ := cmd.Flags().GetInt("start")
	end, _ := cmd.Flags().GetInt("end")
	if start == 0 || end == 0 {
		return cmd.Help()
	}

	cfg := parseConfig(cmd, start, end)
	if !cfg.Pages.Valid() {
		return fmt.Errorf("%w: --start %d --end %d", types.ErrInvalidRange, start, end)
	}

	vocab, err := loadVocabulary(cfg.VocabularyPath)
	if err != nil {
		return err
	}

	// Open the PDF before touching the table so a missing gazette leaves
	// existing output alone.
	src, err := pdftext.Open(cfg.PDFPath, cfg.Backend)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := results.Open(cfg.CSVPath, cfg.Mode)
	if err != nil {
		return err
	}

	logger.Info("parsing gazette",
		"pdf", cfg.PDFPath, "csv", cfg.CSVPath, "backend", cfg.Backend,
		"start", start, "end", end, "mode", cfg.Mode, "new_table", w.Created())

	_, runErr := chunk.Run(src, w, chunk.Options{
		Pages:      cfg.Pages,
		Vocabulary: vocab,
		Progress:   cmd.OutOrStdout(),
		Logger:     logger,
	})
	if err := w.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pages %d-%d processed and saved to %s\n", start, end, cfg.CSVPath)
	return nil
}

func parseConfig(cmd *cobra.Command, start, end int) types.ParseConfig {
	mode := types.ModeFresh
	if appendMode, _ := cmd.Flags().GetBool("append"); appendMode {
		mode = types.ModeAppend
	}
	return types.ParseConfig{
		PDFPath:        viper.GetString("pdf"),
		CSVPath:        viper.GetString("csv"),
		Backend:        types.Backend(viper.GetString("backend")),
		VocabularyPath: viper.GetString("vocabulary"),
		Pages:          types.PageRange{Start: start, End: end},
		Mode:           mode,
	}
}

func loadVocabulary(path string) (*extract.Vocabulary, error) {
	if path == "" {
		return extract.DefaultVocabulary(), nil
	}
	return extract.LoadVocabulary(path)
}

// runStats prints the table summary. A table that does not exist yet is
// reported as a warning: parsing has simply not started.
func runStats(cmd *cobra.Command) error {
	csvPath := viper.GetString("csv")
	summary, err := results.Stats(csvPath, viper.GetInt("sample-rows"))
	if errors.Is(err, types.ErrMissingInput) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: no %s found, parse at least one chunk first\n", csvPath)
		return nil
	}
	if err != nil {
		return err
	}

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return summary.WriteYAML(cmd.OutOrStdout())
	}
	summary.WriteTable(cmd.OutOrStdout())
	return nil
}
