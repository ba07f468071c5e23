// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gazette/internal/chunk"
	"github.com/pdiddy/gazette/internal/pdftext"
	"github.com/pdiddy/gazette/pkg/types"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the page count of the gazette and a chunk plan",
	Long: `Info counts the pages of the gazette PDF and splits them into chunks of
--chunk-size pages. Each chunk is printed as the gazette command that
processes it; the first starts a fresh table and the rest append.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath := viper.GetString("pdf")
		pages, err := pdftext.PageCount(pdfPath)
		if err != nil {
			return err
		}
		writePlan(os.Stdout, pdfPath, pages, viper.GetInt("chunk-size"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func writePlan(w io.Writer, pdfPath string, pages, size int) {
	if size < 1 {
		size = types.DefaultChunkSize
	}
	plan := chunk.Plan(pages, size)
	fmt.Fprintf(w, "%s: %d pages, %d chunk(s) of up to %d pages\n", pdfPath, pages, len(plan), size)
	for _, c := range plan {
		line := fmt.Sprintf("  gazette --start %d --end %d", c.Start, c.End)
		if c.Mode == types.ModeAppend {
			line += " --append"
		}
		fmt.Fprintln(w, line)
	}
}
