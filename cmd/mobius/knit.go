// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datasciencecampus/mobius/internal/dates"
	"github.com/datasciencecampus/mobius/internal/headline"
	"github.com/datasciencecampus/mobius/internal/reconcile"
	"github.com/datasciencecampus/mobius/internal/store"
	"github.com/datasciencecampus/mobius/internal/svgchart"
	"github.com/datasciencecampus/mobius/internal/tabulate"
	"github.com/datasciencecampus/mobius/pkg/types"
)

var knitCmd = &cobra.Command{
	Use:   "knit INPUT_PDF INPUT_SVG OUTPUT_FOLDER",
	Short: "Combine text extracted from a PDF report with SVG chart data",
	Long: `Knit runs the full pipeline: it extracts headline figures from the PDF
report's text, extracts and samples every chart from the SVG document, joins
the two tables on the shared plot index, and reports every plot whose last
charted sample disagrees with its declared headline.`,
	Args: cobra.ExactArgs(3),
	RunE: runKnit,
}

func init() {
	knitCmd.Flags().String("dates-file", defaultDatesFile, "path to the date-lookup CSV")
	knitCmd.Flags().Float64("grid-span", 0, "percent spanned between outermost gridlines (default 160)")
	knitCmd.Flags().Bool("index", false, "persist rows and findings to the run's SQLite store")

	rootCmd.AddCommand(knitCmd)
}

// knitConfig builds the combined stage configuration from flags.
func knitConfig(cmd *cobra.Command) types.KnitConfig {
	var cfg types.KnitConfig
	cfg.DatesFile, _ = cmd.Flags().GetString("dates-file")
	cfg.GridSpan, _ = cmd.Flags().GetFloat64("grid-span")
	cfg.Index, _ = cmd.Flags().GetBool("index")
	return cfg
}

func runKnit(cmd *cobra.Command, args []string) error {
	inputPDF, inputSVG, outputFolder := args[0], args[1], args[2]
	cfg := knitConfig(cmd)

	if err := os.MkdirAll(outputFolder, 0o755); err != nil {
		return fmt.Errorf("creating output folder: %w", err)
	}

	fmt.Printf("Knitting %s and %s data together\n", inputPDF, inputSVG)

	// Headline table from the report text.
	src, err := headline.OpenPDF(inputPDF)
	if err != nil {
		return err
	}
	country := tabulate.CountryFromPath(inputPDF)
	headlines, err := headline.Summarise(src, country, os.Stdout)
	if err != nil {
		return err
	}

	pdfBase := strings.TrimSuffix(filepath.Base(inputPDF), filepath.Ext(inputPDF))
	summaryFile := filepath.Join(outputFolder, pdfBase+"_summary.csv")
	if err := headline.WriteCSVFile(headlines, summaryFile); err != nil {
		return err
	}

	// Series table from the chart geometry.
	lookup, err := dates.Load(cfg.DatesFile)
	if err != nil {
		return err
	}
	charts, err := svgchart.ExtractFile(inputSVG)
	if err != nil {
		return err
	}
	rows := tabulate.Tabulate(charts, lookup, tabulate.Options{
		Country:  country,
		GridSpan: cfg.GridSpan,
	}, os.Stdout)

	// Merge and validate.
	result := reconcile.Reconcile(rows, headlines)

	finalFile := filepath.Join(outputFolder, pdfBase+".csv")
	if err := reconcile.WriteCSVFile(result.Rows, finalFile); err != nil {
		return err
	}

	reconcile.Report(result, os.Stdout)

	if cfg.Index {
		s, err := store.Open(outputFolder)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		if err := s.PutRun(ctx, country, rows, headlines, result.Mismatches); err != nil {
			return err
		}
		if err := s.ExportYAML(ctx, country, outputFolder); err != nil {
			return err
		}
	}
	return nil
}
