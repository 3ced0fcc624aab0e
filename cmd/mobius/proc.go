package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/datasciencecampus/mobius/internal/dates"
	"github.com/datasciencecampus/mobius/internal/outputdir"
	"github.com/datasciencecampus/mobius/internal/plotpng"
	"github.com/datasciencecampus/mobius/internal/svgchart"
	"github.com/datasciencecampus/mobius/internal/tabulate"
	"github.com/datasciencecampus/mobius/pkg/types"
)

const defaultDatesFile = "config/dates_lookup.csv"

var procCmd = &cobra.Command{
	Use:   "proc INPUT_LOCATION OUTPUT_FOLDER [DATES_FILE]",
	Short: "Process a country's SVG chart document into a series table",
	Long: `Proc extracts every chart's geometry from the SVG document (or a
directory of per-page SVGs), calibrates pixel coordinates into dated
percentage samples using the date-lookup table, and writes the flat series
table as CSV into the output folder.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runProc,
}

func init() {
	procCmd.Flags().StringP("folder", "f", "", "overwrite the output folder name")
	procCmd.Flags().BoolP("svgs", "s", false, "save the extracted per-chart SVG fragments")
	procCmd.Flags().BoolP("plots", "p", false, "save additional PNG plots per chart")
	procCmd.Flags().Float64("grid-span", 0, "percent spanned between outermost gridlines (default 160)")

	rootCmd.AddCommand(procCmd)
}

// processConfig builds the extraction stage configuration from flags and
// positional arguments.
func processConfig(cmd *cobra.Command, args []string) types.ProcessConfig {
	cfg := types.ProcessConfig{DatesFile: defaultDatesFile}
	if len(args) == 3 {
		cfg.DatesFile = args[2]
	}
	cfg.SaveSVGs, _ = cmd.Flags().GetBool("svgs")
	cfg.SavePlots, _ = cmd.Flags().GetBool("plots")
	cfg.GridSpan, _ = cmd.Flags().GetFloat64("grid-span")
	return cfg
}

func runProc(cmd *cobra.Command, args []string) error {
	inputLocation, outputRoot := args[0], args[1]
	cfg := processConfig(cmd, args)
	folder, _ := cmd.Flags().GetString("folder")

	lookup, err := dates.Load(cfg.DatesFile)
	if err != nil {
		return err
	}

	fmt.Printf("Processing %s\n", inputLocation)
	outputFolder, err := outputdir.Prepare(inputLocation, outputRoot, folder)
	if err != nil {
		return err
	}

	charts, err := svgchart.ExtractFile(inputLocation)
	if err != nil {
		return err
	}

	if cfg.SaveSVGs {
		svgDir := filepath.Join(outputFolder, "svgs")
		if err := os.MkdirAll(svgDir, 0o755); err != nil {
			return fmt.Errorf("creating svgs folder: %w", err)
		}
		for _, chart := range charts {
			name := fmt.Sprintf("chart_%03d.svg", chart.ChartIndex)
			if err := svgchart.WriteFragment(chart, filepath.Join(svgDir, name)); err != nil {
				fmt.Fprintf(os.Stdout, "warning: saving fragment for chart %d: %v\n", chart.ChartIndex, err)
			}
		}
	}

	opts := tabulate.Options{
		Country:  tabulate.CountryFromPath(inputLocation),
		GridSpan: cfg.GridSpan,
	}
	if cfg.SavePlots {
		plotDir := filepath.Join(outputFolder, "plots")
		if err := os.MkdirAll(plotDir, 0o755); err != nil {
			return fmt.Errorf("creating plots folder: %w", err)
		}
		opts.Plotter = plotpng.Renderer{}
		opts.PlotDir = plotDir
	}

	rows := tabulate.Tabulate(charts, lookup, opts, os.Stdout)
	outFile := filepath.Join(outputFolder, "series.csv")
	if err := tabulate.WriteCSVFile(rows, outFile); err != nil {
		return err
	}

	fmt.Printf("Extracted %d charts, %d rows. Saved to %s\n", len(charts), len(rows), outFile)
	return nil
}
