package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/datasciencecampus/mobius/internal/bucket"
)

var downloadCmd = &cobra.Command{
	Use:   "download COUNTRY_CODE",
	Short: "Download a country's report files from the bucket",
	Long: `Download fetches the SVG chart document and/or the PDF report for a
country code. SVGs land in svgs/ and PDFs in pdfs/ under the download
directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	downloadCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")
	downloadCmd.Flags().String("dir", ".", "base directory for downloads")
	downloadCmd.Flags().BoolP("svg", "s", true, "download the country's SVG chart document")
	downloadCmd.Flags().BoolP("pdf", "p", false, "download the country's PDF report")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	countryCode := args[0]

	cfg := storageConfig(cmd)
	if delay, _ := cmd.Flags().GetDuration("delay"); delay != 0 {
		cfg.DownloadDelay = delay
	}
	cfg.DownloadDir, _ = cmd.Flags().GetString("dir")

	wantSVG, _ := cmd.Flags().GetBool("svg")
	wantPDF, _ := cmd.Flags().GetBool("pdf")

	client := bucket.NewClient(cfg)
	ctx := context.Background()

	if wantSVG {
		if _, err := client.DownloadCountry(ctx, countryCode, true, os.Stdout); err != nil {
			return err
		}
	}
	if wantPDF {
		if _, err := client.DownloadCountry(ctx, countryCode, false, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}
