package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datasciencecampus/mobius/internal/bucket"
	"github.com/datasciencecampus/mobius/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "mobius/0.1"
)

// storageConfig builds the bucket configuration from flags and config file.
func storageConfig(cmd *cobra.Command) types.StorageConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	bucketName := viper.GetString("bucket")
	if bucketName == "" {
		bucketName = bucket.DefaultBucket
	}

	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return types.StorageConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		Bucket:        bucketName,
		DownloadDelay: defaultDelay,
	}
}

var svgCmd = &cobra.Command{
	Use:   "svg",
	Short: "List all the SVGs available in the bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := bucket.NewClient(storageConfig(cmd))
		objects, err := client.List(context.Background(), "SVG", bucket.DatedName)
		if err != nil {
			return err
		}
		bucket.Show(objects, true, os.Stdout)
		return nil
	},
}

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "List all the PDFs available in the bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := bucket.NewClient(storageConfig(cmd))
		objects, err := client.List(context.Background(), "PDF", bucket.DatedName)
		if err != nil {
			return err
		}
		bucket.Show(objects, false, os.Stdout)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{svgCmd, pdfCmd} {
		c.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
		rootCmd.AddCommand(c)
	}
}
