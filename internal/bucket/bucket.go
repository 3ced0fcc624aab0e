// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bucket lists and downloads published reports from the public
// object-storage bucket. Access is anonymous: listing goes through the JSON
// object-listing API and downloads stream the object media to a local file.
package bucket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/datasciencecampus/mobius/internal/httputil"
	"github.com/datasciencecampus/mobius/pkg/types"
)

// DefaultBucket is the public bucket the published reports live in.
const DefaultBucket = "mobility-reports"

// DatedName matches the dated object naming convention inside a filetype
// prefix, e.g. SVG/2020-04-11_GB_Mobility_Report_en.svg.
const DatedName = `\d{4}-\d{2}-\d{2}_.+`

// Object is one addressable blob in the bucket.
type Object struct {
	Name string `json:"name"`
}

// Base returns the object's name without its filetype prefix.
func (o Object) Base() string {
	parts := strings.Split(o.Name, "/")
	return parts[len(parts)-1]
}

// Country extracts the country code an object name encodes. SVG names carry
// it as the second underscore field; PDF names embed it between the date
// prefix and the report suffix.
func (o Object) Country(svg bool) string {
	name := o.Base()
	if svg {
		parts := strings.Split(name, "_")
		if len(parts) < 2 {
			return ""
		}
		return parts[1]
	}
	name = strings.TrimSuffix(name, "Mobility_Report_en.pdf")
	if len(name) <= 12 {
		return ""
	}
	return strings.TrimSuffix(name[11:], "_")
}

// Client performs anonymous bucket operations.
type Client struct {
	http *http.Client
	cfg  types.StorageConfig

	// baseURL is the storage endpoint; tests point it at a local server.
	baseURL string
}

// NewClient builds a Client for the configured bucket.
func NewClient(cfg types.StorageConfig) *Client {
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		cfg:     cfg,
		baseURL: "https://storage.googleapis.com",
	}
}

type listResponse struct {
	Items         []Object `json:"items"`
	NextPageToken string   `json:"nextPageToken"`
}

// List returns the bucket's objects under the filetype prefix ("SVG" or
// "PDF") whose names match pattern, in the listing's lexical order. The
// pattern is anchored after the prefix, matching the dated naming convention.
func (c *Client) List(ctx context.Context, filetype, pattern string) ([]Object, error) {
	re, err := regexp.Compile("^" + filetype + "/" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling name pattern: %w", err)
	}

	var objects []Object
	pageToken := ""
	for {
		u := fmt.Sprintf("%s/storage/v1/b/%s/o?prefix=%s", c.baseURL, c.cfg.Bucket, url.QueryEscape(filetype+"/"))
		if pageToken != "" {
			u += "&pageToken=" + url.QueryEscape(pageToken)
		}

		resp, err := httputil.Get(ctx, c.http, u, c.cfg.UserAgent)
		if err != nil {
			return nil, fmt.Errorf("listing bucket %s: %w", c.cfg.Bucket, err)
		}

		var page listResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("decoding bucket listing: %w", decodeErr)
		}

		for _, obj := range page.Items {
			if re.MatchString(obj.Name) {
				objects = append(objects, obj)
			}
		}

		if page.NextPageToken == "" {
			return objects, nil
		}
		pageToken = page.NextPageToken
	}
}

// Download streams one object to destPath via a temporary file, renaming on
// success so a partial download never masquerades as a complete report.
func (c *Client) Download(ctx context.Context, obj Object, destPath string) error {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, c.cfg.Bucket, escapePath(obj.Name))

	resp, err := httputil.Get(ctx, c.http, u, c.cfg.UserAgent)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", obj.Name, err)
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func escapePath(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
