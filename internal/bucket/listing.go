// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bucket

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// maxCountryWidth pads or truncates country codes in listings.
const maxCountryWidth = 20

// Show prints the numbered country listing for a set of objects in the
// original aligned-column format.
func Show(objects []Object, svg bool, w io.Writer) {
	fmt.Fprintln(w, "Available countries:")
	for i, obj := range objects {
		country := obj.Country(svg)
		if len(country) < maxCountryWidth {
			country += strings.Repeat(" ", maxCountryWidth-len(country))
		} else {
			country = country[:maxCountryWidth]
		}
		fmt.Fprintf(w, " %3d. %s (%s)\n", i+1, country, obj.Name)
	}
}

// DownloadCountry fetches every report object for a country code and
// filetype into svgs/ or pdfs/ under the configured download directory,
// pausing between consecutive downloads. It returns the number of files
// written; zero means no object matched the code.
func (c *Client) DownloadCountry(ctx context.Context, countryCode string, svg bool, w io.Writer) (int, error) {
	filetype, extension := "PDF", "pdf"
	if svg {
		filetype, extension = "SVG", "svg"
	}

	pattern := `\d{4}-\d{2}-\d{2}_` + regexp.QuoteMeta(countryCode) + `_.+`
	objects, err := c.List(ctx, filetype, pattern)
	if err != nil {
		return 0, err
	}
	if len(objects) == 0 {
		fmt.Fprintf(w, "Could not find a %s file for code %s\n", extension, countryCode)
		return 0, nil
	}

	dir := filepath.Join(c.cfg.DownloadDir, extension+"s")
	for i, obj := range objects {
		if i > 0 && c.cfg.DownloadDelay > 0 {
			time.Sleep(c.cfg.DownloadDelay)
		}
		dest := filepath.Join(dir, obj.Country(svg)+"."+extension)
		if err := c.Download(ctx, obj, dest); err != nil {
			return i, err
		}
	}

	fmt.Fprintf(w, "Download %s %s complete. Saved to %s\n", countryCode, extension, dir)
	return len(objects), nil
}
