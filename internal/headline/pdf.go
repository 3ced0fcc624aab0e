// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package headline

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/tsawler/tabula"
)

// PDFSource is a TextSource backed by a report PDF on disk. Opening the
// source validates the document up front; a PDF that cannot be read is a
// hard input error and aborts the run before any extraction starts.
type PDFSource struct {
	path      string
	pageCount int
}

// OpenPDF preflights the document and returns a page-text source for it.
func OpenPDF(path string) (*PDFSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report %s: %w", path, err)
	}
	defer f.Close()

	pageCount, err := api.PageCount(f, nil)
	if err != nil {
		return nil, fmt.Errorf("malformed report %s: %w", path, err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("report %s has no pages", path)
	}

	return &PDFSource{path: path, pageCount: pageCount}, nil
}

// PageCount reports the number of pages found at open time.
func (s *PDFSource) PageCount() (int, error) {
	return s.pageCount, nil
}

// PageText extracts the text of one page.
func (s *PDFSource) PageText(page int) (string, error) {
	if page < 1 || page > s.pageCount {
		return "", fmt.Errorf("page %d out of range 1..%d", page, s.pageCount)
	}
	text, _, err := tabula.Open(s.path).Pages(page).Text()
	if err != nil {
		return "", fmt.Errorf("extracting text from page %d: %w", page, err)
	}
	return text, nil
}
