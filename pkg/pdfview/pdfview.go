package pdfview

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCount returns the number of pages in a local PDF.
func PageCount(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read page count: %w", err)
	}
	return count, nil
}

// ExtractPage returns a single-page PDF for the in-browser viewer. Pages are
// 1-based; out-of-range requests are an error, not a clamp, so the client's
// prev/next logic stays honest.
func ExtractPage(path string, page int) ([]byte, error) {
	total, err := PageCount(path)
	if err != nil {
		return nil, err
	}
	if page < 1 || page > total {
		return nil, fmt.Errorf("page %d out of range (1-%d)", page, total)
	}

	outDir, err := os.MkdirTemp("", "pdfview-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(outDir)

	outPath := filepath.Join(outDir, "page.pdf")
	if err := api.TrimFile(path, outPath, []string{strconv.Itoa(page)}, nil); err != nil {
		return nil, fmt.Errorf("failed to extract page %d: %w", page, err)
	}

	return os.ReadFile(outPath)
}
