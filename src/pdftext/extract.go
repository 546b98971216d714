// backend/src/pdftext/extract.go
//
// Package pdftext turns a PDF statement into the page/line representation
// the parsing engine consumes. It is deliberately the only place that knows
// anything about PDFs; the engine itself never sees a byte of one.
package pdftext

import (
	"fmt"
	"io"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/username/depotfolio/backend/src/parsing"
)

// ExtractFile reads a PDF from disk and returns its pages as line
// sequences, one entry per text row, in reading order.
func ExtractFile(path string) (parsing.Document, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	return extract(r)
}

// ExtractReader does the same for an in-memory or uploaded PDF.
func ExtractReader(ra io.ReaderAt, size int64) (parsing.Document, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	return extract(r)
}

func extract(r *pdf.Reader) (parsing.Document, error) {
	doc := make(parsing.Document, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		page := make(parsing.Page, 0, len(rows))
		for _, row := range rows {
			var sb strings.Builder
			for _, word := range row.Content {
				sb.WriteString(word.S)
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				page = append(page, line)
			}
		}
		doc = append(doc, page)
	}
	return doc, nil
}
