// backend/src/parsing/document.go
package parsing

// Page is the ordered sequence of text lines extracted from one PDF page.
// Pages are produced by the pdftext package (or any other text extraction
// front end) and are treated as read-only by everything in this package.
type Page []string

// Document is the ordered sequence of pages belonging to one statement.
type Document []Page

// Flatten concatenates all pages of a document into a single line sequence,
// preserving page and line order. Extraction works on the flattened sequence
// because fields regularly span page boundaries.
func Flatten(doc Document) []string {
	total := 0
	for _, page := range doc {
		total += len(page)
	}
	lines := make([]string, 0, total)
	for _, page := range doc {
		lines = append(lines, page...)
	}
	return lines
}
