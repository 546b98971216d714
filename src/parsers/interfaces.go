// backend/src/parsers/interfaces.go
package parsers

import (
	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/parsing"
)

// StatementParser is the capability every broker module implements. Both
// methods are pure functions of their inputs: no module retains state across
// documents, so any number of documents may be parsed concurrently.
//
// CanParse decides applicability from the first page and the file extension
// alone. Parse runs the full classify-extract-assemble-validate pipeline; a
// document that slipped past CanParse yields a StatusNotRecognized outcome,
// while extraction and validation failures of an already-classified document
// surface as errors (they indicate format-version drift, not an unsupported
// document).
type StatementParser interface {
	Name() string
	CanParse(doc parsing.Document, extension string) bool
	Parse(doc parsing.Document) (models.ParseOutcome, error)
}
