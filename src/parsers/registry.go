// backend/src/parsers/registry.go
package parsers

import (
	"fmt"

	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/parsers/erstebank"
	"github.com/username/depotfolio/backend/src/parsers/sbroker"
	"github.com/username/depotfolio/backend/src/parsing"
)

// registry is the ordered, explicit list of every known broker module. There
// is no runtime plugin discovery; adding a broker means adding a package and
// one line here, which keeps dispatch a compile-time-checked linear scan.
var registry = []StatementParser{
	erstebank.New(),
	sbroker.New(),
}

// All returns the registered broker modules in registration order.
func All() []StatementParser {
	return registry
}

// GetParser returns the registered module with the given name.
func GetParser(name string) (StatementParser, error) {
	for _, p := range registry {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no parser available for source: %s", name)
}

// FindParsers returns every registered module whose CanParse accepts the
// document. Callers treat more than one match as ambiguous.
func FindParsers(doc parsing.Document, extension string) []StatementParser {
	var matches []StatementParser
	for _, p := range registry {
		if p.CanParse(doc, extension) {
			matches = append(matches, p)
		}
	}
	return matches
}

// ParseDocument dispatches a document to the single matching broker module.
// No match, or an ambiguous multi-match, yields a StatusNotRecognized
// outcome; a failure inside the matched module's extraction propagates as an
// error rather than being swallowed.
func ParseDocument(doc parsing.Document, extension string) (models.ParseOutcome, error) {
	matches := FindParsers(doc, extension)
	if len(matches) != 1 {
		return models.ParseOutcome{Status: models.StatusNotRecognized}, nil
	}
	return matches[0].Parse(doc)
}
