// backend/src/parsers/sbroker/parser.go
//
// Broker module for S Broker (Sparkassen Broker) v2.7 statements. Only the
// issuer and version fingerprints are wired up so far; no sub-type has
// extraction rules yet, so classification never yields a match and Parse
// answers StatusNotRecognized for anything handed to it directly.
package sbroker

import (
	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/parsing"
)

const brokerName = "sbroker"

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Name() string { return brokerName }

func (p *Parser) CanParse(doc parsing.Document, extension string) bool {
	if extension != "pdf" || len(doc) == 0 {
		return false
	}
	firstPage := doc[0]
	return parsing.ContainsLine(firstPage, "S Broker") &&
		parsing.ContainsLine(firstPage, "v2.7") &&
		detectType(firstPage) != typeUnknown
}

func (p *Parser) Parse(doc parsing.Document) (models.ParseOutcome, error) {
	return models.ParseOutcome{Status: models.StatusNotRecognized}, nil
}

type documentType int

const (
	typeUnknown documentType = iota
	typeBuy
)

func detectType(page parsing.Page) documentType {
	if isBuy(page) {
		return typeBuy
	}
	return typeUnknown
}

// isBuy will carry the buy-confirmation signature once the extraction rules
// for the v2.7 layout are implemented.
func isBuy(page parsing.Page) bool {
	return false
}
