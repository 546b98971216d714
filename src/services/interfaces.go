package services

import (
	"errors"
	"io"

	"github.com/username/depotfolio/backend/src/models"
)

var (
	// ErrParsingFailed wraps extraction or validation failures inside a
	// recognized document. The upload handler maps it to a 422.
	ErrParsingFailed = errors.New("statement parsing failed")

	// ErrUnsupportedDocument is returned when no broker module recognizes
	// the uploaded document. This is the normal negative outcome, not a bug.
	ErrUnsupportedDocument = errors.New("document not recognized by any broker module")
)

// ImportResult summarizes one statement import.
type ImportResult struct {
	Activities []models.StoredActivity `json:"activities"`
	Imported   int                     `json:"imported"`
	Duplicates int                     `json:"duplicates"`
}

// ImportService defines the interface for the core statement import logic.
type ImportService interface {
	ImportStatement(file io.ReaderAt, size int64, userID int64) (*ImportResult, error)
	GetActivities(userID int64) ([]models.StoredActivity, error)
	GetDividendActivities(userID int64) ([]models.StoredActivity, error)
	GetDividendTaxSummary(userID int64) (models.DividendTaxResult, error)
	GetPurchaseSummary(userID int64) (models.PurchaseSummaryResult, error)
	DeleteUserActivities(userID int64) error
	InvalidateUserCache(userID int64)
}
