package processors

import (
	"github.com/username/depotfolio/backend/src/models"
)

// ActivityProcessor enriches parsed activities with universal data
// (country code, dedup hash) before they are persisted.
type ActivityProcessor interface {
	Process(userID int64, activities []models.Activity) []models.StoredActivity
}

// DividendProcessor defines the interface for calculating dividend summaries.
type DividendProcessor interface {
	CalculateTaxSummary(activities []models.StoredActivity) models.DividendTaxResult
}

// PurchaseProcessor defines the interface for calculating buy summaries.
type PurchaseProcessor interface {
	CalculateYearSummary(activities []models.StoredActivity) models.PurchaseSummaryResult
}
