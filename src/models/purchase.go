package models

// PurchaseYearSummary holds the aggregated buy activity for one year.
// Amounts are rendered as float64 only here, at the API output boundary.
type PurchaseYearSummary struct {
	TotalAmt float64 `json:"total_amt"`
	FeeAmt   float64 `json:"fee_amt"`
	Count    int     `json:"count"`
}

// PurchaseSummaryResult represents the final structure for the purchase summary endpoint.
// map[Year]PurchaseYearSummary
type PurchaseSummaryResult map[string]PurchaseYearSummary
