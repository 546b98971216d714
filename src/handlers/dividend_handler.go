package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/username/depotfolio/backend/src/logger"
	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/services"
)

type DividendHandler struct {
	importService services.ImportService
}

func NewDividendHandler(service services.ImportService) *DividendHandler {
	return &DividendHandler{
		importService: service,
	}
}

func (h *DividendHandler) HandleGetDividendTaxSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	logger.L.Info("Handling GetDividendTaxSummary", "userID", userID)
	taxSummary, err := h.importService.GetDividendTaxSummary(userID)
	if err != nil {
		logger.L.Error("Error retrieving dividend tax summary", "userID", userID, "error", err)
		sendJSONError(w, fmt.Sprintf("Error retrieving dividend tax summary for userID %d: %v", userID, err), http.StatusInternalServerError)
		return
	}
	if taxSummary == nil {
		taxSummary = make(models.DividendTaxResult) // Ensure an empty map is sent if no data
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(taxSummary); err != nil {
		logger.L.Error("Error encoding dividend tax summary to JSON", "userID", userID, "error", err)
	}
}

func (h *DividendHandler) HandleGetDividendActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	logger.L.Info("Handling GetDividendActivities", "userID", userID)
	dividends, err := h.importService.GetDividendActivities(userID)
	if err != nil {
		logger.L.Error("Error retrieving dividend activities", "userID", userID, "error", err)
		sendJSONError(w, fmt.Sprintf("Error retrieving dividend activities for userID %d: %v", userID, err), http.StatusInternalServerError)
		return
	}
	if dividends == nil {
		dividends = []models.StoredActivity{} // Ensure an empty array is sent if no data
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dividends); err != nil {
		logger.L.Error("Error encoding dividend activities to JSON", "userID", userID, "error", err)
	}
}
