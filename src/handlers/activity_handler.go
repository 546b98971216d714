package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/depotfolio/backend/src/logger"
	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/services"
	"github.com/username/depotfolio/backend/src/utils"
)

type ActivityHandler struct {
	importService services.ImportService
}

func NewActivityHandler(service services.ImportService) *ActivityHandler {
	return &ActivityHandler{
		importService: service,
	}
}

func (h *ActivityHandler) HandleGetActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	logger.L.Debug("Handling GetActivities request with ETag support", "userID", userID)

	activities, err := h.importService.GetActivities(userID)
	if err != nil {
		logger.L.Error("Error retrieving activities from service", "userID", userID, "error", err)
		sendJSONError(w, fmt.Sprintf("Error retrieving activities for userID %d: %v", userID, err), http.StatusInternalServerError)
		return
	}
	if activities == nil {
		activities = []models.StoredActivity{}
	}

	currentETag, etagErr := utils.GenerateETag(activities)
	if etagErr != nil {
		logger.L.Error("Failed to generate ETag for activities", "userID", userID, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETag := r.Header.Get("If-None-Match")
		for _, cETag := range strings.Split(clientETag, ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				logger.L.Debug("ETag match for activities", "userID", userID, "etag", currentETag)
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(activities); err != nil {
		logger.L.Error("Error generating JSON response for activities", "userID", userID, "error", err)
	}
}

func (h *ActivityHandler) HandleGetPurchaseSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	logger.L.Info("Handling GetPurchaseSummary", "userID", userID)
	summary, err := h.importService.GetPurchaseSummary(userID)
	if err != nil {
		logger.L.Error("Error retrieving purchase summary", "userID", userID, "error", err)
		sendJSONError(w, fmt.Sprintf("Error retrieving purchase summary for userID %d: %v", userID, err), http.StatusInternalServerError)
		return
	}
	if summary == nil {
		summary = make(models.PurchaseSummaryResult) // Ensure an empty map is sent if no data
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logger.L.Error("Error encoding purchase summary to JSON", "userID", userID, "error", err)
	}
}

func (h *ActivityHandler) HandleDeleteActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	logger.L.Info("Handling DeleteActivities", "userID", userID)

	if err := h.importService.DeleteUserActivities(userID); err != nil {
		logger.L.Error("Error deleting activities", "userID", userID, "error", err)
		sendJSONError(w, fmt.Sprintf("Error deleting activities for userID %d: %v", userID, err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
