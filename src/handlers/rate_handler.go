package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/username/depotfolio/backend/src/logger"
	"github.com/username/depotfolio/backend/src/services"
	"github.com/username/depotfolio/backend/src/utils"
)

type RateHandler struct {
	rateService services.RateService
}

func NewRateHandler(service services.RateService) *RateHandler {
	return &RateHandler{
		rateService: service,
	}
}

// HandleGetRate resolves a EUR reference rate, e.g.
// GET /api/rates?currency=USD&date=2020-06-05
func (h *RateHandler) HandleGetRate(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetUserIDFromContext(r.Context()); !ok {
		sendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	currency := r.URL.Query().Get("currency")
	if currency == "" {
		sendJSONError(w, "currency query parameter is required", http.StatusBadRequest)
		return
	}

	dateStr := r.URL.Query().Get("date")
	date := time.Now()
	if dateStr != "" {
		if date = utils.ParseDate(dateStr); date.IsZero() {
			sendJSONError(w, "date must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
	}

	rate, err := h.rateService.GetRate(currency, date)
	if err != nil {
		logger.L.Warn("Rate lookup failed", "currency", currency, "date", date.Format(utils.DefaultDateFormat), "error", err)
		sendJSONError(w, "rate not available for the requested currency and date", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"currency": currency,
		"date":     date.Format(utils.DefaultDateFormat),
		"rate":     rate.String(),
	})
}
