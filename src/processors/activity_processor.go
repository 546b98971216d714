package processors

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/utils"
)

type activityProcessorImpl struct{}

func NewActivityProcessor() ActivityProcessor { return &activityProcessorImpl{} }

// Process enriches parsed activities with universal data. The parsing layer
// has already validated the activity, so this stage only adds country code
// and the deduplication hash.
func (p *activityProcessorImpl) Process(userID int64, activities []models.Activity) []models.StoredActivity {
	var stored []models.StoredActivity
	for _, a := range activities {
		s := models.StoredActivity{
			UserID:      userID,
			Broker:      a.Broker,
			Type:        a.Type,
			ISIN:        a.ISIN,
			WKN:         a.WKN,
			Company:     a.Company,
			Shares:      a.Shares,
			Price:       a.Price,
			Amount:      a.Amount,
			Fee:         a.Fee,
			Tax:         a.Tax,
			Date:        a.Date,
			DateTime:    a.DateTime,
			FX:          a.FX,
			CountryCode: utils.GetCountryCodeString(a.ISIN),
			HashID:      generateHash(a),
			ImportedAt:  time.Now(),
		}
		stored = append(stored, s)
	}
	return stored
}

// generateHash creates a unique hash for the activity based on source data.
// Broker, type, security, datetime and amount together identify a statement,
// so re-uploading the same PDF dedupes against it.
func generateHash(a models.Activity) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		a.Broker,
		a.Type,
		a.ISIN,
		a.DateTime.Format(time.RFC3339),
		a.Shares.String(),
		a.Amount.String(),
	)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}
