package processors

import (
	"os"
	"testing"

	"github.com/username/depotfolio/backend/src/logger"
	"github.com/username/depotfolio/backend/src/utils"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	if err := utils.InitCountryData("../../data/country.json"); err != nil {
		logger.L.Error("country data init failed", "error", err)
		os.Exit(1)
	}
	if err := LoadHistoricalRates("../../data/historicalExchangeRate.json"); err != nil {
		logger.L.Error("historical rates init failed", "error", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}
