package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/username/depotfolio/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	if err := InitCountryData("../../data/country.json"); err != nil {
		logger.L.Error("country data init failed", "error", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestGetCountryCodeString(t *testing.T) {
	assert.Equal(t, "040 - Austria", GetCountryCodeString("AT0000APOST4"))
	assert.Equal(t, "840 - United States of America", GetCountryCodeString("US0378331005"))
	assert.Equal(t, "276 - Germany", GetCountryCodeString("DE0008404005"))
}

func TestGetCountryCodeStringLowercasePrefix(t *testing.T) {
	assert.Equal(t, "040 - Austria", GetCountryCodeString("at0000apost4"))
}

func TestGetCountryCodeStringUnknownPrefix(t *testing.T) {
	assert.Equal(t, "Unknown Code: XX", GetCountryCodeString("XX0000000000"))
}

func TestGetCountryCodeStringTooShort(t *testing.T) {
	assert.Equal(t, "Invalid ISIN (Too Short)", GetCountryCodeString("A"))
	assert.Equal(t, "Invalid ISIN (Too Short)", GetCountryCodeString(""))
}
