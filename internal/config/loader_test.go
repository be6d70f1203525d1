package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	assert.Equal(t, "lifegroups.csv", cfg.Catalog.Path)
	assert.Equal(t, 10*time.Minute, cfg.Catalog.CacheTTL())
	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.Geocoder.BaseURL)
	assert.Equal(t, "São Paulo", cfg.Geocoder.CityHint)
	assert.Equal(t, "Brasil", cfg.Geocoder.CountryHint)
	assert.Equal(t, 10*time.Second, cfg.Geocoder.Timeout())
	assert.Equal(t, 15*time.Second, cfg.Notify.Timeout())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Catalog.Path = "/data/grupos.csv"
	cfg.Catalog.CacheTTLSecs = 30
	cfg.Geocoder.CityHint = "Campinas"
	applyDefaults(&cfg)

	assert.Equal(t, "/data/grupos.csv", cfg.Catalog.Path)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL())
	assert.Equal(t, "Campinas", cfg.Geocoder.CityHint)
}

func TestValidateTestModeRequiresOperatorPhone(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)
	cfg.Notify.TestMode = true

	err := validate(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operator_phone")

	cfg.Notify.OperatorPhone = "5519992071423"
	assert.NoError(t, validate(&cfg))
}

func TestValidateRejectsNegativeTTL(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)
	cfg.Catalog.CacheTTLSecs = -1

	assert.Error(t, validate(&cfg))
}

func TestLeaderPhoneOverride(t *testing.T) {
	n := NotifyConfig{TestMode: false, OperatorPhone: "5511999990000"}
	assert.Equal(t, "5519988887777", n.LeaderPhone("5519988887777"))

	n.TestMode = true
	assert.Equal(t, "5511999990000", n.LeaderPhone("5519988887777"))
}
