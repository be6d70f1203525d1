package config

import "time"

// Config is the full application configuration. It is loaded once at startup
// and injected into the components that need it; nothing reads viper at
// runtime.
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Geocoder GeocoderConfig `mapstructure:"geocoder"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type CatalogConfig struct {
	Path         string `mapstructure:"path"`
	CacheTTLSecs int    `mapstructure:"cache_ttl"` // seconds
}

func (c CatalogConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSecs) * time.Second
}

type GeocoderConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	CityHint    string `mapstructure:"city_hint"`
	CountryHint string `mapstructure:"country_hint"`
	TimeoutSecs int    `mapstructure:"timeout"` // seconds
	CachePath   string `mapstructure:"cache_path"`
}

func (g GeocoderConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// NotifyConfig holds the two delivery channels plus the test-mode override.
// When TestMode is set every leader number is replaced with OperatorPhone,
// in the automated dispatch and in the manual deep link alike. The override
// is deliberate and must stay visible in the UI.
type NotifyConfig struct {
	WebhookURL    string `mapstructure:"webhook_url"`
	ChatURL       string `mapstructure:"chat_url"`
	ChatAPIKey    string `mapstructure:"chat_api_key"`
	TimeoutSecs   int    `mapstructure:"timeout"` // seconds
	TestMode      bool   `mapstructure:"test_mode"`
	OperatorPhone string `mapstructure:"operator_phone"`
}

func (n NotifyConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutSecs) * time.Second
}

// LeaderPhone applies the test-mode override to a normalized leader number.
func (n NotifyConfig) LeaderPhone(normalized string) string {
	if n.TestMode {
		return n.OperatorPhone
	}
	return normalized
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}
