package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads lifefinder.yaml (working dir, ./configs, or the user config
// dir), merges LIFEFINDER_* environment overrides and a .env file if one
// exists, and applies defaults. A missing config file is fine; everything
// has a default or can come from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("lifefinder")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "lifefinder"))
	}

	v.SetEnvPrefix("LIFEFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "lifegroups.csv"
	}
	if cfg.Catalog.CacheTTLSecs == 0 {
		cfg.Catalog.CacheTTLSecs = 600
	}

	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://nominatim.openstreetmap.org/search"
	}
	if cfg.Geocoder.CityHint == "" {
		cfg.Geocoder.CityHint = "São Paulo"
	}
	if cfg.Geocoder.CountryHint == "" {
		cfg.Geocoder.CountryHint = "Brasil"
	}
	if cfg.Geocoder.TimeoutSecs == 0 {
		cfg.Geocoder.TimeoutSecs = 10
	}
	if cfg.Geocoder.CachePath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.Geocoder.CachePath = filepath.Join(dir, "lifefinder", "geocache.db")
		}
	}

	if cfg.Notify.TimeoutSecs == 0 {
		cfg.Notify.TimeoutSecs = 15
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "."
	}
}

func validate(cfg *Config) error {
	if cfg.Notify.TestMode && cfg.Notify.OperatorPhone == "" {
		return fmt.Errorf("notify.test_mode requires notify.operator_phone")
	}
	if cfg.Catalog.CacheTTLSecs < 0 {
		return fmt.Errorf("catalog.cache_ttl must not be negative")
	}
	return nil
}
