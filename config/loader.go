package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadAppConfig loads and validates the application configuration from
// the given YAML file, filling in defaults for unset fields.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}

	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.GTFS.AccessFile == "" && cfg.GTFS.Dir != "" {
		cfg.GTFS.AccessFile = filepath.Join(cfg.GTFS.Dir, "access.csv")
	}
	if cfg.Realtime.RefreshIntervalMS == 0 {
		cfg.Realtime.RefreshIntervalMS = 30000
	}
	if cfg.Realtime.TimeoutMS == 0 {
		cfg.Realtime.TimeoutMS = 10000
	}
	if cfg.Departures.DefaultWindowMinutes == 0 {
		cfg.Departures.DefaultWindowMinutes = 60
	}
	if cfg.Departures.MaxWindowMinutes == 0 {
		cfg.Departures.MaxWindowMinutes = 24 * 60
	}
	if cfg.Comments.File == "" {
		cfg.Comments.File = "data/comments.json"
	}
	if cfg.Comments.MaxPerLine == 0 {
		cfg.Comments.MaxPerLine = 10
	}
}
