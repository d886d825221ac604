package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Market     MarketConfig     `yaml:"market"`
	Store      StoreConfig      `yaml:"store"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // "console" or "json"
	File     string `yaml:"file"`     // optional rotating file sink, empty disables
}

type MarketConfig struct {
	Workbook    string `yaml:"workbook"`
	Sheet       string `yaml:"sheet"`
	FallbackCSV string `yaml:"fallback_csv"`
	CacheTTLMs  int    `yaml:"cache_ttl_ms"`
}

type StoreConfig struct {
	Sqlite SqliteConfig `yaml:"sqlite"`
}

type SqliteConfig struct {
	Path string `yaml:"path"`
}

type MonitoringConfig struct {
	Port int `yaml:"port"`
}

func Load(path string) (*Config, error) {
	cfg := Config{
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "info", Encoding: "console"},
		Market: MarketConfig{
			Workbook:    "Live_DAP.xlsx",
			Sheet:       "DAP_Main",
			FallbackCSV: "Live_DAP.xlsx - DAP_Main.csv",
			CacheTTLMs:  2000,
		},
		Store: StoreConfig{
			Sqlite: SqliteConfig{Path: "data/dashboard.db"},
		},
		Monitoring: MonitoringConfig{Port: 9090},
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// no config file is fine, defaults + env cover it
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Server.Port = p
	}
	if v := os.Getenv("MONITORING_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return fmt.Errorf("invalid MONITORING_PORT: %q", v)
		}
		cfg.Monitoring.Port = p
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WORKBOOK_PATH"); v != "" {
		cfg.Market.Workbook = v
	}
	if v := os.Getenv("WORKBOOK_SHEET"); v != "" {
		cfg.Market.Sheet = v
	}
	if v := os.Getenv("FALLBACK_CSV"); v != "" {
		cfg.Market.FallbackCSV = v
	}
	if v := os.Getenv("CACHE_TTL_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return fmt.Errorf("invalid CACHE_TTL_MS: %q", v)
		}
		cfg.Market.CacheTTLMs = ms
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Store.Sqlite.Path = v
	}
	return nil
}
