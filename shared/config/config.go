package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/dfryer1193/gallery/shared/db/sqlite"
	"gopkg.in/yaml.v3"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config holds server settings. Values come from defaults, then an optional YAML file, then the environment.
type Config struct {
	Addr         string `yaml:"addr" env:"GALLERY_ADDR"`
	DataFile     string `yaml:"data_file" env:"GALLERY_DATA_FILE"`
	UploadsDir   string `yaml:"uploads_dir" env:"GALLERY_UPLOADS_DIR"`
	UploadsURL   string `yaml:"uploads_url" env:"GALLERY_UPLOADS_URL"`
	StaticDir    string `yaml:"static_dir" env:"GALLERY_STATIC_DIR"`
	Store        string `yaml:"store" env:"GALLERY_STORE"`
	SQLitePath   string `yaml:"sqlite_path" env:"SQLITE_DB_PATH"`
	Location     string `yaml:"location" env:"GALLERY_LOCATION"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" env:"GALLERY_MAX_BODY_BYTES"`
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat    string `yaml:"log_format" env:"LOG_FORMAT"`
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		Addr:         ":3000",
		DataFile:     "./data/galleryData.json",
		UploadsDir:   "./uploads",
		UploadsURL:   "/uploads",
		Store:        StoreJSON,
		SQLitePath:   sqlite.DefaultPath,
		Location:     domain.DefaultLocation,
		MaxBodyBytes: 50 << 20,
		LogLevel:     "info",
		LogFormat:    "json",
	}
}

// Load builds the configuration. An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// PORT is what most hosting platforms set
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GALLERY_ADDR") == "" {
		cfg.Addr = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Store != StoreJSON && c.Store != StoreSQLite {
		return fmt.Errorf("unknown store %q, want %q or %q", c.Store, StoreJSON, StoreSQLite)
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive")
	}

	if c.UploadsDir == "" {
		return fmt.Errorf("uploads_dir cannot be empty")
	}

	if c.Store == StoreJSON && c.DataFile == "" {
		return fmt.Errorf("data_file cannot be empty")
	}

	return nil
}
