// Package config provides configuration loading and structs for the ShikshaSetu server and client.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
	Catalog CatalogConfig `yaml:"catalog"`
	Client  ClientConfig  `yaml:"client"`
}

// ServerConfig holds HTTP server settings. When APIKeys is empty,
// authentication is disabled and every request passes through.
type ServerConfig struct {
	Host    string   `yaml:"host"`
	Port    int      `yaml:"port"`
	APIKeys []string `yaml:"api_keys"`
}

// StorageConfig holds paths for the catalog database and keyword index.
type StorageConfig struct {
	DatabasePath   string `yaml:"database_path"`
	BleveIndexPath string `yaml:"bleve_index_path"`
}

// SearchConfig holds relevance weighting and limits for the search engine.
// The field boosts mirror the catalog's relevance rule: a title match counts
// five times a plain match, keywords three times, content twice.
type SearchConfig struct {
	MaxResults     int     `yaml:"max_results"`
	TopKCandidates int     `yaml:"top_k_candidates"`
	TitleBoost     float64 `yaml:"title_boost"`
	KeywordsBoost  float64 `yaml:"keywords_boost"`
	ContentBoost   float64 `yaml:"content_boost"`
	MinScore       float64 `yaml:"min_score"`
	PreviewLength  int     `yaml:"preview_length"`
}

// CatalogConfig holds the fixed-catalog seed file settings.
type CatalogConfig struct {
	SeedPath string `yaml:"seed_path"`
	Watch    bool   `yaml:"watch"`
}

// ClientConfig holds settings for the search client CLI.
type ClientConfig struct {
	ServerURL      string `yaml:"server_url"`
	APIKey         string `yaml:"api_key"`
	DownloadDir    string `yaml:"download_dir"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads and parses the config file at path, applies .env and
// environment overrides, expands paths, and fills in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnv(&cfg)
	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.BleveIndexPath = expandPath(cfg.Storage.BleveIndexPath, configDir)
	if cfg.Catalog.SeedPath != "" {
		cfg.Catalog.SeedPath = expandPath(cfg.Catalog.SeedPath, configDir)
	}
	if cfg.Client.DownloadDir != "" {
		cfg.Client.DownloadDir = expandPath(cfg.Client.DownloadDir, configDir)
	}

	return &cfg, nil
}

// Default returns a config with defaults and environment overrides applied,
// for commands that run without a config file.
func Default() *Config {
	var cfg Config
	applyEnv(&cfg)
	ApplyDefaults(&cfg)
	return &cfg
}

// applyEnv loads a .env file when present and overlays SHIKSHA_* variables.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()
	if v := os.Getenv("SHIKSHA_SERVER_URL"); v != "" {
		cfg.Client.ServerURL = v
	}
	if v := os.Getenv("SHIKSHA_API_KEY"); v != "" {
		cfg.Client.APIKey = v
	}
	if v := os.Getenv("SHIKSHA_SERVER_API_KEYS"); v != "" {
		cfg.Server.APIKeys = splitKeys(v)
	}
}

func splitKeys(s string) []string {
	parts := strings.Split(s, ",")
	keys := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
