package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `json:"server"`
	Sources SourcesConfig `json:"sources"`
	Cache   CacheConfig   `json:"cache"`
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// SourcesConfig points at the remote data sources: the static BlockEdge
// project catalog and the CO2e chain explorer API.
type SourcesConfig struct {
	AssetURL       string        `json:"asset_url"`
	ExplorerAPIURL string        `json:"explorer_api_url"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

// CacheConfig carries the per-concern TTLs. Project supply figures move on
// every trade, certificate images almost never, network stats in between.
type CacheConfig struct {
	ProjectsTTL    time.Duration `json:"projects_ttl"`
	NFTMetadataTTL time.Duration `json:"nft_metadata_ttl"`
	StatsTTL       time.Duration `json:"stats_ttl"`
}

// LoggingConfig selects the log verbosity; "debug" switches the process to a
// development logger.
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Sources: SourcesConfig{
			AssetURL:       "https://asset.blockedge.co/blockedge-co2e-project.json",
			ExplorerAPIURL: "https://exp.co2e.cc/api/v2",
			RequestTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			ProjectsTTL:    5 * time.Minute,
			NFTMetadataTTL: 30 * time.Minute,
			StatsTTL:       2 * time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if assetURL := os.Getenv("CO2E_ASSET_URL"); assetURL != "" {
		config.Sources.AssetURL = assetURL
	}
	if apiURL := os.Getenv("CO2E_API_BASE_URL"); apiURL != "" {
		config.Sources.ExplorerAPIURL = apiURL
	}
	if ttl := parseDurationEnv("PROJECTS_CACHE_TTL"); ttl > 0 {
		config.Cache.ProjectsTTL = ttl
	}
	if ttl := parseDurationEnv("NFT_METADATA_CACHE_TTL"); ttl > 0 {
		config.Cache.NFTMetadataTTL = ttl
	}
	if ttl := parseDurationEnv("STATS_CACHE_TTL"); ttl > 0 {
		config.Cache.StatsTTL = ttl
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

func parseDurationEnv(name string) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
