package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/qbitgate/qbittorrent"
)

// EnvPrefix prefixes every environment override, e.g. QBITGATE_QBITTORRENT_URL
const EnvPrefix = "QBITGATE"

// Load loads the configuration from file and environment. A missing config
// file is only an error when configPath names it explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".qbitgate"))
		}
		v.AddConfigPath("/etc/qbitgate/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.base_path", "/api/qbittorrent")
	v.SetDefault("server.shutdown_timeout", "10s")

	// qBittorrent defaults
	v.SetDefault("qbittorrent.url", "http://localhost:8080")
	v.SetDefault("qbittorrent.timeout", "30s")
	v.SetDefault("qbittorrent.rate_limit", "")
	v.SetDefault("qbittorrent.concurrency", 0)

	v.SetDefault("filter.cache_size", 64)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", "")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.QBittorrent.URL == "" {
		return fmt.Errorf("qbittorrent.url is required")
	}
	u, err := url.Parse(cfg.QBittorrent.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("qbittorrent.url must be an absolute URL: %q", cfg.QBittorrent.URL)
	}
	if cfg.QBittorrent.Timeout < 0 {
		return fmt.Errorf("qbittorrent.timeout must not be negative")
	}
	if cfg.QBittorrent.Concurrency < 0 {
		return fmt.Errorf("qbittorrent.concurrency must not be negative")
	}
	if _, err := qbittorrent.ParseRateLimit(cfg.QBittorrent.RateLimit); err != nil {
		return fmt.Errorf("qbittorrent.rate_limit: %w", err)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if cfg.Server.BasePath != "" && !strings.HasPrefix(cfg.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path must start with '/': %s", cfg.Server.BasePath)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
