package config

import (
	"fmt"
	"time"
)

// Config represents the complete configuration structure
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	QBittorrent QBittorrentConfig `mapstructure:"qbittorrent"`
	Filter      FilterConfig      `mapstructure:"filter"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds the inbound HTTP listener settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	BasePath        string        `mapstructure:"base_path"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// QBittorrentConfig holds the upstream WebUI connection details
type QBittorrentConfig struct {
	URL         string        `mapstructure:"url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	RateLimit   string        `mapstructure:"rate_limit"`
	Concurrency int           `mapstructure:"concurrency"`
}

// FilterConfig tunes the torrent filter expressions
type FilterConfig struct {
	CacheSize int `mapstructure:"cache_size"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	File   string `mapstructure:"file"`
}
