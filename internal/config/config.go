// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Mario263/OG-Tool/internal/crawler"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// CrawlerConfig governs crawl session defaults and fetch behavior.
type CrawlerConfig struct {
	UserAgent       string   `mapstructure:"user_agent"`
	TimeoutSeconds  int      `mapstructure:"timeout_seconds"`
	DelayMs         int      `mapstructure:"delay_ms"`
	MaxPagesDefault int      `mapstructure:"max_pages_default"`
	MaxDepthDefault int      `mapstructure:"max_depth_default"`
	RespectRobots   bool     `mapstructure:"respect_robots"`
	ProxyEndpoints  []string `mapstructure:"proxy_endpoints"`
}

// ExportConfig sets where the crawl CLI writes result files.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk and environment. Environment variables use
// the OGTOOL_ prefix with underscores (OGTOOL_SERVER_PORT and so on).
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("OGTOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 300)
	v.SetDefault("crawler.user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("crawler.timeout_seconds", 15)
	v.SetDefault("crawler.delay_ms", 1000)
	v.SetDefault("crawler.max_pages_default", 25)
	v.SetDefault("crawler.max_depth_default", 3)
	v.SetDefault("crawler.respect_robots", true)
	v.SetDefault("crawler.proxy_endpoints", []string{
		"https://api.allorigins.win/raw?url=",
		"https://corsproxy.io/?",
	})
	v.SetDefault("export.dir", "out")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("server.timeout_seconds must be > 0")
	}
	if c.Crawler.TimeoutSeconds <= 0 {
		return fmt.Errorf("crawler.timeout_seconds must be > 0")
	}
	if c.Crawler.MaxPagesDefault <= 0 || c.Crawler.MaxPagesDefault > crawler.HardMaxPages {
		return fmt.Errorf("crawler.max_pages_default must be in 1..%d", crawler.HardMaxPages)
	}
	if c.Crawler.MaxDepthDefault <= 0 {
		return fmt.Errorf("crawler.max_depth_default must be > 0")
	}
	if c.Crawler.UserAgent == "" {
		return fmt.Errorf("crawler.user_agent must be set")
	}
	return nil
}

// SessionConfig merges a requested crawl config with service defaults and
// clamps it to the hard limits.
func (c Config) SessionConfig(req crawler.Config) crawler.Config {
	out := req
	if out.MaxPages <= 0 {
		out.MaxPages = c.Crawler.MaxPagesDefault
	}
	if out.MaxPages > crawler.HardMaxPages {
		out.MaxPages = crawler.HardMaxPages
	}
	if out.MaxDepth <= 0 {
		out.MaxDepth = c.Crawler.MaxDepthDefault
	}
	if out.Delay <= 0 {
		out.Delay = time.Duration(c.Crawler.DelayMs) * time.Millisecond
	}
	out.UserAgent = c.Crawler.UserAgent
	out.RequestTimeout = time.Duration(c.Crawler.TimeoutSeconds) * time.Second
	out.ProxyEndpoints = append([]string(nil), c.Crawler.ProxyEndpoints...)
	return out
}
