package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName    string `mapstructure:"app_name"`
	Env        string `mapstructure:"app_env"`
	LogLevel   string `mapstructure:"log_level"`
	LogOutput  string `mapstructure:"log_output"`
	TUILogFile string `mapstructure:"tui_log_file"`

	EndpointsFile  string `mapstructure:"endpoints_file"`
	PublishersFile string `mapstructure:"publishers_file"`

	HTTPClient              string        `mapstructure:"http_client"`
	UserAgent               string        `mapstructure:"user_agent"`
	RequestTimeoutSeconds   int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout          time.Duration `mapstructure:"-"`
	DisplayCap              int           `mapstructure:"display_cap"`
	KeepContentWhileLoading bool          `mapstructure:"keep_content_while_loading"`

	StorageType           string        `mapstructure:"storage_type"`
	BBoltPath             string        `mapstructure:"bbolt_path"`
	HistoryTTLSeconds     int64         `mapstructure:"history_ttl_seconds"`
	HistoryCleanupSeconds int64         `mapstructure:"history_cleanup_interval_seconds"`
	HistoryTTL            time.Duration `mapstructure:"-"`
	HistoryCleanup        time.Duration `mapstructure:"-"`

	ListenAddr string `mapstructure:"listen_addr"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "fetchview")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_output", "stderr")
	v.SetDefault("tui_log_file", "./data/tui.log")
	v.SetDefault("endpoints_file", "./configs/endpoints.yaml")
	v.SetDefault("publishers_file", "")
	v.SetDefault("http_client", "resty")
	v.SetDefault("user_agent", "fetchview/1.0")
	v.SetDefault("request_timeout_seconds", 10)
	v.SetDefault("display_cap", 10)
	v.SetDefault("keep_content_while_loading", false)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/history.db")
	v.SetDefault("history_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("history_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("listen_addr", ":3000")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize validates raw values and derives durations.
func (c *Config) finalize() error {
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second

	if c.DisplayCap <= 0 {
		return fmt.Errorf("invalid display_cap (must be positive)")
	}

	c.HTTPClient = strings.ToLower(strings.TrimSpace(c.HTTPClient))
	switch c.HTTPClient {
	case "", "resty", "requests":
	default:
		return fmt.Errorf("unsupported http_client %q (expected resty or requests)", c.HTTPClient)
	}

	if c.HistoryTTLSeconds <= 0 {
		return fmt.Errorf("invalid history_ttl_seconds (must be positive seconds)")
	}
	if c.HistoryCleanupSeconds <= 0 {
		return fmt.Errorf("invalid history_cleanup_interval_seconds (must be positive seconds)")
	}
	c.HistoryTTL = time.Duration(c.HistoryTTLSeconds) * time.Second
	c.HistoryCleanup = time.Duration(c.HistoryCleanupSeconds) * time.Second

	return nil
}
