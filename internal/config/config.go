package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName        string `mapstructure:"app_name"`
	Env            string `mapstructure:"app_env"`
	LogLevel       string `mapstructure:"log_level"`
	ProvidersFile  string `mapstructure:"providers_file"`
	PublishersFile string `mapstructure:"publishers_file"`

	CurrentsAPIKey   string `mapstructure:"currents_api_key" json:"-"`
	MediastackAPIKey string `mapstructure:"mediastack_api_key" json:"-"`
	NewsAPIKey       string `mapstructure:"newsapi_api_key" json:"-"`

	RequestTimeoutSeconds  int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout         time.Duration `mapstructure:"-"`
	RefreshIntervalSeconds int64         `mapstructure:"refresh_interval"`
	RefreshInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	SessionTTLSeconds      int64         `mapstructure:"session_ttl_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
	SessionTTL             time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "samvad-tech-digest")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("providers_file", "")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("currents_api_key", "")
	v.SetDefault("mediastack_api_key", "")
	v.SetDefault("newsapi_api_key", "")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("refresh_interval", 900) // seconds
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/digest.db")
	v.SetDefault("storage_ttl_seconds", int64((2*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((6*time.Hour)/time.Second))
	v.SetDefault("session_ttl_seconds", int64((24*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.resolveDurations(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolveDurations() error {
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	if c.RefreshIntervalSeconds <= 0 {
		return fmt.Errorf("invalid refresh_interval (must be positive seconds)")
	}
	if c.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if c.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	if c.SessionTTLSeconds <= 0 {
		return fmt.Errorf("invalid session_ttl_seconds (must be positive seconds)")
	}

	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	c.RefreshInterval = time.Duration(c.RefreshIntervalSeconds) * time.Second
	c.StorageTTL = time.Duration(c.StorageTTLSeconds) * time.Second
	c.StorageCleanupInterval = time.Duration(c.StorageCleanupSeconds) * time.Second
	c.SessionTTL = time.Duration(c.SessionTTLSeconds) * time.Second
	return nil
}

// Credentials returns the provider API keys.
func (c *Config) Credentials() domain.Credentials {
	if c == nil {
		return domain.Credentials{}
	}
	return domain.Credentials{
		Currents:   c.CurrentsAPIKey,
		Mediastack: c.MediastackAPIKey,
		NewsAPI:    c.NewsAPIKey,
	}
}
