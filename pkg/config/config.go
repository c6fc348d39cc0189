package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Environment    string        `mapstructure:"environment"`
	HTTPPort       string        `mapstructure:"http_port"`
	DatabaseURL    string        `mapstructure:"database_url"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	CORSOrigin     string        `mapstructure:"cors_origin"`
	LogLevel       string        `mapstructure:"log_level"`
	MetricsEnabled bool          `mapstructure:"metrics_enabled"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	Storage        StorageConfig `mapstructure:",squash"`
	EventsQueueURL string        `mapstructure:"events_queue_url"`
}

// StorageConfig holds object storage settings for photos.
type StorageConfig struct {
	Bucket    string `mapstructure:"storage_bucket"`
	Endpoint  string `mapstructure:"storage_endpoint"`
	PublicURL string `mapstructure:"storage_public_url"`
	Region    string `mapstructure:"storage_region"`
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

const (
	devSecret      = "dev-secret-change-me"
	devDatabaseURL = "sqlite://twogether.db"
)

// Load reads configuration. Environment variables use the upper-cased key names,
// for example DATABASE_URL or SESSION_TTL. TWOGETHER_CONFIG points at an optional file.
func Load() (Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	v := viper.New()

	// default values
	v.SetDefault("environment", "development")
	v.SetDefault("http_port", "8080")
	v.SetDefault("database_url", devDatabaseURL)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("session_ttl", "168h")
	v.SetDefault("cors_origin", "http://localhost:3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("max_upload_bytes", 10*1024*1024)
	v.SetDefault("storage_bucket", "photos")
	v.SetDefault("storage_endpoint", "")
	v.SetDefault("storage_public_url", "")
	v.SetDefault("storage_region", "us-east-1")
	v.SetDefault("events_queue_url", "")

	if path := os.Getenv("TWOGETHER_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// PORT is what most hosting platforms set.
	_ = v.BindEnv("http_port", "HTTP_PORT", "PORT")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		slog.Warn("JWT_SECRET not set, using an insecure development secret")
		c.JWTSecret = devSecret
	}
	if c.IsProduction() && c.DatabaseURL == devDatabaseURL {
		return errors.New("DATABASE_URL is required in production")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}
