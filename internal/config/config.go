// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrConfigurationMissing marks a required secret or endpoint that was absent
// at startup. The process must refuse to start rather than fall back to a
// baked-in default.
var ErrConfigurationMissing = errors.New("configuration missing")

// Config holds all configuration for our application
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Redis      RedisConfig
	Security   SecurityConfig
	Storefront StorefrontConfig
	Telegram   TelegramConfig
	AppsScript AppsScriptConfig
	Checkout   CheckoutConfig
	Logging    LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	RateLimitBurst     int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// StorefrontConfig contains catalog aggregation configuration
type StorefrontConfig struct {
	LocalSnapshotPath string
	ImageIndexURL     string
	RefreshURL        string
	FixedUnitPrice    int
	Currency          string
	CartTTL           time.Duration
}

// TelegramConfig contains Telegram Bot API configuration. BotToken and ChatID
// carry no defaults: a missing value aborts startup instead of silently
// posting orders nowhere.
type TelegramConfig struct {
	BotToken string
	ChatID   string
	ThreadID string
	BaseURL  string
}

// AppsScriptConfig contains the spreadsheet-backed catalog/ledger endpoint
// configuration. BaseURL and Token are required secrets without fallback.
type AppsScriptConfig struct {
	BaseURL        string
	Token          string
	CheckoutAction string
}

// CheckoutConfig contains checkout pipeline configuration
type CheckoutConfig struct {
	CCEmails       []string
	RequestTimeout time.Duration
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront Backend"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 50),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Storefront: StorefrontConfig{
			LocalSnapshotPath: getEnv("STOREFRONT_LOCAL_PATH", "data/storefront.json"),
			ImageIndexURL:     getEnv("IMAGE_INDEX_URL", "https://api.github.com/repos/ailidmx/BertClient/contents/img/product"),
			RefreshURL:        getEnv("STOREFRONT_REFRESH_URL", ""),
			FixedUnitPrice:    getEnvAsInt("FIXED_UNIT_PRICE", 15),
			Currency:          getEnv("CURRENCY", "MXN"),
			CartTTL:           getEnvAsDuration("CART_TTL", 24*time.Hour),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHECKOUT_CHAT_ID", ""),
			ThreadID: getEnv("TELEGRAM_CHECKOUT_THREAD_ID", ""),
			BaseURL:  getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
		},
		AppsScript: AppsScriptConfig{
			BaseURL:        getEnv("APPS_SCRIPT_BASE_URL", ""),
			Token:          getEnv("APPS_SCRIPT_TOKEN", ""),
			CheckoutAction: getEnv("APPS_SCRIPT_CHECKOUT_API", "checkout_internet"),
		},
		Checkout: CheckoutConfig{
			CCEmails:       getEnvAsSlice("CHECKOUT_CC_EMAILS", []string{}),
			RequestTimeout: getEnvAsDuration("CHECKOUT_REQUEST_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN is required", ErrConfigurationMissing)
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("%w: TELEGRAM_CHECKOUT_CHAT_ID is required", ErrConfigurationMissing)
	}
	if c.AppsScript.BaseURL == "" {
		return fmt.Errorf("%w: APPS_SCRIPT_BASE_URL is required", ErrConfigurationMissing)
	}
	if c.AppsScript.Token == "" {
		return fmt.Errorf("%w: APPS_SCRIPT_TOKEN is required", ErrConfigurationMissing)
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("%w: REDIS_HOST is required", ErrConfigurationMissing)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("%w: APP_PORT is required", ErrConfigurationMissing)
	}
	if c.Storefront.FixedUnitPrice <= 0 {
		return fmt.Errorf("FIXED_UNIT_PRICE must be positive")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
