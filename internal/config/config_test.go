package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Redis:  RedisConfig{Host: "localhost", Port: "6379"},
		Storefront: StorefrontConfig{
			FixedUnitPrice: 15,
			CartTTL:        24 * time.Hour,
		},
		Telegram: TelegramConfig{
			BotToken: "123:abc",
			ChatID:   "-1001234567890",
			BaseURL:  "https://api.telegram.org",
		},
		AppsScript: AppsScriptConfig{
			BaseURL:        "https://script.example.com/exec",
			Token:          "secret",
			CheckoutAction: "checkout_internet",
		},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateFailsFastOnMissingSecrets(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"telegram bot token", func(c *Config) { c.Telegram.BotToken = "" }},
		{"telegram chat id", func(c *Config) { c.Telegram.ChatID = "" }},
		{"apps script base url", func(c *Config) { c.AppsScript.BaseURL = "" }},
		{"apps script token", func(c *Config) { c.AppsScript.Token = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigurationMissing)
		})
	}
}

func TestValidateRejectsNonPositiveUnitPrice(t *testing.T) {
	cfg := validConfig()
	cfg.Storefront.FixedUnitPrice = 0
	assert.Error(t, cfg.Validate())
}
