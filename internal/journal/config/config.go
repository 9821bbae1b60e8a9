package config

import (
	"time"

	"golang-crypto-journal/pkg/common"
	"golang-crypto-journal/pkg/config"
)

// Journal holds journal-specific configuration.
type Journal struct {
	// RefreshSpec is the cron spec of the holding price refresh.
	RefreshSpec    string        `mapstructure:"refresh_spec"`
	RefreshTimeout time.Duration `mapstructure:"refresh_timeout"`
	ReportTimeout  time.Duration `mapstructure:"report_timeout"`
}

// CoinGecko holds the configuration for the CoinGecko markets API.
type CoinGecko struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	VsCurrency          string        `mapstructure:"vs_currency"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MarketListSize      int           `mapstructure:"market_list_size"`
	MarketCacheDuration time.Duration `mapstructure:"market_cache_duration"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
	Language            string `mapstructure:"language"`
}

// Telegram holds configuration for the Telegram report delivery.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the journal service.
type Config struct {
	App       config.App    `mapstructure:"app"`
	Logger    config.Logger `mapstructure:"logger"`
	Redis     config.Redis  `mapstructure:"redis"`
	API       config.API    `mapstructure:"api"`
	Journal   Journal       `mapstructure:"journal"`
	CoinGecko CoinGecko     `mapstructure:"coingecko"`
	Gemini    Gemini        `mapstructure:"gemini"`
	Telegram  Telegram      `mapstructure:"telegram"`
}

// Load loads the journal configuration from the given path and fills in
// defaults for values left empty.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "crypto-journal"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Journal.RefreshSpec == "" {
		c.Journal.RefreshSpec = common.PriceRefreshSpec
	}
	if c.Journal.RefreshTimeout == 0 {
		c.Journal.RefreshTimeout = 30 * time.Second
	}
	if c.Journal.ReportTimeout == 0 {
		c.Journal.ReportTimeout = 90 * time.Second
	}
	if c.CoinGecko.BaseURL == "" {
		c.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.CoinGecko.VsCurrency == "" {
		c.CoinGecko.VsCurrency = "usd"
	}
	if c.CoinGecko.MaxRequestPerMinute == 0 {
		c.CoinGecko.MaxRequestPerMinute = 25
	}
	if c.CoinGecko.MarketListSize == 0 {
		c.CoinGecko.MarketListSize = 250
	}
	if c.CoinGecko.MarketCacheDuration == 0 {
		c.CoinGecko.MarketCacheDuration = 10 * time.Minute
	}
	if c.CoinGecko.Timeout == 0 {
		c.CoinGecko.Timeout = 10 * time.Second
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.MaxRequestPerMinute == 0 {
		c.Gemini.MaxRequestPerMinute = 10
	}
	if c.Gemini.MaxTokenPerMinute == 0 {
		c.Gemini.MaxTokenPerMinute = 250000
	}
	if c.Gemini.Language == "" {
		c.Gemini.Language = "English"
	}
}
