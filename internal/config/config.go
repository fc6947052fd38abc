package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Auction  AuctionConfig  `mapstructure:"auction"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Scout    ScoutConfig    `mapstructure:"scout"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AuctionConfig holds the bidding and qualification policy
type AuctionConfig struct {
	OpeningBid    int    `mapstructure:"opening_bid"`
	BidIncrement  int    `mapstructure:"bid_increment"`
	MinSquadSize  int    `mapstructure:"min_squad_size"`
	KeeperPattern string `mapstructure:"keeper_pattern"`
}

// FeedConfig holds athlete-feed oracle configuration
type FeedConfig struct {
	APIBaseURL     string        `mapstructure:"api_base_url"`
	Season         string        `mapstructure:"season"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// ScoutConfig holds scouting-report oracle configuration
type ScoutConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	APIBaseURL string        `mapstructure:"api_base_url"`
	Model      string        `mapstructure:"model"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// TelegramConfig holds Telegram announcement configuration
type TelegramConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("AUCTIONHALL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Auction defaults: the lot opens at a fixed floor regardless of base
	// price, and every challenge raises the bid by the increment.
	v.SetDefault("auction.opening_bid", 50)
	v.SetDefault("auction.bid_increment", 50)
	v.SetDefault("auction.min_squad_size", 11)
	v.SetDefault("auction.keeper_pattern", "wk")

	// Feed defaults
	v.SetDefault("feed.api_base_url", "https://feed.madrasbay.dev")
	v.SetDefault("feed.season", "2026")
	v.SetDefault("feed.timeout", "30s")
	v.SetDefault("feed.max_retries", 3)
	v.SetDefault("feed.retry_delay_base", "1s")

	// Scout defaults
	v.SetDefault("scout.enabled", true)
	v.SetDefault("scout.api_base_url", "https://scout.madrasbay.dev")
	v.SetDefault("scout.model", "scout-flash")
	v.SetDefault("scout.timeout", "20s")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Storage defaults
	v.SetDefault("storage.data_dir", "./data")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Auction.OpeningBid < 0 {
		return fmt.Errorf("auction.opening_bid must not be negative")
	}
	if c.Auction.BidIncrement < 1 {
		return fmt.Errorf("auction.bid_increment must be at least 1")
	}
	if c.Auction.MinSquadSize < 1 {
		return fmt.Errorf("auction.min_squad_size must be at least 1")
	}
	if c.Auction.KeeperPattern == "" {
		return fmt.Errorf("auction.keeper_pattern is required")
	}

	if c.Feed.APIBaseURL == "" {
		return fmt.Errorf("feed.api_base_url is required")
	}
	if c.Feed.Season == "" {
		return fmt.Errorf("feed.season is required")
	}
	if c.Feed.Timeout < 1*time.Second {
		return fmt.Errorf("feed.timeout must be at least 1 second")
	}

	if c.Scout.Enabled {
		if c.Scout.APIBaseURL == "" {
			return fmt.Errorf("scout.api_base_url is required when scout is enabled")
		}
		if c.Scout.Model == "" {
			return fmt.Errorf("scout.model is required when scout is enabled")
		}
		if c.Scout.Timeout < 1*time.Second {
			return fmt.Errorf("scout.timeout must be at least 1 second")
		}
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
