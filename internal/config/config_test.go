package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAndValidate(t *testing.T) {
	// Create temp config file
	content := `
auction:
  opening_bid: 50
  bid_increment: 50
  min_squad_size: 11
  keeper_pattern: "wk"

feed:
  api_base_url: "https://feed.example.com"
  season: "2026"
  timeout: 30s
  max_retries: 3
  retry_delay_base: 1s

scout:
  enabled: true
  api_base_url: "https://scout.example.com"
  model: "scout-flash"
  timeout: 20s

telegram:
  bot_token: "test_token"
  chat_id: "test_chat_id"
  enabled: true

storage:
  data_dir: "./data"

logging:
  level: "info"
  format: "text"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test Load
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify values
	if cfg.Auction.OpeningBid != 50 {
		t.Errorf("Unexpected opening bid: %d", cfg.Auction.OpeningBid)
	}

	if cfg.Feed.APIBaseURL != "https://feed.example.com" {
		t.Errorf("Unexpected API URL: %s", cfg.Feed.APIBaseURL)
	}

	if cfg.Feed.Timeout != 30*time.Second {
		t.Errorf("Unexpected feed timeout: %s", cfg.Feed.Timeout)
	}

	if cfg.Scout.Model != "scout-flash" {
		t.Errorf("Unexpected scout model: %s", cfg.Scout.Model)
	}

	// Test Validate
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Minimal file: everything else should come from defaults.
	content := `
telegram:
  enabled: false
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Auction.OpeningBid != 50 || cfg.Auction.BidIncrement != 50 {
		t.Errorf("Unexpected bidding defaults: %d/%d", cfg.Auction.OpeningBid, cfg.Auction.BidIncrement)
	}
	if cfg.Auction.MinSquadSize != 11 || cfg.Auction.KeeperPattern != "wk" {
		t.Errorf("Unexpected qualification defaults: %d/%q", cfg.Auction.MinSquadSize, cfg.Auction.KeeperPattern)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Unexpected logging defaults: %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Defaults should validate: %v", err)
	}
}

func validConfig() *Config {
	return &Config{
		Auction: AuctionConfig{
			OpeningBid:    50,
			BidIncrement:  50,
			MinSquadSize:  11,
			KeeperPattern: "wk",
		},
		Feed: FeedConfig{
			APIBaseURL: "https://feed.example.com",
			Season:     "2026",
			Timeout:    30 * time.Second,
		},
		Scout: ScoutConfig{
			Enabled:    true,
			APIBaseURL: "https://scout.example.com",
			Model:      "scout-flash",
			Timeout:    20 * time.Second,
		},
		Storage: StorageConfig{
			DataDir: "./data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero bid increment",
			mutate:  func(c *Config) { c.Auction.BidIncrement = 0 },
			wantErr: true,
		},
		{
			name:    "empty keeper pattern",
			mutate:  func(c *Config) { c.Auction.KeeperPattern = "" },
			wantErr: true,
		},
		{
			name:    "missing feed season",
			mutate:  func(c *Config) { c.Feed.Season = "" },
			wantErr: true,
		},
		{
			name:    "missing scout model when enabled",
			mutate:  func(c *Config) { c.Scout.Model = "" },
			wantErr: true,
		},
		{
			name: "missing scout model when disabled",
			mutate: func(c *Config) {
				c.Scout.Enabled = false
				c.Scout.Model = ""
			},
			wantErr: false,
		},
		{
			name: "missing telegram token when enabled",
			mutate: func(c *Config) {
				c.Telegram.Enabled = true
				c.Telegram.ChatID = "test_chat_id"
			},
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
