package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/madrasbay/auctionhall/internal/auction"
	"github.com/madrasbay/auctionhall/internal/config"
	"github.com/madrasbay/auctionhall/internal/feed"
	"github.com/madrasbay/auctionhall/internal/logger"
	"github.com/madrasbay/auctionhall/internal/qualify"
	"github.com/madrasbay/auctionhall/internal/scout"
	"github.com/madrasbay/auctionhall/internal/seed"
	"github.com/madrasbay/auctionhall/internal/settle"
	"github.com/madrasbay/auctionhall/internal/storage"
	"github.com/madrasbay/auctionhall/internal/telegram"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	// Load the durable records, seeding any record that is missing or
	// malformed. A damaged file costs at most one auction's state, never a
	// crash at startup.
	store := storage.New(cfg.Storage.DataDir)
	for _, fallback := range store.Load(seed.Athletes(), seed.Franchises()) {
		logger.Warn("Storage: %v", fallback)
	}
	if err := settle.CheckConsistency(store.Snapshot(), seed.Franchises()); err != nil {
		logger.Warn("Loaded state failed consistency check, reseeding: %v", err)
		store.Commit(settle.State{Athletes: seed.Athletes(), Franchises: seed.Franchises()})
	}

	feedClient := feed.NewClient(cfg.Feed.APIBaseURL, cfg.Feed.Season, cfg.Feed.Timeout, feed.ClientConfig{
		MaxRetries:     cfg.Feed.MaxRetries,
		RetryDelayBase: cfg.Feed.RetryDelayBase,
	})

	var scoutClient *scout.Client
	if cfg.Scout.Enabled {
		scoutClient = scout.NewClient(cfg.Scout.APIBaseURL, cfg.Scout.Model, cfg.Scout.Timeout)
	} else {
		logger.Debug("Scouting reports disabled")
	}

	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		telegramClient, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
			cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		logger.Info("Telegram announcer initialized")
	} else {
		logger.Debug("Telegram announcements disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	c := &console{
		cfg:       cfg,
		store:     store,
		session:   auction.New(cfg.Auction.OpeningBid, cfg.Auction.BidIncrement),
		evaluator: qualify.New(cfg.Auction.KeeperPattern, cfg.Auction.MinSquadSize),
		feed:      feedClient,
		scout:     scoutClient,
		telegram:  telegramClient,
		out:       os.Stdout,
	}

	logger.Info("Auction hall open: %d athletes, %d franchises (opening bid %d, increment %d)",
		len(store.Athletes()), len(store.Franchises()), cfg.Auction.OpeningBid, cfg.Auction.BidIncrement)

	c.run(ctx, os.Stdin)

	if err := store.Save(); err != nil {
		logger.Error("Final save failed: %v", err)
	}
	logger.Info("Auction hall closed")
}
