package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	marketplace "github.com/Mateiul123/Blockchainworkapp/internal/marketplace"
	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/config"
	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/ledger"
	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/repository"
	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/sweeper"
	"github.com/Mateiul123/Blockchainworkapp/pkg/content"
	"github.com/Mateiul123/Blockchainworkapp/pkg/database"
	"github.com/Mateiul123/Blockchainworkapp/pkg/events"
	"github.com/Mateiul123/Blockchainworkapp/pkg/logging"
)

func main() {
	if err := config.Init(); err != nil {
		panic(fmt.Sprintf("Failed to initialize config: %v", err))
	}

	logger, err := logging.NewZapLogger(logging.LoggerConfig{
		ProcessName:   logging.MarketplaceProcess,
		IsDevelopment: config.IsDevMode(),
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	logger.Info("Starting marketplace server...",
		"dev_mode", config.IsDevMode(),
		"port", config.GetMarketplaceRPCPort(),
		"treasury", config.GetTreasuryAddress().Hex(),
	)

	bus := events.NewBus()
	taskLedger := ledger.New(config.GetTreasuryAddress(), bus, logger)

	if url := config.GetNotifyWebhookURL(); url != "" {
		bus.Register(events.NewWebhookSink(url, config.GetNotifyWebhookToken(), logger))
		logger.Infof("Webhook notifications enabled: %s", url)
	}

	if config.IsArchiveEnabled() {
		dbConfig := database.NewConfig(config.GetDatabaseHostAddress(), config.GetDatabaseHostPort())
		db, err := database.NewConnection(dbConfig, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to ScyllaDB: %v", err)
		}
		defer db.Close()

		if err := repository.EnsureSchema(db); err != nil {
			logger.Fatalf("Failed to apply archive schema: %v", err)
		}
		bus.Register(repository.NewArchiver(db, taskLedger, logger))
		logger.Infof("Durable archive enabled: %s", config.GetDatabaseHostAddress())
	}

	resolver := content.NewClient(config.GetIPFSAPIAddress())

	deadlineSweeper := sweeper.New(taskLedger, config.GetSweepInterval(), logger)
	if err := deadlineSweeper.Start(); err != nil {
		logger.Fatalf("Failed to start deadline sweeper: %v", err)
	}
	defer deadlineSweeper.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := marketplace.NewServer(taskLedger, resolver, logger)
	if err := server.Start(ctx, config.GetMarketplaceRPCPort()); err != nil {
		logger.Errorf("Server exited with error: %v", err)
		os.Exit(1)
	}
}
