package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

type Config struct {
	devMode bool

	// Marketplace API port
	marketplaceRPCPort string

	// Address platform fees accrue to
	treasuryAddress string

	// ScyllaDB host and port for the durable archive
	databaseHostAddress string
	databaseHostPort    string
	archiveEnabled      bool

	// IPFS API endpoint for metadata resolution
	ipfsAPIAddress string

	// Notification webhook
	notifyWebhookURL   string
	notifyWebhookToken string

	// Deadline sweeper
	sweepInterval time.Duration
}

var cfg Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	cfg = Config{
		devMode:             getEnvBool("DEV_MODE", false),
		marketplaceRPCPort:  getEnvString("MARKETPLACE_RPC_PORT", "9015"),
		treasuryAddress:     getEnvString("TREASURY_ADDRESS", ""),
		databaseHostAddress: getEnvString("DATABASE_HOST_ADDRESS", ""),
		databaseHostPort:    getEnvString("DATABASE_HOST_PORT", "9042"),
		archiveEnabled:      getEnvBool("ARCHIVE_ENABLED", false),
		ipfsAPIAddress:      getEnvString("IPFS_API_ADDRESS", "localhost:5001"),
		notifyWebhookURL:    getEnvString("NOTIFY_WEBHOOK_URL", ""),
		notifyWebhookToken:  getEnvString("NOTIFY_WEBHOOK_TOKEN", ""),
		sweepInterval:       getEnvDuration("SWEEP_INTERVAL", 30*time.Second),
	}

	if !common.IsHexAddress(cfg.treasuryAddress) {
		return fmt.Errorf("TREASURY_ADDRESS is not a valid hex address: %q", cfg.treasuryAddress)
	}
	if cfg.archiveEnabled && cfg.databaseHostAddress == "" {
		return fmt.Errorf("ARCHIVE_ENABLED requires DATABASE_HOST_ADDRESS")
	}

	if !cfg.devMode {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}

func IsDevMode() bool {
	return cfg.devMode
}

func GetMarketplaceRPCPort() string {
	return cfg.marketplaceRPCPort
}

func GetTreasuryAddress() common.Address {
	return common.HexToAddress(cfg.treasuryAddress)
}

func GetDatabaseHostAddress() string {
	return cfg.databaseHostAddress
}

func GetDatabaseHostPort() string {
	return cfg.databaseHostPort
}

func IsArchiveEnabled() bool {
	return cfg.archiveEnabled
}

func GetIPFSAPIAddress() string {
	return cfg.ipfsAPIAddress
}

func GetNotifyWebhookURL() string {
	return cfg.notifyWebhookURL
}

func GetNotifyWebhookToken() string {
	return cfg.notifyWebhookToken
}

func GetSweepInterval() time.Duration {
	return cfg.sweepInterval
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return boolValue
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return duration
	}
	return defaultValue
}
