package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// LRU Cache settings
	TideTableLRUSize       int
	TideTableLRUTTLMinutes int

	// DynamoDB Cache settings
	TideTableDynamoTTLDays int

	// S3 annual table cache settings
	AnnualTableTTLDays int

	// Batch processing settings
	BatchSize       int
	MaxBatchRetries int

	// General settings
	EnableLRUCache    bool
	EnableDynamoCache bool
}

const (
	// Default values
	defaultTideTableLRUSize    = 1000
	defaultTideTableTTLMinutes = 15
	defaultDynamoTTLDays       = 7
	defaultAnnualTableTTLDays  = 30
	defaultBatchSize           = 25
	defaultMaxBatchRetries     = 3
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		// Set defaults
		TideTableLRUSize:       getEnvInt("CACHE_TIDE_LRU_SIZE", defaultTideTableLRUSize),
		TideTableLRUTTLMinutes: getEnvInt("CACHE_TIDE_LRU_TTL_MINUTES", defaultTideTableTTLMinutes),
		TideTableDynamoTTLDays: getEnvInt("CACHE_DYNAMO_TTL_DAYS", defaultDynamoTTLDays),
		AnnualTableTTLDays:     getEnvInt("CACHE_ANNUAL_TABLE_TTL_DAYS", defaultAnnualTableTTLDays),
		BatchSize:              getEnvInt("CACHE_BATCH_SIZE", defaultBatchSize),
		MaxBatchRetries:        getEnvInt("CACHE_MAX_BATCH_RETRIES", defaultMaxBatchRetries),
		EnableLRUCache:         getEnvBool("CACHE_ENABLE_LRU", true),
		EnableDynamoCache:      getEnvBool("CACHE_ENABLE_DYNAMO", true),
	}

	// A batch size below one would stall batch writes.
	if config.BatchSize < 1 {
		log.Warn().Int("BatchSize", config.BatchSize).Msg("Invalid batch size, using default")
		config.BatchSize = defaultBatchSize
	}

	log.Debug().
		Int("TideTableLRUSize", config.TideTableLRUSize).
		Int("TideTableLRUTTLMinutes", config.TideTableLRUTTLMinutes).
		Int("TideTableDynamoTTLDays", config.TideTableDynamoTTLDays).
		Int("AnnualTableTTLDays", config.AnnualTableTTLDays).
		Int("BatchSize", config.BatchSize).
		Int("MaxBatchRetries", config.MaxBatchRetries).
		Bool("EnableLRUCache", config.EnableLRUCache).
		Bool("EnableDynamoCache", config.EnableDynamoCache).
		Msg("Cache configuration loaded")

	return config
}

// Helper methods for the CacheConfig struct
func (c *CacheConfig) GetTideTableLRUTTL() time.Duration {
	return time.Duration(c.TideTableLRUTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetDynamoTTL() time.Duration {
	return time.Duration(c.TideTableDynamoTTLDays) * 24 * time.Hour
}

func (c *CacheConfig) GetAnnualTableTTL() time.Duration {
	return time.Duration(c.AnnualTableTTLDays) * 24 * time.Hour
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
