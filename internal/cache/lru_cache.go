package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bridgepass/backend-go/internal/config"
	"github.com/bridgepass/backend-go/internal/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUCacheEntry wraps the cached data with metadata
type LRUCacheEntry struct {
	Data      *models.TideTableRecord
	ExpiresAt time.Time
}

// CacheService provides a two-layer caching system for tide table days
// using an in-memory LRU in front of DynamoDB. Safe for concurrent use;
// the server handlers share one instance across requests.
type CacheService struct {
	lru          *lru.Cache[string, *LRUCacheEntry]
	dynamoCache  *DynamoTideTableCache
	ttl          time.Duration
	lruHits      atomic.Uint64
	lruMisses    atomic.Uint64
	dynamoHits   atomic.Uint64
	dynamoMisses atomic.Uint64
}

// NewCacheService creates a new cache service with both LRU and DynamoDB caching
func NewCacheService(ctx context.Context, cacheConfig *config.CacheConfig) (*CacheService, error) {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}

	lruCache, err := lru.New[string, *LRUCacheEntry](cacheConfig.TideTableLRUSize)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	var dynamoCache *DynamoTideTableCache
	if cacheConfig.EnableDynamoCache {
		dynamoClient, err := NewDynamoClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating DynamoDB client: %w", err)
		}
		dynamoCache = NewDynamoTideTableCache(dynamoClient, cacheConfig)
	}

	return &CacheService{
		lru:         lruCache,
		dynamoCache: dynamoCache,
		ttl:         cacheConfig.GetTideTableLRUTTL(),
	}, nil
}

// getCacheKey generates a unique cache key for a port and date
func getCacheKey(port, date string) string {
	return fmt.Sprintf("%s:%s", port, date)
}

// GetTideDay tries to get a day's record first from the LRU cache, then
// from DynamoDB. A miss in both returns (nil, nil).
func (c *CacheService) GetTideDay(ctx context.Context, port, date string) (*models.TideTableRecord, error) {
	key := getCacheKey(port, date)
	// Try LRU cache first
	if entry, ok := c.lru.Get(key); ok {
		if time.Now().Before(entry.ExpiresAt) {
			c.lruHits.Add(1)
			return entry.Data, nil
		}
		// Entry expired, remove it
		c.lru.Remove(key)
	}
	c.lruMisses.Add(1)

	if c.dynamoCache == nil {
		return nil, nil
	}

	record, err := c.dynamoCache.GetTideDay(ctx, port, date)
	if err != nil {
		return nil, fmt.Errorf("getting tide day from DynamoDB: %w", err)
	}

	if record != nil {
		c.dynamoHits.Add(1)
		// Cache hit in DynamoDB, store in LRU cache
		c.lru.Add(key, &LRUCacheEntry{
			Data:      record,
			ExpiresAt: time.Now().Add(c.ttl),
		})
		return record, nil
	}
	c.dynamoMisses.Add(1)

	return nil, nil
}

// SaveTideDay saves a day's record to both LRU and DynamoDB caches
func (c *CacheService) SaveTideDay(ctx context.Context, record models.TideTableRecord) error {
	key := getCacheKey(record.Port, record.Date)

	c.lru.Add(key, &LRUCacheEntry{
		Data:      &record,
		ExpiresAt: time.Now().Add(c.ttl),
	})

	if c.dynamoCache == nil {
		return nil
	}

	if err := c.dynamoCache.SaveTideDay(ctx, record); err != nil {
		return fmt.Errorf("saving tide day to DynamoDB: %w", err)
	}

	return nil
}

// SaveTideDaysBatch saves multiple day records to both caches
func (c *CacheService) SaveTideDaysBatch(ctx context.Context, records []models.TideTableRecord) error {
	for _, record := range records {
		recordCopy := record

		key := getCacheKey(record.Port, record.Date)
		c.lru.Add(key, &LRUCacheEntry{
			Data:      &recordCopy,
			ExpiresAt: time.Now().Add(c.ttl),
		})
	}

	if c.dynamoCache == nil {
		return nil
	}

	if err := c.dynamoCache.SaveTideDaysBatch(ctx, records); err != nil {
		return fmt.Errorf("saving tide days batch to DynamoDB: %w", err)
	}

	return nil
}

// GetCacheStats returns statistics about cache hits and misses
func (c *CacheService) GetCacheStats() map[string]uint64 {
	return map[string]uint64{
		"lru_hits":      c.lruHits.Load(),
		"lru_misses":    c.lruMisses.Load(),
		"dynamo_hits":   c.dynamoHits.Load(),
		"dynamo_misses": c.dynamoMisses.Load(),
	}
}

// Clear removes all entries from the LRU cache
func (c *CacheService) Clear() {
	c.lru.Purge()
}
