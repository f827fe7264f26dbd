package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bridgepass/backend-go/internal/config"
	"github.com/bridgepass/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

const tableName = "tide-table-cache"

// DynamoTideTableCache handles caching tide table days in DynamoDB
type DynamoTideTableCache struct {
	client DynamoDBClient
	config *config.CacheConfig
}

func NewDynamoTideTableCache(client DynamoDBClient, cacheConfig *config.CacheConfig) *DynamoTideTableCache {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}
	return &DynamoTideTableCache{
		client: client,
		config: cacheConfig,
	}
}

// GetTideDay retrieves a cached day for a port and date
func (c *DynamoTideTableCache) GetTideDay(ctx context.Context, port, date string) (*models.TideTableRecord, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			"port": &types.AttributeValueMemberS{Value: port},
			"date": &types.AttributeValueMemberS{Value: date},
		},
	}

	result, err := c.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("getting tide day from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var record models.TideTableRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling tide table record: %w", err)
	}

	// Check if cache is valid
	if !c.isValid(record) {
		log.Debug().
			Str("port", port).
			Str("date", date).
			Msg("Cache expired")
		return nil, nil
	}

	return &record, nil
}

// SaveTideDay saves a day to the cache
func (c *DynamoTideTableCache) SaveTideDay(ctx context.Context, record models.TideTableRecord) error {
	// Validate the record first
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid tide table record: %w", err)
	}

	now := time.Now().Unix()
	record.LastUpdated = now
	record.TTL = now + int64(c.config.GetDynamoTTL().Seconds())

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshaling tide table record: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      item,
	}

	if _, err := c.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("putting tide day in DynamoDB: %w", err)
	}

	log.Debug().
		Str("port", record.Port).
		Str("date", record.Date).
		Msg("Saved tide day to cache")

	return nil
}

// SaveTideDaysBatch saves multiple day records to the cache
func (c *DynamoTideTableCache) SaveTideDaysBatch(ctx context.Context, records []models.TideTableRecord) error {
	// Validate all records first
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("invalid tide table record: %w", err)
		}
	}

	// Process in batches using configured batch size
	batchSize := c.config.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}

		batch := records[i:end]
		var writeRequests []types.WriteRequest

		for _, record := range batch {
			now := time.Now().Unix()
			record.LastUpdated = now
			record.TTL = now + int64(c.config.GetDynamoTTL().Seconds())

			item, err := attributevalue.MarshalMap(record)
			if err != nil {
				return fmt.Errorf("marshaling tide table record: %w", err)
			}

			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{
					Item: item,
				},
			})
		}

		// Retry with exponential backoff up to the configured max
		var lastErr error
		for retry := 0; retry < c.config.MaxBatchRetries; retry++ {
			input := &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					tableName: writeRequests,
				},
			}

			if _, err := c.client.BatchWriteItem(ctx, input); err != nil {
				lastErr = err
				time.Sleep(time.Duration(1<<retry) * 100 * time.Millisecond)
				continue
			}
			lastErr = nil
			break
		}
		if lastErr != nil {
			return fmt.Errorf("batch writing tide days after %d retries: %w",
				c.config.MaxBatchRetries, lastErr)
		}
	}

	return nil
}

func (c *DynamoTideTableCache) isValid(record models.TideTableRecord) bool {
	now := time.Now().Unix()
	return now < record.TTL
}
