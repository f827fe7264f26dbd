package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3Client defines the interface for S3 operations we need
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3AnnualTableCache stores the raw published annual tide table CSV per
// port and year.
type S3AnnualTableCache struct {
	client     S3Client
	bucketName string
	ttl        time.Duration
	now        func() time.Time
}

// AnnualTableCacheRecord wraps the raw CSV with cache metadata
type AnnualTableCacheRecord struct {
	Port        string `json:"port"`
	Year        int    `json:"year"`
	CSV         []byte `json:"csv"`
	LastUpdated int64  `json:"lastUpdated"`
	TTL         int64  `json:"ttl"`
}

func NewS3AnnualTableCache(client S3Client, bucketName string, ttl time.Duration) *S3AnnualTableCache {
	return &S3AnnualTableCache{
		client:     client,
		bucketName: bucketName,
		ttl:        ttl,
		now:        time.Now,
	}
}

func annualTableKey(port string, year int) string {
	return fmt.Sprintf("tide-tables/%s-%d.json", port, year)
}

// GetTable retrieves the cached annual CSV if present and valid. A missing
// or expired object returns (nil, nil).
func (c *S3AnnualTableCache) GetTable(ctx context.Context, port string, year int) ([]byte, error) {
	if c.bucketName == "" {
		return nil, fmt.Errorf("empty bucket name")
	}

	result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(annualTableKey(port, year)),
	})
	if err != nil {
		// If object doesn't exist, return nil without error
		return nil, nil
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Error().Err(err).Msg("Error closing S3 object body")
		}
	}(result.Body)

	var record AnnualTableCacheRecord
	if err := json.NewDecoder(result.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding cache record: %w", err)
	}

	if c.now().Unix() > record.TTL {
		log.Debug().Str("port", port).Int("year", year).Msg("Annual table cache expired")
		return nil, nil
	}

	return record.CSV, nil
}

// SaveTable saves the annual CSV to the S3 cache
func (c *S3AnnualTableCache) SaveTable(ctx context.Context, port string, year int, data []byte) error {
	if c.bucketName == "" {
		return fmt.Errorf("empty bucket name")
	}

	now := c.now().Unix()
	record := AnnualTableCacheRecord{
		Port:        port,
		Year:        year,
		CSV:         data,
		LastUpdated: now,
		TTL:         now + int64(c.ttl.Seconds()),
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(record); err != nil {
		return fmt.Errorf("encoding cache record: %w", err)
	}

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(annualTableKey(port, year)),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("saving to S3: %w", err)
	}

	log.Debug().Str("port", port).Int("year", year).Msg("Saved annual table to S3 cache")
	return nil
}
