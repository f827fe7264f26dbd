package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bridgepass/backend-go/internal/api"
	"github.com/bridgepass/backend-go/internal/cache"
	"github.com/bridgepass/backend-go/internal/config"
	"github.com/bridgepass/backend-go/internal/tide"
	"github.com/bridgepass/backend-go/internal/tidetable"
	"github.com/bridgepass/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

var (
	cfg         *config.Config
	tideService tide.TideService
	setupOnce   sync.Once
)

func init() {
	setupOnce.Do(func() {
		ctx := context.Background()

		cfg = config.LoadFromEnv()
		cfg.InitializeLogging()

		httpClient := client.New(client.Options{
			BaseURL:    cfg.TideTableBaseURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
		})

		cacheConfig := config.GetCacheConfig()

		var dayCache tidetable.DayCache
		if cacheService, err := cache.NewCacheService(ctx, cacheConfig); err != nil {
			log.Warn().Err(err).Msg("Running without day cache")
		} else {
			dayCache = cacheService
		}

		var annualCache tidetable.AnnualTableCache
		if bucket := os.Getenv("TIDE_TABLE_BUCKET"); bucket != "" {
			if s3Client, err := cache.NewS3Client(ctx); err != nil {
				log.Warn().Err(err).Msg("Running without annual table cache")
			} else {
				annualCache = cache.NewS3AnnualTableCache(s3Client, bucket, cacheConfig.GetAnnualTableTTL())
			}
		}

		source := tidetable.NewLINZSource(httpClient, dayCache, annualCache)
		tideService = tide.NewService(source)
	})
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log.Info().Msg("Handling tides request")

	query, err := api.ParseTideParams(request.QueryStringParameters, cfg.Port)
	if err != nil {
		return api.Error(err.Error(), http.StatusBadRequest)
	}

	response, err := tideService.GetTideHeight(ctx, query.Port, query.Date, query.Time)
	if err != nil {
		return errorResponse(err)
	}

	return api.Success(response)
}

func errorResponse(err error) (events.APIGatewayProxyResponse, error) {
	var noData *tide.NoDataError
	if errors.As(err, &noData) {
		return api.Error(noData.Error(), http.StatusNotFound)
	}
	var invalidTime *tide.InvalidTimeError
	if errors.As(err, &invalidTime) {
		return api.Error(invalidTime.Error(), http.StatusBadRequest)
	}

	log.Error().Err(err).Msg("Error getting tide height")
	return api.Error("Error getting tide height", http.StatusInternalServerError)
}

func main() {
	lambda.Start(handleRequest)
}
