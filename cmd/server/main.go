package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/bridgepass/backend-go/internal/api"
	"github.com/bridgepass/backend-go/internal/cache"
	"github.com/bridgepass/backend-go/internal/clearance"
	"github.com/bridgepass/backend-go/internal/config"
	"github.com/bridgepass/backend-go/internal/metrics"
	"github.com/bridgepass/backend-go/internal/tide"
	"github.com/bridgepass/backend-go/internal/tidetable"
	"github.com/bridgepass/backend-go/pkg/http/client"
)

type ServerConfig struct {
	Port   string `default:"8080"`
	Prefix string `default:"/"`
}

type server struct {
	cfg              *config.Config
	tideService      tide.TideService
	clearanceService clearance.ClearanceService
}

func newServer(ctx context.Context) *server {
	cfg := config.LoadFromEnv()
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
	tideService := tide.NewService(source)

	return &server{
		cfg:              cfg,
		tideService:      tideService,
		clearanceService: clearance.NewService(tideService, config.GetSpanConfig()),
	}
}

func (s *server) serveTides(w http.ResponseWriter, r *http.Request) {
	query, err := api.ParseTideParams(flattenQuery(r.URL.Query()), s.cfg.Port)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := s.tideService.GetTideHeight(r.Context(), query.Port, query.Date, query.Time)
	if err != nil {
		writeServiceError(w, err, "Error getting tide height")
		return
	}

	writeJSON(w, response)
}

func (s *server) serveClearance(w http.ResponseWriter, r *http.Request) {
	req, err := api.ParseClearanceParams(flattenQuery(r.URL.Query()), s.cfg.Port)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := s.clearanceService.GetClearance(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Error getting clearance")
		return
	}

	writeJSON(w, response)
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var unknownSpan *clearance.UnknownSpanError
	if errors.As(err, &unknownSpan) {
		writeError(w, unknownSpan.Error(), http.StatusBadRequest)
		return
	}
	var noData *tide.NoDataError
	if errors.As(err, &noData) {
		writeError(w, noData.Error(), http.StatusNotFound)
		return
	}
	var invalidTime *tide.InvalidTimeError
	if errors.As(err, &invalidTime) {
		writeError(w, invalidTime.Error(), http.StatusBadRequest)
		return
	}

	log.Error().Err(err).Msg(fallback)
	writeError(w, fallback, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(api.NewErrorResponse(message)); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

func flattenQuery(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for key := range values {
		params[key] = values.Get(key)
	}
	return params
}

func main() {
	var env ServerConfig
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal().Err(err).Msg("Loading server config")
	}

	srv := newServer(context.Background())

	r := mux.NewRouter().StrictSlash(true)
	s := r.PathPrefix(env.Prefix).Subrouter()

	s.HandleFunc("/api/tides", srv.serveTides)
	s.HandleFunc("/api/clearance", srv.serveClearance)
	s.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Handler:      metrics.LatencyHandler(r),
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Info().Str("addr", httpServer.Addr).Msg("Listening and serving")
	log.Fatal().Err(httpServer.ListenAndServe()).Msg("Server stopped")
}
