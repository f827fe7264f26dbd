package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bridgepass/backend-go/internal/models"
	"github.com/bridgepass/backend-go/internal/tide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTideService struct {
	response *models.TideHeightResponse
	err      error
}

func (s *stubTideService) GetTideHeight(_ context.Context, _, _, _ string) (*models.TideHeightResponse, error) {
	return s.response, s.err
}

func (s *stubTideService) HeightAtTime(_ context.Context, _, _ string, _ int) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return *s.response.Height, nil
}

func TestHandleRequest(t *testing.T) {
	height := 1.65
	tests := []struct {
		name       string
		params     map[string]string
		service    *stubTideService
		wantStatus int
		wantBody   string
	}{
		{
			name:   "success",
			params: map[string]string{"date": "2026-02-01", "time": "03:32"},
			service: &stubTideService{response: &models.TideHeightResponse{
				ResponseType: "tide",
				Port:         "auckland",
				Date:         "2026-02-01",
				LocalTime:    "03:32",
				Height:       &height,
			}},
			wantStatus: http.StatusOK,
			wantBody:   `"responseType":"tide"`,
		},
		{
			name:       "missing date",
			params:     map[string]string{"time": "03:32"},
			service:    &stubTideService{},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid parameter date",
		},
		{
			name:       "no tide data",
			params:     map[string]string{"date": "2026-02-01", "time": "03:32"},
			service:    &stubTideService{err: tide.NewNoDataError("2026-02-01")},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid time of day",
			params:     map[string]string{"date": "2026-02-01", "time": "03:32"},
			service:    &stubTideService{err: tide.NewInvalidTimeError(2000)},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "upstream failure",
			params:     map[string]string{"date": "2026-02-01", "time": "03:32"},
			service:    &stubTideService{err: errors.New("upstream down")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Error getting tide height",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tideService = tt.service

			response, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{
				QueryStringParameters: tt.params,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, response.StatusCode)
			if tt.wantBody != "" {
				assert.Contains(t, response.Body, tt.wantBody)
			}
			assert.Equal(t, "*", response.Headers["Access-Control-Allow-Origin"])
		})
	}
}

func TestHandleRequestDefaultsPort(t *testing.T) {
	height := 0.4
	tideService = &stubTideService{response: &models.TideHeightResponse{
		ResponseType: "tide",
		Port:         cfg.Port,
		Date:         "2026-02-01",
		Height:       &height,
	}}

	response, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{
		QueryStringParameters: map[string]string{"date": "2026-02-01", "time": "00:00"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var body models.TideHeightResponse
	require.NoError(t, json.Unmarshal([]byte(response.Body), &body))
	assert.Equal(t, "auckland", body.Port)
}
