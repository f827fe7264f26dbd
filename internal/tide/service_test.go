package tide

import (
	"context"
	"errors"
	"testing"

	"github.com/bridgepass/backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTableProvider struct {
	days map[string]models.TideDay
	err  error
}

func (m *mockTableProvider) GetDay(_ context.Context, _, date string) (*models.TideDay, error) {
	if m.err != nil {
		return nil, m.err
	}
	day, ok := m.days[date]
	if !ok {
		return nil, nil
	}
	return &day, nil
}

func newMockService() *Service {
	return NewService(&mockTableProvider{
		days: map[string]models.TideDay{
			"2026-02-01": typicalDay(),
		},
	})
}

func TestGetTideHeight(t *testing.T) {
	service := newMockService()

	tests := []struct {
		name       string
		date       string
		time       string
		wantErr    bool
		errMessage string
		wantHeight float64
	}{
		{
			name:       "at a tide point",
			date:       "2026-02-01",
			time:       "00:23",
			wantHeight: 0.4,
		},
		{
			name:       "clamped before first point",
			date:       "2026-02-01",
			time:       "00:00",
			wantHeight: 0.4,
		},
		{
			name:       "missing date",
			date:       "2026-02-02",
			time:       "06:00",
			wantErr:    true,
			errMessage: "no tide data",
		},
		{
			name:       "bad date",
			date:       "02/01/2026",
			time:       "06:00",
			wantErr:    true,
			errMessage: "parsing date",
		},
		{
			name:       "bad time",
			date:       "2026-02-01",
			time:       "25:99",
			wantErr:    true,
			errMessage: "parsing query time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			response, err := service.GetTideHeight(ctx, "auckland", tt.date, tt.time)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errMessage != "" {
					assert.Contains(t, err.Error(), tt.errMessage)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, response)
			assert.Equal(t, "tide", response.ResponseType)
			assert.Equal(t, "auckland", response.Port)
			assert.Equal(t, "2026-02-01", response.Date)
			require.NotNil(t, response.Height)
			assert.InDelta(t, tt.wantHeight, *response.Height, epsilon)
			assert.Equal(t, CalculationMethod, response.CalculationMethod)
			assert.Len(t, response.Extrema, 4)
		})
	}
}

func TestGetTideHeightSamples(t *testing.T) {
	service := newMockService()

	response, err := service.GetTideHeight(context.Background(), "auckland", "2026-02-01", "12:00")
	require.NoError(t, err)

	// Six-minute sampling covers the whole day.
	require.Len(t, response.Samples, 240)
	assert.Equal(t, 0, response.Samples[0].TimeOfDay)
	assert.Equal(t, "00:00", response.Samples[0].LocalTime)
	assert.Equal(t, 1434, response.Samples[239].TimeOfDay)

	// Samples before the first extremum carry its clamped height.
	assert.InDelta(t, 0.4, response.Samples[0].Height, epsilon)

	for _, sample := range response.Samples {
		assert.GreaterOrEqual(t, sample.Height, 0.4-epsilon)
		assert.LessOrEqual(t, sample.Height, 3.0+epsilon)
	}
}

func TestGetTideHeightState(t *testing.T) {
	service := newMockService()

	response, err := service.GetTideHeight(context.Background(), "auckland", "2026-02-01", "03:30")
	require.NoError(t, err)
	require.NotNil(t, response.TideState)
	assert.Equal(t, models.TideStateRising, *response.TideState)
}

func TestHeightAtTime(t *testing.T) {
	service := newMockService()

	h, err := service.HeightAtTime(context.Background(), "auckland", "2026-02-01", 23)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, h, epsilon)

	_, err = service.HeightAtTime(context.Background(), "auckland", "2026-03-01", 720)
	require.Error(t, err)

	var noData *NoDataError
	assert.True(t, errors.As(err, &noData))
}

func TestGetTideHeightProviderError(t *testing.T) {
	service := NewService(&mockTableProvider{err: errors.New("upstream down")})

	_, err := service.GetTideHeight(context.Background(), "auckland", "2026-02-01", "12:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "getting tide day")
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "06:41", want: 401},
		{input: "23:59", want: 1439},
		{input: "24:00", wantErr: true},
		{input: "6:41pm", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	assert.Equal(t, "00:00", FormatTimeOfDay(0))
	assert.Equal(t, "06:41", FormatTimeOfDay(401))
	assert.Equal(t, "23:59", FormatTimeOfDay(1439))
}
