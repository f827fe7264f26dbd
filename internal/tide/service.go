package tide

import (
	"context"
	"fmt"
	"time"

	"github.com/bridgepass/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	// CalculationMethod names the interpolation used in responses.
	CalculationMethod = "Rule of Twelfths"

	sampleIntervalMinutes = 6
)

type Service struct {
	Tables TideTableProvider
}

func NewService(tables TideTableProvider) *Service {
	return &Service{Tables: tables}
}

// GetTideHeight answers a height-at-time query and includes the full
// interpolated curve for the day at six-minute intervals.
func (s *Service) GetTideHeight(ctx context.Context, port, date, localTime string) (*models.TideHeightResponse, error) {
	timeOfDay, err := ParseTimeOfDay(localTime)
	if err != nil {
		return nil, fmt.Errorf("parsing query time: %w", err)
	}

	day, err := s.getDay(ctx, port, date)
	if err != nil {
		return nil, err
	}

	height, err := HeightAt(*day, timeOfDay)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("port", port).
		Str("date", date).
		Int("time_of_day", timeOfDay).
		Float64("height", height).
		Msg("Interpolated tide height")

	samples := make([]models.TideSample, 0, minutesPerDay/sampleIntervalMinutes)
	for t := 0; t < minutesPerDay; t += sampleIntervalMinutes {
		h, err := HeightAt(*day, t)
		if err != nil {
			return nil, err
		}
		samples = append(samples, models.TideSample{
			TimeOfDay: t,
			LocalTime: FormatTimeOfDay(t),
			Height:    h,
		})
	}

	return &models.TideHeightResponse{
		ResponseType:      "tide",
		Port:              port,
		Date:              day.Date,
		LocalTime:         FormatTimeOfDay(timeOfDay),
		Height:            &height,
		TideState:         StateAt(*day, timeOfDay),
		CalculationMethod: CalculationMethod,
		Extrema:           day.Points,
		Samples:           samples,
	}, nil
}

// HeightAtTime resolves the day's table and interpolates a single height.
func (s *Service) HeightAtTime(ctx context.Context, port, date string, timeOfDay int) (float64, error) {
	day, err := s.getDay(ctx, port, date)
	if err != nil {
		return 0, err
	}
	return HeightAt(*day, timeOfDay)
}

func (s *Service) getDay(ctx context.Context, port, date string) (*models.TideDay, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}

	day, err := s.Tables.GetDay(ctx, port, date)
	if err != nil {
		return nil, fmt.Errorf("getting tide day: %w", err)
	}
	if day == nil {
		return nil, NewNoDataError(date)
	}
	return day, nil
}

// ParseTimeOfDay converts an HH:MM 24-hour local time to minutes past
// midnight.
func ParseTimeOfDay(localTime string) (int, error) {
	t, err := time.Parse("15:04", localTime)
	if err != nil {
		return 0, fmt.Errorf("parsing time %s: %w", localTime, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatTimeOfDay renders minutes past midnight as HH:MM.
func FormatTimeOfDay(timeOfDay int) string {
	return fmt.Sprintf("%02d:%02d", timeOfDay/60, timeOfDay%60)
}
