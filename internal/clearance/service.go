package clearance

import (
	"context"
	"fmt"

	"github.com/bridgepass/backend-go/internal/config"
	"github.com/bridgepass/backend-go/internal/models"
	"github.com/bridgepass/backend-go/internal/tide"
	"github.com/rs/zerolog/log"
)

// Request is one go/no-go question: a boat, a span, a port and a moment.
type Request struct {
	Port         string
	Date         string // YYYY-MM-DD
	LocalTime    string // HH:MM
	Span         string
	BoatHeight   float64
	SafetyMargin float64
}

type ClearanceService interface {
	GetClearance(ctx context.Context, req Request) (*models.ClearanceResponse, error)
}

type Service struct {
	tides tide.TideService
	spans *config.SpanConfig
}

func NewService(tides tide.TideService, spans *config.SpanConfig) *Service {
	if spans == nil {
		spans = config.GetSpanConfig()
	}
	return &Service{
		tides: tides,
		spans: spans,
	}
}

// GetClearance resolves the tide height for the requested moment, looks up
// the span and classifies the passage.
func (s *Service) GetClearance(ctx context.Context, req Request) (*models.ClearanceResponse, error) {
	span, ok := s.spans.Lookup(req.Span)
	if !ok {
		return nil, NewUnknownSpanError(req.Span)
	}

	timeOfDay, err := tide.ParseTimeOfDay(req.LocalTime)
	if err != nil {
		return nil, fmt.Errorf("parsing query time: %w", err)
	}

	tideHeight, err := s.tides.HeightAtTime(ctx, req.Port, req.Date, timeOfDay)
	if err != nil {
		return nil, fmt.Errorf("getting tide height: %w", err)
	}

	result := Classify(models.ClearanceQuery{
		BoatHeight:    req.BoatHeight,
		SafetyMargin:  req.SafetyMargin,
		TideHeight:    tideHeight,
		SpanClearance: span.ClearanceAtDatum,
	})

	log.Debug().
		Str("port", req.Port).
		Str("date", req.Date).
		Str("span", span.Name).
		Float64("tide_height", tideHeight).
		Float64("spare_clearance", result.SpareClearance).
		Str("status", string(result.Status)).
		Msg("Classified clearance")

	return &models.ClearanceResponse{
		ResponseType:      "clearance",
		Port:              req.Port,
		Date:              req.Date,
		LocalTime:         tide.FormatTimeOfDay(timeOfDay),
		Span:              span.Name,
		SpanClearance:     span.ClearanceAtDatum,
		TideHeight:        tideHeight,
		CalculationMethod: tide.CalculationMethod,
		ClearanceResult:   result,
	}, nil
}
