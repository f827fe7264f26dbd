package config

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/bridgepass/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

// SpanConfig maps span names to their clearance at chart datum in meters.
// The set is injected configuration, not engine constants, so new spans can
// be added without touching the classification logic.
type SpanConfig struct {
	clearances map[string]float64
}

// Canonical spans for the default bridge.
const (
	defaultInOutClearance = 6.2
	defaultHighClearance  = 6.5
)

// GetSpanConfig loads the span set from the BRIDGE_SPANS environment
// variable (a JSON object of name to clearance in meters), falling back to
// the canonical IN_OUT and HIGH spans.
func GetSpanConfig() *SpanConfig {
	clearances := map[string]float64{
		"IN_OUT": defaultInOutClearance,
		"HIGH":   defaultHighClearance,
	}

	if raw := os.Getenv("BRIDGE_SPANS"); raw != "" {
		var fromEnv map[string]float64
		if err := json.Unmarshal([]byte(raw), &fromEnv); err != nil {
			log.Warn().Err(err).Msg("Invalid BRIDGE_SPANS value, using default spans")
		} else if len(fromEnv) > 0 {
			clearances = fromEnv
		}
	}

	log.Debug().Int("span_count", len(clearances)).Msg("Span configuration loaded")

	return &SpanConfig{clearances: clearances}
}

// NewSpanConfig builds a span set directly, for tests and embedding callers.
func NewSpanConfig(clearances map[string]float64) *SpanConfig {
	copied := make(map[string]float64, len(clearances))
	for name, clearance := range clearances {
		copied[name] = clearance
	}
	return &SpanConfig{clearances: copied}
}

// Lookup returns the named span and whether it exists.
func (s *SpanConfig) Lookup(name string) (models.Span, bool) {
	clearance, ok := s.clearances[name]
	if !ok {
		return models.Span{}, false
	}
	return models.Span{Name: name, ClearanceAtDatum: clearance}, true
}

// Spans returns all configured spans sorted by name.
func (s *SpanConfig) Spans() []models.Span {
	spans := make([]models.Span, 0, len(s.clearances))
	for name, clearance := range s.clearances {
		spans = append(spans, models.Span{Name: name, ClearanceAtDatum: clearance})
	}
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Name < spans[j].Name
	})
	return spans
}
