package tidetable

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/bridgepass/backend-go/internal/models"
	"github.com/bridgepass/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

// DayCache caches individual tide table days.
type DayCache interface {
	GetTideDay(ctx context.Context, port, date string) (*models.TideTableRecord, error)
	SaveTideDaysBatch(ctx context.Context, records []models.TideTableRecord) error
}

// AnnualTableCache caches the raw published annual CSV for a port.
type AnnualTableCache interface {
	GetTable(ctx context.Context, port string, year int) ([]byte, error)
	SaveTable(ctx context.Context, port string, year int, data []byte) error
}

// LINZSource resolves tide days from published LINZ annual tide tables,
// consulting the per-day cache, then the annual table cache, then the
// upstream HTTP endpoint.
type LINZSource struct {
	httpClient  *client.Client
	dayCache    DayCache
	annualCache AnnualTableCache

	mu     sync.RWMutex
	loaded map[string]map[string]models.TideDay // port:year -> date -> day
}

func NewLINZSource(httpClient *client.Client, dayCache DayCache, annualCache AnnualTableCache) *LINZSource {
	return &LINZSource{
		httpClient:  httpClient,
		dayCache:    dayCache,
		annualCache: annualCache,
		loaded:      make(map[string]map[string]models.TideDay),
	}
}

// GetDay returns the extrema for one port and date, or nil when the
// published table has no row for that date. Multi-day gaps in the table
// stay gaps; the source never synthesizes data for missing dates.
func (s *LINZSource) GetDay(ctx context.Context, port, date string) (*models.TideDay, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	year := parsed.Year()

	if s.dayCache != nil {
		record, err := s.dayCache.GetTideDay(ctx, port, date)
		if err != nil {
			return nil, fmt.Errorf("getting day from cache: %w", err)
		}
		if record != nil {
			log.Debug().Str("port", port).Str("date", date).Msg("Cache HIT for tide day")
			day := record.Day()
			return &day, nil
		}
	}

	table, err := s.getAnnualTable(ctx, port, year)
	if err != nil {
		return nil, err
	}

	day, ok := table[date]
	if !ok {
		return nil, nil
	}
	return &day, nil
}

func (s *LINZSource) getAnnualTable(ctx context.Context, port string, year int) (map[string]models.TideDay, error) {
	key := port + ":" + strconv.Itoa(year)

	s.mu.RLock()
	table := s.loaded[key]
	s.mu.RUnlock()
	if table != nil {
		return table, nil
	}

	data, err := s.fetchAnnualCSV(ctx, port, year)
	if err != nil {
		return nil, err
	}

	days, err := ParseTable(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing tide table for %s %d: %w", port, year, err)
	}

	table = make(map[string]models.TideDay, len(days))
	records := make([]models.TideTableRecord, 0, len(days))
	for _, day := range days {
		table[day.Date] = day
		records = append(records, models.TideTableRecord{
			Port:   port,
			Date:   day.Date,
			Points: day.Points,
		})
	}

	log.Debug().Str("port", port).Int("year", year).Int("day_count", len(days)).
		Msg("Loaded annual tide table")

	s.mu.Lock()
	s.loaded[key] = table
	s.mu.Unlock()

	if s.dayCache != nil {
		if err := s.dayCache.SaveTideDaysBatch(ctx, records); err != nil {
			log.Warn().Err(err).Str("port", port).Int("year", year).
				Msg("Failed caching tide days")
		}
	}

	return table, nil
}

func (s *LINZSource) fetchAnnualCSV(ctx context.Context, port string, year int) ([]byte, error) {
	if s.annualCache != nil {
		data, err := s.annualCache.GetTable(ctx, port, year)
		if err != nil {
			log.Warn().Err(err).Str("port", port).Int("year", year).
				Msg("Annual table cache lookup failed")
		} else if data != nil {
			log.Debug().Str("port", port).Int("year", year).Msg("Cache HIT for annual table")
			return data, nil
		}
	}

	resp, err := s.httpClient.Get(ctx, fmt.Sprintf("/csv/%s-%d.csv", port, year))
	if err != nil {
		return nil, fmt.Errorf("fetching tide table: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching tide table: status %d", resp.StatusCode)
	}

	if s.annualCache != nil {
		if err := s.annualCache.SaveTable(ctx, port, year, resp.Body); err != nil {
			log.Warn().Err(err).Str("port", port).Int("year", year).
				Msg("Failed caching annual table")
		}
	}

	return resp.Body, nil
}
