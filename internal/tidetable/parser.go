package tidetable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/bridgepass/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

// Published tide tables are flat CSV, one calendar day per row:
//
//	day,weekday,month,year,time1,height1,time2,height2,time3,height3,time4,height4
//	1,Th,1,2026,05:47,3.1,11:51,0.8,18:06,3.1,,
//
// timeN is HH:MM 24-hour local time, heightN decimal meters above chart
// datum. Either member of a pair may be blank when the day has fewer than
// four extrema.

const minRowFields = 8

// ParseTable reads a tide table and returns one TideDay per parseable row.
// Malformed pairs are skipped individually and rows with no valid pairs are
// dropped; a bad row never fails the whole load.
func ParseTable(r io.Reader) ([]models.TideDay, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var days []models.TideDay
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// One unreadable row must not lose the rest of the year.
			log.Warn().Err(err).Int("line", parseErr.Line).Msg("Skipping unreadable tide table row")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading tide table: %w", err)
		}

		day, ok := parseRow(row)
		if !ok {
			continue
		}
		days = append(days, day)
	}

	return days, nil
}

func parseRow(row []string) (models.TideDay, bool) {
	if len(row) < minRowFields {
		return models.TideDay{}, false
	}

	dayOfMonth, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		log.Warn().Str("field", row[0]).Msg("Skipping tide table row with bad day")
		return models.TideDay{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		log.Warn().Str("field", row[2]).Msg("Skipping tide table row with bad month")
		return models.TideDay{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		log.Warn().Str("field", row[3]).Msg("Skipping tide table row with bad year")
		return models.TideDay{}, false
	}

	date := fmt.Sprintf("%04d-%02d-%02d", year, month, dayOfMonth)

	var points []models.TidePoint
	for i := 4; i+1 < len(row); i += 2 {
		timeField := strings.TrimSpace(row[i])
		heightField := strings.TrimSpace(row[i+1])
		if timeField == "" || heightField == "" {
			continue
		}

		timeOfDay, err := parseTimeField(timeField)
		if err != nil {
			log.Warn().Str("date", date).Str("field", timeField).Msg("Skipping tide pair with bad time")
			continue
		}
		height, err := strconv.ParseFloat(heightField, 64)
		if err != nil {
			log.Warn().Str("date", date).Str("field", heightField).Msg("Skipping tide pair with bad height")
			continue
		}

		points = append(points, models.TidePoint{TimeOfDay: timeOfDay, Height: height})
	}

	if len(points) == 0 {
		return models.TideDay{}, false
	}

	// Points must be ascending by time within the day.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].TimeOfDay < points[j].TimeOfDay
	})

	return models.TideDay{Date: date, Points: points}, true
}

func parseTimeField(field string) (int, error) {
	parts := strings.Split(field, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("bad time format: %s", field)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time out of range: %s", field)
	}
	return hours*60 + minutes, nil
}
