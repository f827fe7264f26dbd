package models

import "fmt"

type TideState string

const (
	TideStateRising  TideState = "RISING"
	TideStateFalling TideState = "FALLING"
)

// TidePoint represents a single predicted tide extremum for a day: minutes
// since local midnight and height in meters relative to chart datum.
type TidePoint struct {
	TimeOfDay int     `json:"timeOfDay"`
	Height    float64 `json:"height"`
}

// TideDay holds the predicted extrema for one calendar date, ordered
// ascending by time of day. Published tables carry between 0 and 4 points
// per day; ascending time order is the only invariant callers may rely on.
type TideDay struct {
	Date   string      `json:"date"` // YYYY-MM-DD
	Points []TidePoint `json:"points"`
}

// TideSample represents an interpolated tide height at a specific time
type TideSample struct {
	TimeOfDay int     `json:"timeOfDay"`
	LocalTime string  `json:"localTime"` // HH:MM
	Height    float64 `json:"height"`
}

// TideTableRecord is one cached day of tide table data for a port
type TideTableRecord struct {
	Port        string      `json:"port" dynamodbav:"port"`
	Date        string      `json:"date" dynamodbav:"date"` // YYYY-MM-DD
	Points      []TidePoint `json:"points" dynamodbav:"points"`
	LastUpdated int64       `json:"lastUpdated" dynamodbav:"lastUpdated"`
	TTL         int64       `json:"ttl" dynamodbav:"ttl"`
}

func (r TideTableRecord) Validate() error {
	if r.Port == "" {
		return fmt.Errorf("record missing port")
	}
	if r.Date == "" {
		return fmt.Errorf("record missing date")
	}
	if len(r.Points) > 4 {
		return fmt.Errorf("record for %s has %d points, expected at most 4", r.Date, len(r.Points))
	}
	for i := 1; i < len(r.Points); i++ {
		if r.Points[i].TimeOfDay < r.Points[i-1].TimeOfDay {
			return fmt.Errorf("record for %s has points out of time order", r.Date)
		}
	}
	return nil
}

// Day converts the cached record back into the model's day type.
func (r TideTableRecord) Day() TideDay {
	return TideDay{Date: r.Date, Points: r.Points}
}

// TideHeightResponse represents the full answer to a height-at-time query,
// including the interpolated curve for the rest of the day
type TideHeightResponse struct {
	ResponseType      string       `json:"responseType"`
	Port              string       `json:"port"`
	Date              string       `json:"date"`
	LocalTime         string       `json:"localTime"`
	Height            *float64     `json:"height"`
	TideState         *TideState   `json:"tideState"`
	CalculationMethod string       `json:"calculationMethod"`
	Extrema           []TidePoint  `json:"extrema"`
	Samples           []TideSample `json:"samples"`
}
