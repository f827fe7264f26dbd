package tide

import (
	"github.com/bridgepass/backend-go/internal/models"
)

// HeightAt returns the interpolated tide height for a day at the given
// minutes past local midnight.
//
// Queries before the first point or after the last clamp to that point's
// height: the true tide continues into the adjacent day, but this model
// deliberately never consults neighboring days. A day with no points
// returns a NoDataError.
func HeightAt(day models.TideDay, timeOfDay int) (float64, error) {
	if timeOfDay < 0 || timeOfDay >= minutesPerDay {
		return 0, NewInvalidTimeError(timeOfDay)
	}
	if len(day.Points) == 0 {
		return 0, NewNoDataError(day.Date)
	}

	points := day.Points
	if timeOfDay < points[0].TimeOfDay {
		return points[0].Height, nil
	}
	if timeOfDay > points[len(points)-1].TimeOfDay {
		return points[len(points)-1].Height, nil
	}

	// First adjacent pair bracketing the query time, scanning in time
	// order. At most 4 points per day, so a linear scan is fine.
	for i := 0; i < len(points)-1; i++ {
		p1, p2 := points[i], points[i+1]
		if p1.TimeOfDay <= timeOfDay && timeOfDay <= p2.TimeOfDay {
			return Interpolate(timeOfDay, p1.TimeOfDay, p1.Height, p2.TimeOfDay, p2.Height), nil
		}
	}

	// Single-point day inside the clamp window.
	return points[len(points)-1].Height, nil
}

// StateAt reports whether the tide is rising or falling at the given time.
// Returns nil when the day has fewer than two points or the query falls
// outside the bracketed range (where the clamp makes direction meaningless).
func StateAt(day models.TideDay, timeOfDay int) *models.TideState {
	points := day.Points
	if len(points) < 2 || timeOfDay < points[0].TimeOfDay || timeOfDay > points[len(points)-1].TimeOfDay {
		return nil
	}
	for i := 0; i < len(points)-1; i++ {
		p1, p2 := points[i], points[i+1]
		if p1.TimeOfDay <= timeOfDay && timeOfDay <= p2.TimeOfDay {
			state := models.TideStateRising
			if p2.Height < p1.Height {
				state = models.TideStateFalling
			}
			return &state
		}
	}
	return nil
}
