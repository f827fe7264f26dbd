package tide

import (
	"context"

	"github.com/bridgepass/backend-go/internal/models"
)

type TideService interface {
	GetTideHeight(ctx context.Context, port, date, localTime string) (*models.TideHeightResponse, error)
	HeightAtTime(ctx context.Context, port, date string, timeOfDay int) (float64, error)
}

// TideTableProvider produces the extrema for one port and calendar date.
// A date missing from the table returns (nil, nil); the service surfaces
// that as a NoDataError, never as an empty day with height zero.
type TideTableProvider interface {
	GetDay(ctx context.Context, port, date string) (*models.TideDay, error)
}
