package clearance

import (
	"github.com/bridgepass/backend-go/internal/models"
)

// safeMarginMeters is the spare clearance above which a passage is SAFE.
const safeMarginMeters = 0.5

// Classify converts a tide height and span clearance into a verdict.
//
// It is a total function: every numeric input, however implausible, yields
// a definite status. Band boundaries are closed below and open above, so
// exactly 0.5 m spare is SAFE and exactly 0.0 m is CAUTION.
func Classify(query models.ClearanceQuery) models.ClearanceResult {
	actual := query.SpanClearance - query.TideHeight
	needed := query.BoatHeight + query.SafetyMargin
	spare := actual - needed

	status := models.ClearanceDanger
	switch {
	case spare >= safeMarginMeters:
		status = models.ClearanceSafe
	case spare >= 0:
		status = models.ClearanceCaution
	}

	return models.ClearanceResult{
		ActualClearance: actual,
		ClearanceNeeded: needed,
		SpareClearance:  spare,
		Status:          status,
	}
}
