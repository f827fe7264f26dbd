package models

// ClearanceStatus is the three-band verdict for a passage, ordered
// DANGER < CAUTION < SAFE by spare clearance.
type ClearanceStatus string

const (
	ClearanceSafe    ClearanceStatus = "SAFE"
	ClearanceCaution ClearanceStatus = "CAUTION"
	ClearanceDanger  ClearanceStatus = "DANGER"
)

// Span is a named bridge passage. ClearanceAtDatum is the vertical gap in
// meters between the underside of the span and chart datum (zero tide).
type Span struct {
	Name             string  `json:"name"`
	ClearanceAtDatum float64 `json:"clearanceAtDatum"`
}

// ClearanceQuery carries everything the engine needs for one verdict.
// All values are meters. TideHeight may be negative (below chart datum).
type ClearanceQuery struct {
	BoatHeight    float64 `json:"boatHeight"`
	SafetyMargin  float64 `json:"safetyMargin"`
	TideHeight    float64 `json:"tideHeight"`
	SpanClearance float64 `json:"spanClearance"`
}

// ClearanceResult is derived per query and never stored.
type ClearanceResult struct {
	ActualClearance  float64         `json:"actualClearance"`
	ClearanceNeeded  float64         `json:"clearanceNeeded"`
	SpareClearance   float64         `json:"spareClearance"`
	Status           ClearanceStatus `json:"status"`
}

// ClearanceResponse represents the full answer to a go/no-go query
type ClearanceResponse struct {
	ResponseType      string  `json:"responseType"`
	Port              string  `json:"port"`
	Date              string  `json:"date"`
	LocalTime         string  `json:"localTime"`
	Span              string  `json:"span"`
	SpanClearance     float64 `json:"spanClearance"`
	TideHeight        float64 `json:"tideHeight"`
	CalculationMethod string  `json:"calculationMethod"`
	ClearanceResult
}
