package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bridgepass/backend-go/internal/clearance"
	"github.com/bridgepass/backend-go/internal/tide"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}

type InvalidParameterError struct {
	Name    string
	Message string
}

func (e InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Name, e.Message)
}

// TideQuery is the parsed parameter set for a height-at-time request.
type TideQuery struct {
	Port string
	Date string
	Time string
}

// ParseTideParams validates the parameters of a height-at-time request.
// defaultPort fills in the port when the caller omits it.
func ParseTideParams(params map[string]string, defaultPort string) (TideQuery, error) {
	q := TideQuery{
		Port: params["port"],
		Date: params["date"],
		Time: params["time"],
	}
	if q.Port == "" {
		q.Port = defaultPort
	}
	if q.Date == "" {
		return TideQuery{}, InvalidParameterError{Name: "date", Message: "required"}
	}
	if q.Time == "" {
		return TideQuery{}, InvalidParameterError{Name: "time", Message: "required"}
	}
	if _, err := tide.ParseTimeOfDay(q.Time); err != nil {
		return TideQuery{}, InvalidParameterError{Name: "time", Message: "must be HH:MM 24-hour"}
	}
	return q, nil
}

// ParseClearanceParams validates the parameters of a go/no-go request.
// Boat height and safety margin must be non-negative; the engine itself
// accepts anything, so the sanity check lives here at the boundary.
func ParseClearanceParams(params map[string]string, defaultPort string) (clearance.Request, error) {
	tideQuery, err := ParseTideParams(params, defaultPort)
	if err != nil {
		return clearance.Request{}, err
	}

	span, ok := params["span"]
	if !ok || span == "" {
		return clearance.Request{}, InvalidParameterError{Name: "span", Message: "required"}
	}

	boatHeight, err := parseNonNegativeFloat(params, "boatHeight")
	if err != nil {
		return clearance.Request{}, err
	}

	safetyMargin := 0.0
	if _, ok := params["safetyMargin"]; ok {
		safetyMargin, err = parseNonNegativeFloat(params, "safetyMargin")
		if err != nil {
			return clearance.Request{}, err
		}
	}

	return clearance.Request{
		Port:         tideQuery.Port,
		Date:         tideQuery.Date,
		LocalTime:    tideQuery.Time,
		Span:         span,
		BoatHeight:   boatHeight,
		SafetyMargin: safetyMargin,
	}, nil
}

func parseNonNegativeFloat(params map[string]string, name string) (float64, error) {
	raw, ok := params[name]
	if !ok || raw == "" {
		return 0, InvalidParameterError{Name: name, Message: "required"}
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, InvalidParameterError{Name: name, Message: "not a number"}
	}
	if value < 0 {
		return 0, InvalidParameterError{Name: name, Message: "must be non-negative"}
	}
	return value, nil
}
