package optimizer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const completedMessage = "Cost optimization analysis completed"

type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type successBody struct {
	Message              string  `json:"message"`
	TotalCost            float64 `json:"total_cost"`
	RecommendationsCount int     `json:"recommendations_count"`
}

type errorBody struct {
	Error string `json:"error"`
}

type eventFields struct {
	ID     string `json:"id"`
	Source string `json:"source"`
}

// Handle is the Lambda entry point. The payload is opaque: any JSON value is
// accepted and only logged. It never returns an error: failures become a 500
// response.
func (o *Optimizer) Handle(ctx context.Context, payload json.RawMessage) (resp Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("cost optimization analysis panicked", zap.Any("panic", r))
			resp, err = ErrorResponse(fmt.Errorf("panic: %v", r)), nil
		}
	}()

	var event eventFields
	_ = json.Unmarshal(payload, &event)
	o.logger.Debug("invoked",
		zap.Int("payload_bytes", len(payload)),
		zap.String("event_id", event.ID),
		zap.String("source", event.Source))

	result, runErr := o.Run(ctx)
	if runErr != nil {
		o.logger.Error("error in cost optimization analysis", zap.Error(runErr))
		return ErrorResponse(runErr), nil
	}

	return jsonResponse(http.StatusOK, successBody{
		Message:              completedMessage,
		TotalCost:            result.Costs.Total().InexactFloat64(),
		RecommendationsCount: len(result.Recommendations),
	}), nil
}

// FailingHandler answers every invocation with err, for when the function
// cannot be configured at cold start.
func FailingHandler(err error) func(context.Context, json.RawMessage) (Response, error) {
	return func(context.Context, json.RawMessage) (Response, error) {
		return ErrorResponse(err), nil
	}
}

func ErrorResponse(err error) Response {
	return jsonResponse(http.StatusInternalServerError, errorBody{Error: err.Error()})
}

func jsonResponse(status int, body any) Response {
	b, err := json.Marshal(body)
	if err != nil {
		return Response{StatusCode: http.StatusInternalServerError, Body: fmt.Sprintf(`{"error":%q}`, err.Error())}
	}
	return Response{StatusCode: status, Body: string(b)}
}
