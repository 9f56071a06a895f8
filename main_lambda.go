//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

func newLambdaHandler(a *api) func(context.Context, events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	return func(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		body := event.Body
		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(body)
			if err != nil {
				return jsonResp(http.StatusBadRequest, errorBody{"invalid base64 body"})
			}
			body = string(decoded)
		}
		method := event.RequestContext.HTTP.Method
		if method == "" {
			method = http.MethodPost
		}
		status, payload := a.route(ctx, method, event.RawPath, body)
		return jsonResp(status, payload)
	}
}

func jsonResp(code int, payload any) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(payload)
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

// lambdaMaxBudget keeps every search well inside the function timeout.
const lambdaMaxBudget = DefaultBudget / 2

// lambdaConfig loads the config file at path, if any, and caps its budget.
func lambdaConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	cfg.Budget = min(cfg.Budget, lambdaMaxBudget)
	return cfg, nil
}

func main() {
	cfg, err := lambdaConfig(os.Getenv("CIFRAS_CONFIG"))
	if err != nil {
		panic(err)
	}
	logger := NewLogger(LogConfig{Level: os.Getenv("CIFRAS_LOG_LEVEL"), Format: "json"}, os.Stderr)
	lambda.Start(newLambdaHandler(&api{solver: NewSolver(cfg, logger), maxBudget: lambdaMaxBudget}))
}
