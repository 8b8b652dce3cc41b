// cmd/lambda/main.go
package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"websearch-action/internal/common/config"
	"websearch-action/internal/common/logger"
	"websearch-action/internal/common/observability"
	searchweb "websearch-action/internal/workers/agent/search-web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx := context.Background()

	obs := observability.New(ctx, observability.Options{
		ServiceName:  cfg.Observability.ServiceName,
		OTLPEndpoint: cfg.Observability.OTLPEndpoint,
	})
	defer obs.Shutdown()

	handler := searchweb.NewHandlerFromConfig(ctx, cfg, searchweb.AWSSecretLookup, log, obs)

	zapLog.Info("search action ready",
		zap.String("provider", cfg.Search.Provider),
		zap.String("function", cfg.Action.FunctionName),
	)

	lambda.StartWithOptions(func(ctx context.Context, raw json.RawMessage) (searchweb.HTTPResult, error) {
		return handler.HandleRaw(searchweb.WithTransport(ctx, searchweb.TransportLambda), raw), nil
	}, lambda.WithEnableSIGTERM(obs.Shutdown))
}
