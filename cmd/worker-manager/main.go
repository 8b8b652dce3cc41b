// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"websearch-action/internal/common/camunda"
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

	zapLog.Info("Starting worker manager...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(ctx, observability.Options{
		ServiceName:  cfg.Observability.ServiceName,
		OTLPEndpoint: cfg.Observability.OTLPEndpoint,
	})
	defer obs.Shutdown()

	handler := searchweb.NewHandlerFromConfig(ctx, cfg, searchweb.AWSSecretLookup, log, obs)

	// --- Zeebe ---
	var (
		zeebe  *camunda.Client
		worker *camunda.Worker
		ready  readinessFunc
	)
	if cfg.Camunda.BrokerAddress == "" {
		zapLog.Warn("camunda.broker_address not set, running HTTP invoke only")
	} else {
		zeebe, err = camunda.Connect(ctx, camunda.ConfigFromApp(cfg.Camunda), log)
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully", zap.String("gateway", cfg.Camunda.BrokerAddress))

		worker = camunda.StartWorker(
			zeebe.GetClient(),
			searchweb.TaskType,
			config.GetWorkerConfig(cfg, searchweb.TaskType),
			handler.HandleJob,
			log,
		)
		ready = zeebe.HealthCheck
	}

	// --- Health, Metrics & Invoke Server ---
	srv := &http.Server{
		Addr:              cfg.Observability.MetricsAddr,
		Handler:           newMux(handler, ready, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping worker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	worker.Stop()
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("Worker manager stopped gracefully")
}
