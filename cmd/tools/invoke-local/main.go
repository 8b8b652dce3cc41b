// cmd/tools/invoke-local/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"websearch-action/internal/common/config"
	"websearch-action/internal/common/logger"
	searchweb "websearch-action/internal/workers/agent/search-web"
)

func main() {
	var (
		eventPath  = flag.String("event", "test_event.json", "Path to the event JSON file")
		configPath = flag.String("config", "", "Config file (default: configs/config.yaml lookup)")
		raw        = flag.Bool("raw", false, "Print the full HTTP result instead of the summary text")
		static     = flag.Bool("static", false, "Use the static searcher instead of the network")
		logLevel   = flag.String("log-level", "warn", "Log level for adapter logs (written to stderr)")
	)
	flag.Parse()

	if err := run(*eventPath, *configPath, *raw, *static, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(eventPath, configPath string, raw, static bool, logLevel string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if static {
		cfg.Search.Provider = config.ProviderStatic
	}

	body, err := os.ReadFile(eventPath)
	if err != nil {
		return fmt.Errorf("read event: %w", err)
	}

	log := logger.NewStructured(logLevel, "console", "stderr")
	ctx := searchweb.WithTransport(context.Background(), searchweb.TransportLocal)

	handler := searchweb.NewHandlerFromConfig(ctx, cfg, searchweb.AWSSecretLookup, log, nil)
	result := handler.HandleRaw(ctx, body)

	if raw {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	var env searchweb.ResponseEnvelope
	if err := json.Unmarshal([]byte(result.Body), &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	fmt.Println(env.Text())
	return nil
}
