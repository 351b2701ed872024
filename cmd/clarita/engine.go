package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/clarita-pm/clarita"
	"github.com/clarita-pm/clarita/internal/config"
	"github.com/clarita-pm/clarita/internal/logging"
	"github.com/clarita-pm/clarita/internal/metrics"
	"github.com/clarita-pm/clarita/pkg/adapters/openai"
	redisAdapter "github.com/clarita-pm/clarita/pkg/adapters/redis"
	"github.com/clarita-pm/clarita/pkg/workflow"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug || cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// buildEngine assembles an engine from config: Redis store and locker when
// an address is configured, LLM extractor when endpoint credentials exist,
// memory and the offline parser otherwise.
func buildEngine(cfg config.Config, logger *slog.Logger, withMetrics bool) *clarita.Engine {
	opts := []clarita.Option{clarita.WithLogger(logger)}

	if cfg.Redis.Address != "" {
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		var storeOpts []redisAdapter.Option
		if cfg.Redis.Prefix != "" {
			storeOpts = append(storeOpts, redisAdapter.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			storeOpts = append(storeOpts, redisAdapter.WithTTL(cfg.Redis.TTL))
		}

		opts = append(opts,
			clarita.WithStore(redisAdapter.NewFromClient(client, storeOpts...)),
			clarita.WithLocker(redisAdapter.NewLocker(client, "clarita:")),
		)
		logger.Info("using redis session store", "address", cfg.Redis.Address)
	}

	if cfg.Extractor.BaseURL != "" || cfg.Extractor.APIKey != "" {
		opts = append(opts, clarita.WithExtractor(openai.New(openai.Config{
			BaseURL: cfg.Extractor.BaseURL,
			APIKey:  cfg.Extractor.APIKey,
			Model:   cfg.Extractor.Model,
			Timeout: cfg.Extractor.Timeout,
		})))
		logger.Info("using llm extractor", "model", cfg.Extractor.Model)
	} else {
		opts = append(opts, clarita.WithExtractor(workflow.OfflineExtractor{}))
		logger.Info("using offline extractor")
	}

	if cfg.TickBudget > 0 {
		opts = append(opts, clarita.WithTickBudget(cfg.TickBudget))
	}
	if cfg.MaxRounds > 0 {
		opts = append(opts, clarita.WithMaxRounds(cfg.MaxRounds))
	}

	if withMetrics {
		collector := metrics.NewCollector(prometheus.DefaultRegisterer)
		opts = append(opts, clarita.WithLifecycleHooks(collector.Hooks()))
	}

	return clarita.New(opts...)
}
