package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"hermes/internal/adapters/ai"
	"hermes/internal/adapters/config"
	"hermes/internal/adapters/errors/noop"
	"hermes/internal/adapters/errors/sentry"
	"hermes/internal/agents"
	"hermes/internal/api"
	"hermes/internal/api/health"
	"hermes/internal/metrics"
	"hermes/internal/tools"
	"hermes/internal/workflow"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s %s in %s mode", cfg.App.Name, version, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	metrics.Init()

	apiKey, err := config.ResolveAPIKey(cfg.AI.OpenAIKeyFile, cfg.AI.OpenAIKey)
	if err != nil {
		log.Fatalf("Failed to resolve API key: %v", err)
	}

	provider, err := ai.NewOpenAIProvider(ai.OpenAIConfig{
		APIKey:        apiKey,
		BaseURL:       cfg.AI.BaseURL,
		DefaultModel:  cfg.AI.DefaultModel,
		Temperature:   cfg.AI.Temperature,
		MaxTokens:     cfg.AI.MaxTokens,
		Timeout:       cfg.AI.Timeout,
		RatePerMinute: cfg.AI.RatePerMinute,
	})
	if err != nil {
		log.Fatalf("Failed to create AI provider: %v", err)
	}

	toolRegistry := tools.NewRegistry()
	if err := tools.RegisterAllTools(toolRegistry, tools.Options{}); err != nil {
		log.Fatalf("Failed to register tools: %v", err)
	}
	log.Infof("Registered %d tools", len(toolRegistry.List()))

	resolver := agents.NewModelResolver(
		provider,
		ai.NewLangChainFactory(apiKey, cfg.AI.BaseURL),
		cfg.Agents.UserTurnPlaceholder,
	)

	factory, err := agents.NewFactory(agents.FactoryDeps{
		ToolRegistry: toolRegistry,
		Models:       resolver,
	})
	if err != nil {
		log.Fatalf("Failed to create agent factory: %v", err)
	}

	runner := agents.NewRunner(cfg.App.Name, nil)

	store := initRunStore(cfg, log)
	db, journal := initJournal(cfg, log)
	if db != nil {
		defer db.Close()
	}

	svc, err := workflow.NewService(workflow.ServiceDeps{
		Builder:      factory,
		Runner:       runner,
		Results:      workflow.NewResultsWriter(cfg.Results.Dir),
		Store:        store,
		Journal:      journal,
		RunTimeout:   cfg.Agents.RunTimeout,
		MaxToolCalls: cfg.Agents.MaxToolCalls,
	})
	if err != nil {
		log.Fatalf("Failed to create workflow service: %v", err)
	}

	var redisClient *redis.Client
	if store != nil {
		redisClient = store.Client()
	}
	healthHandler := health.New(log, db, redisClient, cfg.App.Name, version)

	var history api.RunHistory
	if store != nil {
		history = store
	} else if journal != nil {
		history = journal
	}
	workflowHandler := api.NewWorkflowHandler(svc, history, log)

	server := api.NewServer(api.ServerConfig{
		Addr:         cfg.Server.Addr(),
		ServiceName:  cfg.App.Name,
		Version:      version,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, healthHandler, workflowHandler, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()
	log.Info(api.ServiceBanner(cfg.App.Name, version, cfg.Server.Addr()))

	waitForShutdown(cfg, server, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// initRunStore connects to Redis. The server runs without run history
// when Redis is unreachable.
func initRunStore(cfg *config.Config, log *logger.Logger) *workflow.RunStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("Redis unavailable, run history disabled: %v", err)
		_ = client.Close()
		return nil
	}

	log.Infof("Connected to Redis at %s", cfg.Redis.Addr())
	return workflow.NewRunStore(client, cfg.Redis.RunTTL)
}

// initJournal connects to PostgreSQL when configured.
func initJournal(cfg *config.Config, log *logger.Logger) (*sqlx.DB, *workflow.RunJournal) {
	if !cfg.Postgres.Enabled() {
		log.Info("PostgreSQL not configured, run journal disabled")
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Postgres.DSN())
	if err != nil {
		log.Warnf("PostgreSQL unavailable, run journal disabled: %v", err)
		return nil, nil
	}
	db.SetMaxOpenConns(cfg.Postgres.MaxConns)

	log.Infof("Connected to PostgreSQL at %s", cfg.Postgres.Host)
	return db, workflow.NewRunJournal(db)
}

func waitForShutdown(cfg *config.Config, server *api.Server, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Shutdown failed: %v", err)
	}

	if errorTracker != nil {
		if err := errorTracker.Flush(ctx); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}
