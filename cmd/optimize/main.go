// Command optimize iteratively tunes agent instructions against a
// reference input/expected-output pair and writes the improved
// configuration back to disk.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"hermes/internal/adapters/ai"
	"hermes/internal/adapters/config"
	"hermes/internal/agents"
	"hermes/internal/metrics"
	"hermes/internal/optimizer"
	"hermes/internal/tools"
	"hermes/internal/workflow"
	"hermes/pkg/logger"
)

func main() {
	var (
		agentPath    = flag.String("agent", "", "path to agent config JSON")
		inputPath    = flag.String("input", "", "path to the input file fed to the workflow")
		expectedPath = flag.String("expected", "", "path to the expected output file")
		outPath      = flag.String("out", "", "where to write the optimized config (default: overwrite -agent)")
		criticModel  = flag.String("critic-model", "", "model for critic and suggester (defaults to DEFAULT_MODEL)")
		iterations   = flag.Int("iterations", 5, "maximum optimization iterations")
		objective    = flag.String("objective", string(optimizer.ObjectiveAccuracy), "optimization objective")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.Get()

	if *agentPath == "" || *inputPath == "" || *expectedPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	metrics.Init()

	agentCfg, err := agents.LoadConfig(*agentPath)
	if err != nil {
		log.Fatalf("Failed to load agent config: %v", err)
	}

	query, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	expected, err := os.ReadFile(*expectedPath)
	if err != nil {
		log.Fatalf("Failed to read expected output: %v", err)
	}

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

	factory, err := agents.NewFactory(agents.FactoryDeps{
		ToolRegistry: toolRegistry,
		Models: agents.NewModelResolver(
			provider,
			ai.NewLangChainFactory(apiKey, cfg.AI.BaseURL),
			cfg.Agents.UserTurnPlaceholder,
		),
	})
	if err != nil {
		log.Fatalf("Failed to create agent factory: %v", err)
	}

	svc, err := workflow.NewService(workflow.ServiceDeps{
		Builder:      factory,
		Runner:       agents.NewRunner(cfg.App.Name, nil),
		Results:      workflow.NewResultsWriter(cfg.Results.Dir),
		RunTimeout:   cfg.Agents.RunTimeout,
		MaxToolCalls: cfg.Agents.MaxToolCalls,
	})
	if err != nil {
		log.Fatalf("Failed to create workflow service: %v", err)
	}

	model := *criticModel
	if model == "" {
		model = cfg.AI.DefaultModel
	}

	opt := optimizer.New(
		optimizer.NewServiceExecutor(svc),
		optimizer.NewCritic(provider, model),
		optimizer.NewSuggester(provider, model),
	)

	optCfg := optimizer.DefaultConfig()
	optCfg.MaxIterations = *iterations
	optCfg.Objective = optimizer.Objective(*objective)

	result, err := opt.Optimize(context.Background(), optimizer.Input{
		AgentConfig:    agentCfg,
		Query:          string(query),
		ExpectedOutput: string(expected),
		Config:         optCfg,
	})
	if err != nil {
		log.Fatalf("Optimization failed: %v", err)
	}

	target := *outPath
	if target == "" {
		target = *agentPath
	}
	if err := agents.SaveConfig(result.FinalConfig, target); err != nil {
		log.Fatalf("Failed to save optimized config: %v", err)
	}

	fmt.Println("============================================================")
	fmt.Println("Optimization Result")
	fmt.Println("============================================================")
	fmt.Printf("Baseline score:  %.4f\n", result.BaselineScore)
	fmt.Printf("Final score:     %.4f\n", result.FinalScore)
	fmt.Printf("Iterations:      %d\n", result.IterationsRun)
	fmt.Printf("Converged:       %t\n", result.Converged)
	fmt.Printf("Stopped because: %s\n", result.TerminationReason)
	fmt.Printf("Config saved to: %s\n", target)

	if history, err := json.MarshalIndent(result.History, "", "  "); err == nil {
		log.Debugf("Optimization history:\n%s", history)
	}
}
