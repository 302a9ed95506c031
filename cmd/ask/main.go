// Command ask sends a one-shot prompt to the configured chat provider.
// Useful for verifying credentials and gateway configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"hermes/internal/adapters/ai"
	"hermes/internal/adapters/config"
	"hermes/pkg/logger"
)

func main() {
	var (
		model       = flag.String("model", "", "model name (defaults to DEFAULT_MODEL)")
		keyFile     = flag.String("key-file", "", "file containing the API key (overrides env)")
		system      = flag.String("system", "", "optional system prompt")
		temperature = flag.Float64("temperature", -1, "sampling temperature (negative keeps config default)")
	)
	flag.Parse()

	if err := logger.Init("warn", "development"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.Get()

	prompt := strings.Join(flag.Args(), " ")
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "usage: ask [flags] <prompt>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	keyFilePath := cfg.AI.OpenAIKeyFile
	if *keyFile != "" {
		keyFilePath = *keyFile
	}
	apiKey, err := config.ResolveAPIKey(keyFilePath, cfg.AI.OpenAIKey)
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
		log.Fatalf("Failed to create provider: %v", err)
	}

	req := ai.ChatRequest{
		Model: *model,
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: prompt},
		},
	}
	if *system != "" {
		req.Messages = append([]ai.Message{{Role: ai.RoleSystem, Content: *system}}, req.Messages...)
	}
	if *temperature >= 0 {
		req.Temperature = *temperature
	}

	resp, err := provider.Chat(context.Background(), req)
	if err != nil {
		log.Fatalf("Chat failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		log.Fatal("Model returned no choices")
	}

	fmt.Println(resp.Choices[0].Message.Content)
	if resp.Usage.TotalTokens > 0 {
		fmt.Fprintf(os.Stderr, "\n[%s: %d prompt + %d completion = %d tokens]\n",
			resp.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	}
}
