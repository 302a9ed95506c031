package optimizer

import (
	"testing"

	"hermes/internal/agents"
)

func pipelineConfig() *agents.AgentConfig {
	return &agents.AgentConfig{
		Name:  "pipeline",
		Class: agents.ClassSequential,
		SubAgents: []*agents.AgentConfig{
			{Name: "analyzer", Class: agents.ClassLLM, Model: "m", Instruction: "Analyze."},
			{Name: "summarizer", Class: agents.ClassLLM, Model: "m", Instruction: "Summarize."},
		},
	}
}

func TestExtractPrompts(t *testing.T) {
	prompts := ExtractPrompts(pipelineConfig())

	if len(prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %v", prompts)
	}
	if prompts["analyzer"] != "Analyze." || prompts["summarizer"] != "Summarize." {
		t.Errorf("unexpected prompts: %v", prompts)
	}
}

func TestUpdatePrompt(t *testing.T) {
	cfg := pipelineConfig()

	if !UpdatePrompt(cfg, "summarizer", "Summarize in three bullets.") {
		t.Fatal("expected update to succeed")
	}
	if cfg.SubAgents[1].Instruction != "Summarize in three bullets." {
		t.Errorf("instruction not updated: %+v", cfg.SubAgents[1])
	}

	if UpdatePrompt(cfg, "missing", "x") {
		t.Error("expected update for unknown agent to fail")
	}
}

func TestApplySuggestions(t *testing.T) {
	original := pipelineConfig()

	updated, applied, err := ApplySuggestions(original, []PromptSuggestion{
		{AgentID: "analyzer", NewPrompt: "Analyze line by line.", Reason: "too shallow"},
		{AgentID: "ghost", NewPrompt: "x", Reason: "unknown agent"},
		{AgentID: "summarizer", NewPrompt: "Summarize.", Reason: "unchanged"},
	}, 0)
	if err != nil {
		t.Fatalf("ApplySuggestions failed: %v", err)
	}

	if len(applied) != 1 || applied[0].AgentID != "analyzer" {
		t.Errorf("expected only the analyzer suggestion to apply, got %v", applied)
	}
	if updated.SubAgents[0].Instruction != "Analyze line by line." {
		t.Errorf("updated config missing new prompt: %+v", updated.SubAgents[0])
	}

	// Original config stays untouched
	if original.SubAgents[0].Instruction != "Analyze." {
		t.Errorf("original config was mutated: %+v", original.SubAgents[0])
	}
}

func TestApplySuggestions_MaxSuggestions(t *testing.T) {
	_, applied, err := ApplySuggestions(pipelineConfig(), []PromptSuggestion{
		{AgentID: "analyzer", NewPrompt: "A2."},
		{AgentID: "summarizer", NewPrompt: "S2."},
	}, 1)
	if err != nil {
		t.Fatalf("ApplySuggestions failed: %v", err)
	}
	if len(applied) != 1 {
		t.Errorf("expected 1 applied suggestion, got %d", len(applied))
	}
}
