package agents

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"hermes/pkg/errors"
)

func intPtr(n int) *int { return &n }

func validLLMConfig() *AgentConfig {
	return &AgentConfig{
		Name:        "assistant",
		Class:       ClassLLM,
		Description: "A helpful assistant",
		Model:       "openai:gpt-4o-mini",
		Instruction: "You are a helpful assistant.",
		Tools:       []string{"get_current_time"},
	}
}

func TestValidate_ValidConfigs(t *testing.T) {
	configs := []*AgentConfig{
		validLLMConfig(),
		{
			Name:  "pipeline",
			Class: ClassSequential,
			SubAgents: []*AgentConfig{
				{Name: "step1", Class: ClassLLM, Model: "openai:gpt-4o-mini"},
				{Name: "step2", Class: ClassLLM, Instruction: "Summarize."},
			},
		},
		{
			Name:          "refiner",
			Class:         ClassLoop,
			MaxIterations: intPtr(3),
			SubAgents: []*AgentConfig{
				{Name: "critic", Class: ClassLLM, Model: "openai:gpt-4o-mini"},
			},
		},
	}

	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected %s to be valid, got %v", cfg.Name, err)
		}
	}
}

func TestValidate_UnknownClass(t *testing.T) {
	cfg := &AgentConfig{Name: "bad", Class: "MysteryAgent"}

	err := cfg.Validate()
	if !errors.Is(err, errors.ErrUnknownAgentClass) {
		t.Errorf("Expected ErrUnknownAgentClass, got %v", err)
	}
}

func TestValidate_MissingName(t *testing.T) {
	cfg := &AgentConfig{Class: ClassLLM}

	var vErr *errors.ValidationError
	if err := cfg.Validate(); !errors.As(err, &vErr) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestValidate_MaxIterationsRules(t *testing.T) {
	// Sequential agents reject max_iterations
	cfg := &AgentConfig{
		Name:          "pipeline",
		Class:         ClassSequential,
		MaxIterations: intPtr(5),
		SubAgents:     []*AgentConfig{{Name: "a", Class: ClassLLM, Model: "m"}},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected SequentialAgent with max_iterations to be rejected")
	}

	// LLM agents reject max_iterations
	bad := validLLMConfig()
	bad.MaxIterations = intPtr(2)
	if err := bad.Validate(); err == nil {
		t.Error("Expected Agent with max_iterations to be rejected")
	}

	// Loop agent accepts unset max_iterations
	loop := &AgentConfig{
		Name:      "loop",
		Class:     ClassLoop,
		SubAgents: []*AgentConfig{{Name: "a", Class: ClassLLM, Model: "m"}},
	}
	if err := loop.Validate(); err != nil {
		t.Errorf("Expected LoopAgent without max_iterations to be valid, got %v", err)
	}

	// An explicit zero means an unbounded loop and is rejected
	loop.MaxIterations = intPtr(0)
	if err := loop.Validate(); err == nil {
		t.Error("Expected LoopAgent with max_iterations=0 to be rejected")
	}

	loop.MaxIterations = intPtr(-1)
	if err := loop.Validate(); err == nil {
		t.Error("Expected LoopAgent with negative max_iterations to be rejected")
	}
}

func TestParseConfig_RejectsZeroMaxIterations(t *testing.T) {
	_, err := ParseConfig([]byte(`{
		"name": "loop",
		"class": "LoopAgent",
		"max_iterations": 0,
		"sub_agents": [{"name": "a", "class": "Agent", "model": "m"}]
	}`))

	var vErr *errors.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected validation error for max_iterations=0, got %v", err)
	}
	if vErr.Field != "max_iterations" {
		t.Errorf("Expected error on max_iterations, got %q", vErr.Field)
	}
}

func TestValidate_CompositeRejectsTools(t *testing.T) {
	cfg := &AgentConfig{
		Name:      "pipeline",
		Class:     ClassParallel,
		Tools:     []string{"calculator"},
		SubAgents: []*AgentConfig{{Name: "a", Class: ClassLLM, Model: "m"}},
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Expected composite with tools to be rejected")
	}
}

func TestValidate_NestedError(t *testing.T) {
	cfg := &AgentConfig{
		Name:  "root",
		Class: ClassSequential,
		SubAgents: []*AgentConfig{
			{Name: "good", Class: ClassLLM, Model: "m"},
			{Name: "bad", Class: "NotAClass"},
		},
	}

	if err := cfg.Validate(); !errors.Is(err, errors.ErrUnknownAgentClass) {
		t.Errorf("Expected nested class error, got %v", err)
	}
}

func TestLint_Warnings(t *testing.T) {
	cfg := &AgentConfig{
		Name:  "root",
		Class: ClassSequential,
		SubAgents: []*AgentConfig{
			{Name: "twin", Class: ClassLLM, Model: "m"},
			{Name: "twin", Class: ClassLLM, Model: "m"},
			{Name: "hollow", Class: ClassLLM},
			{Name: "empty", Class: ClassParallel},
		},
	}

	warnings := cfg.Lint()

	assertWarning := func(substr string) {
		t.Helper()
		for _, w := range warnings {
			if strings.Contains(w, substr) {
				return
			}
		}
		t.Errorf("Expected warning containing %q, got %v", substr, warnings)
	}

	assertWarning(`Duplicate agent name "twin"`)
	assertWarning("neither model nor instruction")
	assertWarning("has no sub-agents")
}

func TestLint_DeepNesting(t *testing.T) {
	leaf := &AgentConfig{Name: "leaf", Class: ClassLLM, Model: "m"}
	cfg := leaf
	for i := 0; i < 7; i++ {
		cfg = &AgentConfig{
			Name:      "level",
			Class:     ClassSequential,
			SubAgents: []*AgentConfig{cfg},
		}
	}

	warnings := cfg.Lint()
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "Deep nesting") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected deep nesting warning, got %v", warnings)
	}
}

func TestLint_CleanConfig(t *testing.T) {
	if warnings := validLLMConfig().Lint(); len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestParseConfig_DefaultsClass(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"name": "simple", "model": "openai:gpt-4o-mini"}`))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.Class != ClassLLM {
		t.Errorf("Expected class to default to Agent, got %q", cfg.Class)
	}
}

func TestParseConfig_InvalidJSON(t *testing.T) {
	if _, err := ParseConfig([]byte(`{not json`)); err == nil {
		t.Error("Expected parse error")
	}
}

func TestSaveAndLoadConfig_RoundTrip(t *testing.T) {
	cfg := &AgentConfig{
		Name:        "workflow",
		Class:       ClassSequential,
		Description: "Code review workflow",
		SubAgents: []*AgentConfig{
			{
				Name:        "analyzer",
				Class:       ClassLLM,
				Model:       "openai:gpt-4o-mini",
				Instruction: "Analyze the code.",
				OutputKey:   "analysis",
				Tools:       []string{"get_current_time"},
			},
			{
				Name:          "refinement",
				Class:         ClassLoop,
				MaxIterations: intPtr(2),
				SubAgents: []*AgentConfig{
					{Name: "critic", Class: ClassLLM, Instruction: "Critique the analysis."},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "workflow.json")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want, _ := json.Marshal(cfg)
	got, _ := json.Marshal(loaded)
	if string(want) != string(got) {
		t.Errorf("Round trip mismatch:\nwant %s\ngot  %s", want, got)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
