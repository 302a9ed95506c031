package optimizer

import (
	"context"
	"fmt"
	"testing"

	"hermes/internal/adapters/ai"
	"hermes/internal/agents"
)

// scriptedProvider replies with canned responses in order. The critic
// and suggester alternate calls, so scripts interleave their replies.
type scriptedProvider struct {
	replies []string
	calls   int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Chat(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.calls >= len(p.replies) {
		return nil, fmt.Errorf("no scripted reply for call %d", p.calls)
	}
	reply := p.replies[p.calls]
	p.calls++
	return &ai.ChatResponse{
		Choices: []ai.Choice{{
			Message:      ai.Message{Role: ai.RoleAssistant, Content: reply},
			FinishReason: ai.FinishReasonStop,
		}},
	}, nil
}

type fakeExecutor struct {
	runs int
}

func (e *fakeExecutor) Execute(_ context.Context, cfg *agents.AgentConfig, _ string) (map[string]string, error) {
	e.runs++
	out := make(map[string]string)
	for agentID, prompt := range ExtractPrompts(cfg) {
		out[agentID] = "output under instruction: " + prompt
	}
	return out, nil
}

func criticReply(score float64) string {
	return fmt.Sprintf(`{"score": %.2f, "global_feedback": "fb", "agent_feedback": [{"agent_id": "analyzer", "issue": "vague", "evidence": "..."}]}`, score)
}

const suggesterReply = `{"suggestions": [{"agent_id": "analyzer", "new_prompt": "Analyze thoroughly.", "reason": "vague", "confidence": 0.8}]}`

func newOptimizer(replies []string, executor *fakeExecutor) *Optimizer {
	provider := &scriptedProvider{replies: replies}
	return New(executor, NewCritic(provider, "gpt-4o"), NewSuggester(provider, "gpt-4o"))
}

func TestOptimize_ConvergesOnHighScore(t *testing.T) {
	executor := &fakeExecutor{}
	opt := newOptimizer([]string{criticReply(0.95)}, executor)

	result, err := opt.Optimize(context.Background(), Input{
		AgentConfig:    pipelineConfig(),
		Query:          "review this",
		ExpectedOutput: "a thorough review",
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if !result.Converged {
		t.Errorf("expected convergence, got %+v", result)
	}
	if result.IterationsRun != 1 || executor.runs != 1 {
		t.Errorf("expected a single iteration, got %d runs", executor.runs)
	}
	if result.FinalScore != 0.95 || result.BaselineScore != 0.95 {
		t.Errorf("unexpected scores: %+v", result)
	}
}

func TestOptimize_AppliesSuggestionsAcrossIterations(t *testing.T) {
	executor := &fakeExecutor{}
	opt := newOptimizer([]string{
		criticReply(0.4), suggesterReply,
		criticReply(0.95),
	}, executor)

	result, err := opt.Optimize(context.Background(), Input{
		AgentConfig:    pipelineConfig(),
		Query:          "review this",
		ExpectedOutput: "a thorough review",
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if !result.Converged || result.IterationsRun != 2 {
		t.Fatalf("expected convergence on iteration 2, got %+v", result)
	}
	if result.BaselineScore != 0.4 || result.FinalScore != 0.95 {
		t.Errorf("unexpected scores: %+v", result)
	}

	prompts := ExtractPrompts(result.FinalConfig)
	if prompts["analyzer"] != "Analyze thoroughly." {
		t.Errorf("expected updated instruction, got %v", prompts)
	}
	if len(result.History) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(result.History))
	}
}

func TestOptimize_StopsWhenNoSuggestionsApply(t *testing.T) {
	executor := &fakeExecutor{}
	opt := newOptimizer([]string{
		criticReply(0.4),
		`{"suggestions": []}`,
	}, executor)

	result, err := opt.Optimize(context.Background(), Input{
		AgentConfig:    pipelineConfig(),
		Query:          "q",
		ExpectedOutput: "e",
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if result.Converged {
		t.Error("expected no convergence")
	}
	if result.TerminationReason != "no applicable suggestions" {
		t.Errorf("unexpected termination reason: %q", result.TerminationReason)
	}
}

func TestOptimize_PlateauDetection(t *testing.T) {
	// Suggestions must keep changing the prompt or the loop would stop
	// early for lack of applicable suggestions.
	varyingSuggestion := func(v int) string {
		return fmt.Sprintf(`{"suggestions": [{"agent_id": "analyzer", "new_prompt": "Analyze v%d.", "reason": "r", "confidence": 0.5}]}`, v)
	}

	executor := &fakeExecutor{}
	opt := newOptimizer([]string{
		criticReply(0.5), varyingSuggestion(2),
		criticReply(0.5), varyingSuggestion(3),
		criticReply(0.5), varyingSuggestion(4),
		criticReply(0.5),
	}, executor)

	input := Input{
		AgentConfig:    pipelineConfig(),
		Query:          "q",
		ExpectedOutput: "e",
		Config: Config{
			MaxIterations:        10,
			ConvergenceThreshold: 0.9,
			PlateauThreshold:     0.01,
			PlateauPatience:      3,
			Objective:            ObjectiveAccuracy,
		},
	}

	result, err := opt.Optimize(context.Background(), input)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if result.Converged {
		t.Error("expected no convergence")
	}
	if result.IterationsRun != 4 {
		t.Errorf("expected plateau stop after 4 iterations, ran %d", result.IterationsRun)
	}
	if result.TerminationReason != "score plateaued for 3 iterations" {
		t.Errorf("unexpected termination reason: %q", result.TerminationReason)
	}
}

func TestOptimize_InvalidInput(t *testing.T) {
	opt := newOptimizer(nil, &fakeExecutor{})

	if _, err := opt.Optimize(context.Background(), Input{}); err == nil {
		t.Error("expected error for missing config")
	}
	if _, err := opt.Optimize(context.Background(), Input{AgentConfig: pipelineConfig()}); err == nil {
		t.Error("expected error for missing query")
	}
}
