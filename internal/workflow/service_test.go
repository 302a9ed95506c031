package workflow

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"google.golang.org/adk/agent"

	"hermes/internal/agents"
)

type stubBuilder struct {
	err error
}

func (b stubBuilder) CreateAgent(cfg *agents.AgentConfig) (agent.Agent, error) {
	return nil, b.err
}

type stubRunner struct {
	lastInput agents.RunInput
	output    *agents.RunOutput
	err       error
}

func (r *stubRunner) Run(_ context.Context, _ agent.Agent, input agents.RunInput) (*agents.RunOutput, error) {
	r.lastInput = input
	if r.err != nil {
		return nil, r.err
	}
	return r.output, nil
}

func validRequest() *Request {
	return &Request{
		JobConfig: JobConfig{
			JobName: "code_review",
			InputConfig: InputConfig{
				Language:    "Go",
				FileName:    "main.go",
				CodeContent: "package main",
			},
		},
		AgentConfig: json.RawMessage(`{
			"name": "reviewer",
			"class": "Agent",
			"model": "openai:gpt-4o-mini",
			"instruction": "Review the code."
		}`),
	}
}

func newTestService(t *testing.T, runner *stubRunner) *Service {
	t.Helper()

	svc, err := NewService(ServiceDeps{
		Builder: stubBuilder{},
		Runner:  runner,
		Results: NewResultsWriter(t.TempDir()),
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestService_Run(t *testing.T) {
	runner := &stubRunner{
		output: &agents.RunOutput{
			FinalResponse:   "Looks good.",
			EventsGenerated: 4,
			InputTokens:     100,
			OutputTokens:    50,
			Trace: []agents.Message{
				{Role: "user", Content: "q"},
				{Role: "assistant", Author: "reviewer", Content: "Looks good."},
			},
		},
	}
	svc := newTestService(t, runner)

	resp := svc.Run(context.Background(), validRequest())

	if resp.Status != StatusCompleted {
		t.Fatalf("expected completed, got %+v", resp)
	}
	if resp.EventsGenerated != 4 {
		t.Errorf("expected 4 events, got %d", resp.EventsGenerated)
	}
	if resp.ExecutionResults["reviewer"] != "Looks good." {
		t.Errorf("unexpected execution results: %v", resp.ExecutionResults)
	}
	if resp.OutputFile == "" || resp.JSONFile == "" {
		t.Errorf("expected result files, got %+v", resp)
	}
	if !strings.Contains(runner.lastInput.Query, "package main") {
		t.Errorf("expected synthesized query to carry the code, got %q", runner.lastInput.Query)
	}
	if !strings.Contains(runner.lastInput.Query, "main.go") {
		t.Errorf("expected synthesized query to name the file, got %q", runner.lastInput.Query)
	}
}

func TestService_Run_PassesToolCallBudget(t *testing.T) {
	runner := &stubRunner{output: &agents.RunOutput{FinalResponse: "ok"}}

	svc, err := NewService(ServiceDeps{
		Builder:      stubBuilder{},
		Runner:       runner,
		Results:      NewResultsWriter(t.TempDir()),
		MaxToolCalls: 7,
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	svc.Run(context.Background(), validRequest())

	if runner.lastInput.MaxToolCalls != 7 {
		t.Errorf("expected tool call budget 7, got %d", runner.lastInput.MaxToolCalls)
	}
}

func TestService_Run_InvalidAgentConfig(t *testing.T) {
	svc := newTestService(t, &stubRunner{output: &agents.RunOutput{}})

	req := validRequest()
	req.AgentConfig = json.RawMessage(`{"name": "bad", "class": "NotAClass"}`)

	resp := svc.Run(context.Background(), req)
	if resp.Status != StatusFailed {
		t.Fatalf("expected failed, got %+v", resp)
	}
	if !strings.Contains(resp.ErrorMessage, "invalid agent configuration") {
		t.Errorf("unexpected error message: %q", resp.ErrorMessage)
	}
}

func TestService_Run_MissingAgentConfig(t *testing.T) {
	svc := newTestService(t, &stubRunner{output: &agents.RunOutput{}})

	req := validRequest()
	req.AgentConfig = nil

	if resp := svc.Run(context.Background(), req); resp.Status != StatusFailed {
		t.Fatalf("expected failed, got %+v", resp)
	}
}

func TestService_Run_MissingInput(t *testing.T) {
	svc := newTestService(t, &stubRunner{output: &agents.RunOutput{}})

	req := validRequest()
	req.JobConfig.InputConfig.CodeContent = ""
	req.JobConfig.InputConfig.InputFile = ""

	resp := svc.Run(context.Background(), req)
	if resp.Status != StatusFailed {
		t.Fatalf("expected failed, got %+v", resp)
	}
	if !strings.Contains(resp.ErrorMessage, "code_content or input_file") {
		t.Errorf("unexpected error message: %q", resp.ErrorMessage)
	}
}

func TestService_Run_RunnerFailure(t *testing.T) {
	svc := newTestService(t, &stubRunner{err: context.DeadlineExceeded})

	resp := svc.Run(context.Background(), validRequest())
	if resp.Status != StatusFailed {
		t.Fatalf("expected failed, got %+v", resp)
	}
	// Internal failure details stay out of the response
	if resp.ErrorMessage != "workflow execution failed" {
		t.Errorf("unexpected error message: %q", resp.ErrorMessage)
	}
}

func TestService_Run_LintWarningsSurface(t *testing.T) {
	runner := &stubRunner{output: &agents.RunOutput{FinalResponse: "ok"}}
	svc := newTestService(t, runner)

	req := validRequest()
	req.AgentConfig = json.RawMessage(`{
		"name": "pipeline",
		"class": "SequentialAgent",
		"sub_agents": [
			{"name": "twin", "class": "Agent", "model": "m"},
			{"name": "twin", "class": "Agent", "model": "m"}
		]
	}`)

	resp := svc.Run(context.Background(), req)
	if resp.Status != StatusCompleted {
		t.Fatalf("expected completed, got %+v", resp)
	}
	if len(resp.Warnings) == 0 {
		t.Error("expected lint warnings in response")
	}
}
