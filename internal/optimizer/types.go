// Package optimizer iteratively improves agent instructions: it runs the
// workflow against reference input/output pairs, has a critic model score
// the result, and applies suggested prompt changes until the score
// converges or plateaus.
package optimizer

import (
	"hermes/internal/agents"
)

// Objective selects what the critic optimizes for.
type Objective string

const (
	ObjectiveAccuracy             Objective = "accuracy"
	ObjectiveFluency              Objective = "fluency"
	ObjectiveFactuality           Objective = "factuality"
	ObjectiveInstructionFollowing Objective = "instruction-following"
)

// AgentTrace captures one agent's contribution to a workflow run.
type AgentTrace struct {
	AgentID string `json:"agent_id"`
	Output  string `json:"output"`
	Prompt  string `json:"prompt"`
}

// WorkflowTrace is the per-agent view of a full workflow run.
type WorkflowTrace struct {
	AgentTraces map[string]AgentTrace `json:"agent_traces"`
	FinalOutput string                `json:"final_output"`
}

// AgentFeedback is the critic's feedback for one agent.
type AgentFeedback struct {
	AgentID      string `json:"agent_id"`
	Issue        string `json:"issue"`
	Evidence     string `json:"evidence"`
	SuggestedFix string `json:"suggested_fix,omitempty"`
}

// EvaluationResult is the critic's verdict on a run.
type EvaluationResult struct {
	Score          float64         `json:"score"`
	GlobalFeedback string          `json:"global_feedback"`
	AgentFeedback  []AgentFeedback `json:"agent_feedback,omitempty"`
}

// PromptSuggestion proposes a new instruction for an agent.
type PromptSuggestion struct {
	AgentID    string  `json:"agent_id"`
	NewPrompt  string  `json:"new_prompt"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// Config bounds the optimization loop.
type Config struct {
	MaxIterations        int
	ConvergenceThreshold float64
	PlateauThreshold     float64
	PlateauPatience      int
	MaxSuggestions       int
	Objective            Objective
}

// DefaultConfig mirrors the loop bounds used in production runs.
func DefaultConfig() Config {
	return Config{
		MaxIterations:        5,
		ConvergenceThreshold: 0.9,
		PlateauThreshold:     0.01,
		PlateauPatience:      3,
		MaxSuggestions:       3,
		Objective:            ObjectiveAccuracy,
	}
}

// Iteration records one pass of the loop.
type Iteration struct {
	Iteration   int                `json:"iteration"`
	Score       float64            `json:"score"`
	Evaluation  *EvaluationResult  `json:"evaluation,omitempty"`
	Applied     []PromptSuggestion `json:"applied,omitempty"`
	Suggestions []PromptSuggestion `json:"suggestions,omitempty"`
}

// Result is the final outcome of an optimization.
type Result struct {
	FinalScore        float64             `json:"final_score"`
	BaselineScore     float64             `json:"baseline_score"`
	IterationsRun     int                 `json:"iterations_run"`
	Converged         bool                `json:"converged"`
	TerminationReason string              `json:"termination_reason"`
	FinalConfig       *agents.AgentConfig `json:"final_config"`
	History           []Iteration         `json:"history"`
}

// Input is what the optimizer needs to run.
type Input struct {
	AgentConfig    *agents.AgentConfig
	Query          string
	ExpectedOutput string
	Config         Config
}
