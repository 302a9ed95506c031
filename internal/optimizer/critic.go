package optimizer

import (
	"context"
	"fmt"
	"strings"

	"hermes/internal/adapters/ai"
	"hermes/pkg/logger"
)

var criticObjectives = map[Objective]string{
	ObjectiveAccuracy:             "how accurately the actual output matches the expected output in content and conclusions",
	ObjectiveFluency:              "how fluent, clear and well-structured the actual output is",
	ObjectiveFactuality:           "whether every claim in the actual output is factually supported",
	ObjectiveInstructionFollowing: "how closely each agent followed its instruction",
}

const criticSystemPrompt = `You are a strict evaluator of multi-agent workflow outputs.
Score the actual output between 0.0 and 1.0 and give concrete, evidence-backed feedback.
Respond with a single JSON object:
{
  "score": <float 0.0-1.0>,
  "global_feedback": "<overall assessment>",
  "agent_feedback": [
    {"agent_id": "<name>", "issue": "<problem>", "evidence": "<quote>", "suggested_fix": "<optional>"}
  ]
}`

// Critic scores workflow outputs against expected outputs using a model.
type Critic struct {
	provider ai.ChatProvider
	model    string
	log      *logger.Logger
}

// NewCritic creates a critic backed by the given provider and model.
func NewCritic(provider ai.ChatProvider, model string) *Critic {
	return &Critic{
		provider: provider,
		model:    model,
		log:      logger.Get().With("component", "optimizer_critic"),
	}
}

// Evaluate compares actual and expected output under the objective and
// returns a scored result. A zero-score result with the failure in
// GlobalFeedback is returned when the model reply cannot be parsed.
func (c *Critic) Evaluate(ctx context.Context, actual, expected string, objective Objective, trace WorkflowTrace) (*EvaluationResult, error) {
	focus, ok := criticObjectives[objective]
	if !ok {
		focus = criticObjectives[ObjectiveAccuracy]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Evaluate %s.\n\n", focus)
	fmt.Fprintf(&b, "EXPECTED OUTPUT:\n%s\n\n", expected)
	fmt.Fprintf(&b, "ACTUAL OUTPUT:\n%s\n", actual)

	if len(trace.AgentTraces) > 0 {
		b.WriteString("\nPER-AGENT OUTPUTS:\n")
		for _, at := range trace.AgentTraces {
			fmt.Fprintf(&b, "--- %s (instruction: %s)\n%s\n", at.AgentID, at.Prompt, at.Output)
		}
	}

	reply, err := askModel(ctx, c.provider, c.model, criticSystemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	var result EvaluationResult
	if err := decodeJSONReply(reply, &result); err != nil {
		c.log.Warnf("Critic reply was not parseable: %v", err)
		return &EvaluationResult{
			Score:          0,
			GlobalFeedback: "evaluation failed: unparseable critic reply",
		}, nil
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 1 {
		result.Score = 1
	}

	return &result, nil
}
