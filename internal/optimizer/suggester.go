package optimizer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hermes/internal/adapters/ai"
	"hermes/pkg/logger"
)

const suggesterSystemPrompt = `You improve instructions for agents in a multi-agent workflow.
Given the current instructions and the evaluator's feedback, propose rewritten
instructions only for agents that need them. Keep each instruction focused and concrete.
Respond with a single JSON object:
{
  "suggestions": [
    {"agent_id": "<name>", "new_prompt": "<full replacement instruction>", "reason": "<why>", "confidence": <float 0.0-1.0>}
  ]
}`

// Suggester turns critic feedback into prompt rewrite suggestions.
type Suggester struct {
	provider ai.ChatProvider
	model    string
	log      *logger.Logger
}

// NewSuggester creates a suggester backed by the given provider and model.
func NewSuggester(provider ai.ChatProvider, model string) *Suggester {
	return &Suggester{
		provider: provider,
		model:    model,
		log:      logger.Get().With("component", "optimizer_suggester"),
	}
}

// Suggest proposes new instructions based on the evaluation. Agents the
// model does not mention keep their current instructions.
func (s *Suggester) Suggest(ctx context.Context, eval *EvaluationResult, prompts map[string]string) ([]PromptSuggestion, error) {
	var b strings.Builder

	b.WriteString("CURRENT AGENT INSTRUCTIONS:\n")
	agentIDs := make([]string, 0, len(prompts))
	for agentID := range prompts {
		agentIDs = append(agentIDs, agentID)
	}
	sort.Strings(agentIDs)
	for _, agentID := range agentIDs {
		fmt.Fprintf(&b, "--- %s\n%s\n", agentID, prompts[agentID])
	}

	fmt.Fprintf(&b, "\nEVALUATION (score %.2f):\n%s\n", eval.Score, eval.GlobalFeedback)
	for _, fb := range eval.AgentFeedback {
		fmt.Fprintf(&b, "- %s: %s (evidence: %s)\n", fb.AgentID, fb.Issue, fb.Evidence)
		if fb.SuggestedFix != "" {
			fmt.Fprintf(&b, "  suggested fix: %s\n", fb.SuggestedFix)
		}
	}

	reply, err := askModel(ctx, s.provider, s.model, suggesterSystemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Suggestions []PromptSuggestion `json:"suggestions"`
	}
	if err := decodeJSONReply(reply, &parsed); err != nil {
		s.log.Warnf("Suggester reply was not parseable: %v", err)
		return nil, nil
	}

	// Drop suggestions for agents that do not exist
	var valid []PromptSuggestion
	for _, sg := range parsed.Suggestions {
		if _, ok := prompts[sg.AgentID]; !ok {
			s.log.Warnf("Dropping suggestion for unknown agent %q", sg.AgentID)
			continue
		}
		valid = append(valid, sg)
	}

	return valid, nil
}
