package optimizer

import (
	"sort"
	"strings"

	"hermes/internal/agents"
)

// BuildTrace assembles a workflow trace from per-agent responses and the
// configuration that produced them.
func BuildTrace(executionResults map[string]string, cfg *agents.AgentConfig) WorkflowTrace {
	prompts := ExtractPrompts(cfg)

	trace := WorkflowTrace{AgentTraces: make(map[string]AgentTrace)}

	agentIDs := make([]string, 0, len(executionResults))
	for agentID := range executionResults {
		agentIDs = append(agentIDs, agentID)
	}
	sort.Strings(agentIDs)

	var outputs []string
	for _, agentID := range agentIDs {
		output := executionResults[agentID]
		trace.AgentTraces[agentID] = AgentTrace{
			AgentID: agentID,
			Output:  output,
			Prompt:  prompts[agentID],
		}
		outputs = append(outputs, output)
	}

	trace.FinalOutput = strings.Join(outputs, "\n\n")
	return trace
}
