package optimizer

import (
	"encoding/json"

	"hermes/internal/agents"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// ExtractPrompts walks the configuration and collects each agent's
// instruction by name.
func ExtractPrompts(cfg *agents.AgentConfig) map[string]string {
	prompts := make(map[string]string)
	var walk func(c *agents.AgentConfig)
	walk = func(c *agents.AgentConfig) {
		if c == nil {
			return
		}
		if c.Name != "" && c.Instruction != "" {
			prompts[c.Name] = c.Instruction
		}
		for _, sub := range c.SubAgents {
			walk(sub)
		}
	}
	walk(cfg)
	return prompts
}

// CloneConfig deep-copies an agent configuration.
func CloneConfig(cfg *agents.AgentConfig) (*agents.AgentConfig, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to clone agent config")
	}
	var clone agents.AgentConfig
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, errors.Wrap(err, "failed to clone agent config")
	}
	return &clone, nil
}

// UpdatePrompt sets the instruction of the named agent. Returns false
// when no agent with that name exists.
func UpdatePrompt(cfg *agents.AgentConfig, agentID, newPrompt string) bool {
	if cfg == nil {
		return false
	}
	if cfg.Name == agentID {
		cfg.Instruction = newPrompt
		return true
	}
	for _, sub := range cfg.SubAgents {
		if UpdatePrompt(sub, agentID, newPrompt) {
			return true
		}
	}
	return false
}

// ApplySuggestions applies prompt suggestions to a copy of the
// configuration and returns it with the suggestions that took effect.
func ApplySuggestions(cfg *agents.AgentConfig, suggestions []PromptSuggestion, maxSuggestions int) (*agents.AgentConfig, []PromptSuggestion, error) {
	updated, err := CloneConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	if maxSuggestions > 0 && len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	log := logger.Get().With("component", "prompt_updater")

	var applied []PromptSuggestion
	for _, s := range suggestions {
		if s.AgentID == "" || s.NewPrompt == "" {
			continue
		}

		before := ExtractPrompts(updated)[s.AgentID]
		if !UpdatePrompt(updated, s.AgentID, s.NewPrompt) {
			log.Warnf("No agent named %q, skipping suggestion", s.AgentID)
			continue
		}
		if before == s.NewPrompt {
			continue
		}

		log.Infof("Updated prompt for %s: %d -> %d chars", s.AgentID, len(before), len(s.NewPrompt))
		applied = append(applied, s)
	}

	// The updated tree must still be a valid configuration.
	if err := updated.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "suggestions produced an invalid configuration")
	}

	return updated, applied, nil
}
