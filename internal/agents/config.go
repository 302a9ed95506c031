package agents

import (
	"fmt"

	"hermes/pkg/errors"
)

// AgentClass identifies which kind of agent a config describes.
type AgentClass string

const (
	// ClassLLM is a single LLM-backed agent.
	ClassLLM AgentClass = "Agent"
	// ClassSequential runs its sub-agents one after another.
	ClassSequential AgentClass = "SequentialAgent"
	// ClassParallel runs its sub-agents concurrently.
	ClassParallel AgentClass = "ParallelAgent"
	// ClassLoop repeats its sub-agents up to max_iterations times.
	ClassLoop AgentClass = "LoopAgent"
)

// validClasses is the whitelist of supported agent classes.
var validClasses = map[AgentClass]bool{
	ClassLLM:        true,
	ClassSequential: true,
	ClassParallel:   true,
	ClassLoop:       true,
}

// AgentConfig is the JSON model describing an agent hierarchy. A config
// with class "Agent" describes a leaf LLM agent; the composite classes
// describe workflow agents over their sub_agents.
type AgentConfig struct {
	Name        string     `json:"name"`
	Class       AgentClass `json:"class"`
	Description string     `json:"description,omitempty"`

	// LLM agent fields
	Model       string   `json:"model,omitempty"` // e.g. "openai:gpt-4o"
	Instruction string   `json:"instruction,omitempty"`
	OutputKey   string   `json:"output_key,omitempty"`
	Tools       []string `json:"tools,omitempty"`

	// Composite agent fields. MaxIterations is a pointer so an explicit
	// zero in the document is rejected rather than read as "unset".
	SubAgents     []*AgentConfig `json:"sub_agents,omitempty"`
	MaxIterations *int           `json:"max_iterations,omitempty"` // LoopAgent only
}

// IsComposite reports whether the class is a workflow agent over sub-agents.
func (c *AgentConfig) IsComposite() bool {
	return c.Class == ClassSequential || c.Class == ClassParallel || c.Class == ClassLoop
}

// Validate checks the config tree for structural errors. Warnings about
// suspicious but legal configs come from Lint.
func (c *AgentConfig) Validate() error {
	return c.validate("")
}

func (c *AgentConfig) validate(path string) error {
	current := c.Name
	if path != "" {
		current = path + "." + c.Name
	}

	if c.Name == "" {
		return errors.NewValidationError("name", "agent name is required", path)
	}

	if !validClasses[c.Class] {
		return errors.Wrapf(errors.ErrUnknownAgentClass,
			"agent %s: class must be one of Agent, SequentialAgent, ParallelAgent, LoopAgent, got %q",
			current, c.Class)
	}

	switch c.Class {
	case ClassLoop:
		if c.MaxIterations != nil && *c.MaxIterations < 1 {
			return errors.NewValidationError("max_iterations", "must be a positive integer", *c.MaxIterations)
		}
	case ClassSequential, ClassParallel:
		if c.MaxIterations != nil {
			return errors.NewValidationError("max_iterations",
				fmt.Sprintf("%s does not support max_iterations", c.Class), *c.MaxIterations)
		}
	case ClassLLM:
		if c.MaxIterations != nil {
			return errors.NewValidationError("max_iterations", "Agent does not support max_iterations", *c.MaxIterations)
		}
		if len(c.SubAgents) > 0 {
			return errors.NewValidationError("sub_agents", "Agent does not support sub_agents", c.Name)
		}
	}

	if c.IsComposite() && len(c.Tools) > 0 {
		return errors.NewValidationError("tools",
			fmt.Sprintf("%s does not support tools", c.Class), c.Tools)
	}

	for _, sub := range c.SubAgents {
		if err := sub.validate(current); err != nil {
			return err
		}
	}

	return nil
}

// maxLintDepth is the nesting depth beyond which hierarchies get flagged.
const maxLintDepth = 5

// Lint walks the hierarchy and returns warnings for configurations that
// are legal but usually mistakes.
func (c *AgentConfig) Lint() []string {
	var warnings []string
	c.lint(0, "", &warnings)
	return warnings
}

func (c *AgentConfig) lint(depth int, path string, warnings *[]string) {
	current := c.Name
	if path != "" {
		current = path + "." + c.Name
	}

	if depth > maxLintDepth {
		*warnings = append(*warnings, fmt.Sprintf("Deep nesting detected at %s (depth: %d)", current, depth))
	}

	if c.Class == ClassLLM && c.Model == "" && c.Instruction == "" {
		*warnings = append(*warnings, fmt.Sprintf("Agent %s has neither model nor instruction", current))
	}

	if c.IsComposite() && len(c.SubAgents) == 0 {
		*warnings = append(*warnings, fmt.Sprintf("Composite agent %s has no sub-agents", current))
	}

	seen := map[string]bool{}
	for _, sub := range c.SubAgents {
		if seen[sub.Name] {
			*warnings = append(*warnings, fmt.Sprintf("Duplicate agent name %q at %s", sub.Name, current))
		}
		seen[sub.Name] = true
		sub.lint(depth+1, current, warnings)
	}
}
