package agents

import (
	"fmt"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/agent/workflowagents/loopagent"
	"google.golang.org/adk/agent/workflowagents/parallelagent"
	"google.golang.org/adk/agent/workflowagents/sequentialagent"
	adkmodel "google.golang.org/adk/model"
	adktool "google.golang.org/adk/tool"

	"hermes/internal/tools"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// ModelSource resolves model references from configs to ADK models.
type ModelSource interface {
	Resolve(ref string) (adkmodel.LLM, error)
}

// FactoryDeps gathers external dependencies needed to instantiate agents.
type FactoryDeps struct {
	ToolRegistry *tools.Registry
	Models       ModelSource
}

// Factory builds ADK agents from validated configs.
type Factory struct {
	toolRegistry *tools.Registry
	models       ModelSource
	log          *logger.Logger
}

// NewFactory builds an agent factory with required dependencies.
func NewFactory(deps FactoryDeps) (*Factory, error) {
	if deps.ToolRegistry == nil {
		return nil, fmt.Errorf("tool registry is required")
	}
	if deps.Models == nil {
		return nil, fmt.Errorf("model source is required")
	}

	return &Factory{
		toolRegistry: deps.ToolRegistry,
		models:       deps.Models,
		log:          logger.Get().With("component", "agent_factory"),
	}, nil
}

// CreateAgent constructs the full agent hierarchy described by a config.
func (f *Factory) CreateAgent(cfg *AgentConfig) (agent.Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return f.build(cfg)
}

func (f *Factory) build(cfg *AgentConfig) (agent.Agent, error) {
	switch cfg.Class {
	case ClassLLM:
		return f.buildLLMAgent(cfg)
	case ClassSequential, ClassParallel, ClassLoop:
		return f.buildCompositeAgent(cfg)
	default:
		return nil, errors.Wrapf(errors.ErrUnknownAgentClass, "agent %s: %q", cfg.Name, cfg.Class)
	}
}

func (f *Factory) buildLLMAgent(cfg *AgentConfig) (agent.Agent, error) {
	llmModel, err := f.models.Resolve(cfg.Model)
	if err != nil {
		return nil, errors.Wrapf(err, "agent %s", cfg.Name)
	}

	agentTools := make([]adktool.Tool, 0, len(cfg.Tools))
	for _, toolName := range cfg.Tools {
		t, ok := f.toolRegistry.Get(toolName)
		if !ok {
			return nil, errors.Wrapf(errors.ErrUnknownTool, "agent %s: tool %q", cfg.Name, toolName)
		}
		agentTools = append(agentTools, t)
	}

	return llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Description: cfg.Description,
		Model:       llmModel,
		Tools:       agentTools,
		Instruction: cfg.Instruction,
		OutputKey:   cfg.OutputKey,
	})
}

func (f *Factory) buildCompositeAgent(cfg *AgentConfig) (agent.Agent, error) {
	subAgents := make([]agent.Agent, 0, len(cfg.SubAgents))
	for _, subCfg := range cfg.SubAgents {
		sub, err := f.build(subCfg)
		if err != nil {
			return nil, err
		}
		subAgents = append(subAgents, sub)
	}

	agentCfg := agent.Config{
		Name:        cfg.Name,
		Description: cfg.Description,
		SubAgents:   subAgents,
	}

	switch cfg.Class {
	case ClassSequential:
		return sequentialagent.New(sequentialagent.Config{AgentConfig: agentCfg})
	case ClassParallel:
		return parallelagent.New(parallelagent.Config{AgentConfig: agentCfg})
	case ClassLoop:
		loopCfg := loopagent.Config{AgentConfig: agentCfg}
		if cfg.MaxIterations != nil {
			loopCfg.MaxIterations = uint(*cfg.MaxIterations)
		}
		return loopagent.New(loopCfg)
	default:
		return nil, errors.Wrapf(errors.ErrUnknownAgentClass, "agent %s: %q", cfg.Name, cfg.Class)
	}
}
