package optimizer

import (
	"context"
	"encoding/json"
	"fmt"

	"hermes/internal/agents"
	"hermes/internal/workflow"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// WorkflowExecutor runs an agent configuration against a query and
// returns the per-agent outputs.
type WorkflowExecutor interface {
	Execute(ctx context.Context, cfg *agents.AgentConfig, query string) (map[string]string, error)
}

// Optimizer drives the evaluate-suggest-apply loop.
type Optimizer struct {
	executor  WorkflowExecutor
	critic    *Critic
	suggester *Suggester
	log       *logger.Logger
}

// New creates an optimizer.
func New(executor WorkflowExecutor, critic *Critic, suggester *Suggester) *Optimizer {
	return &Optimizer{
		executor:  executor,
		critic:    critic,
		suggester: suggester,
		log:       logger.Get().With("component", "optimizer"),
	}
}

// Optimize runs the loop until the score converges, plateaus, or the
// iteration budget runs out. The input configuration is never mutated.
func (o *Optimizer) Optimize(ctx context.Context, input Input) (*Result, error) {
	if input.AgentConfig == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "agent config is required")
	}
	if input.Query == "" || input.ExpectedOutput == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "query and expected output are required")
	}

	cfg := input.Config
	if cfg.MaxIterations <= 0 {
		cfg = DefaultConfig()
	}

	current, err := CloneConfig(input.AgentConfig)
	if err != nil {
		return nil, err
	}

	result := &Result{FinalConfig: current}
	bestScore := -1.0
	plateauRuns := 0

	for i := 1; i <= cfg.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			result.TerminationReason = "context cancelled"
			return result, err
		}

		execResults, err := o.executor.Execute(ctx, current, input.Query)
		if err != nil {
			return nil, errors.Wrapf(err, "iteration %d execution failed", i)
		}

		trace := BuildTrace(execResults, current)

		eval, err := o.critic.Evaluate(ctx, trace.FinalOutput, input.ExpectedOutput, cfg.Objective, trace)
		if err != nil {
			return nil, errors.Wrapf(err, "iteration %d evaluation failed", i)
		}

		iteration := Iteration{Iteration: i, Score: eval.Score, Evaluation: eval}
		result.IterationsRun = i
		result.FinalScore = eval.Score
		if i == 1 {
			result.BaselineScore = eval.Score
		}

		o.log.Infof("Optimization iteration %d: score=%.4f", i, eval.Score)

		if eval.Score >= cfg.ConvergenceThreshold {
			result.History = append(result.History, iteration)
			result.Converged = true
			result.TerminationReason = fmt.Sprintf("score %.4f reached convergence threshold %.4f", eval.Score, cfg.ConvergenceThreshold)
			break
		}

		if eval.Score <= bestScore+cfg.PlateauThreshold {
			plateauRuns++
			if plateauRuns >= cfg.PlateauPatience {
				result.History = append(result.History, iteration)
				result.TerminationReason = fmt.Sprintf("score plateaued for %d iterations", plateauRuns)
				break
			}
		} else {
			plateauRuns = 0
		}
		if eval.Score > bestScore {
			bestScore = eval.Score
		}

		if i == cfg.MaxIterations {
			result.History = append(result.History, iteration)
			result.TerminationReason = "iteration budget exhausted"
			break
		}

		suggestions, err := o.suggester.Suggest(ctx, eval, ExtractPrompts(current))
		if err != nil {
			return nil, errors.Wrapf(err, "iteration %d suggestion failed", i)
		}
		iteration.Suggestions = suggestions

		updated, applied, err := ApplySuggestions(current, suggestions, cfg.MaxSuggestions)
		if err != nil {
			return nil, errors.Wrapf(err, "iteration %d update failed", i)
		}
		iteration.Applied = applied
		result.History = append(result.History, iteration)

		if len(applied) == 0 {
			result.TerminationReason = "no applicable suggestions"
			break
		}

		current = updated
		result.FinalConfig = current
	}

	if result.TerminationReason == "" {
		result.TerminationReason = "iteration budget exhausted"
	}

	return result, nil
}

// ServiceExecutor adapts the workflow service to the optimizer. The query
// is passed through verbatim via an identity template.
type ServiceExecutor struct {
	svc *workflow.Service
}

// NewServiceExecutor wraps a workflow service.
func NewServiceExecutor(svc *workflow.Service) *ServiceExecutor {
	return &ServiceExecutor{svc: svc}
}

// Execute runs the configuration through the workflow service.
func (e *ServiceExecutor) Execute(ctx context.Context, cfg *agents.AgentConfig, query string) (map[string]string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal agent config")
	}

	resp := e.svc.Run(ctx, &workflow.Request{
		JobConfig: workflow.JobConfig{
			JobName:     "optimizer",
			InputConfig: workflow.InputConfig{CodeContent: query, FileName: "optimizer-input.txt"},
		},
		AgentConfig:    raw,
		TemplateConfig: workflow.TemplateConfig{TemplateContent: "{{.CodeContent}}"},
	})
	if resp.Status != workflow.StatusCompleted {
		return nil, errors.Wrapf(errors.ErrInternal, "workflow failed: %s", resp.ErrorMessage)
	}

	return resp.ExecutionResults, nil
}
