package workflow

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"

	"hermes/internal/agents"
	"hermes/internal/metrics"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// AgentBuilder constructs agent hierarchies from configuration.
type AgentBuilder interface {
	CreateAgent(cfg *agents.AgentConfig) (agent.Agent, error)
}

// AgentRunner executes a built agent against a query.
type AgentRunner interface {
	Run(ctx context.Context, ag agent.Agent, input agents.RunInput) (*agents.RunOutput, error)
}

// ServiceDeps wires the workflow service. Store and Journal are optional.
type ServiceDeps struct {
	Builder AgentBuilder
	Runner  AgentRunner
	Results *ResultsWriter

	Store   *RunStore
	Journal *RunJournal

	RunTimeout   time.Duration
	MaxToolCalls int
}

// Service orchestrates workflow runs end to end.
type Service struct {
	builder      AgentBuilder
	runner       AgentRunner
	results      *ResultsWriter
	store        *RunStore
	journal      *RunJournal
	runTimeout   time.Duration
	maxToolCalls int
	log          *logger.Logger
}

// NewService creates a workflow service.
func NewService(deps ServiceDeps) (*Service, error) {
	if deps.Builder == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "agent builder is required")
	}
	if deps.Runner == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "agent runner is required")
	}
	if deps.Results == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "results writer is required")
	}

	return &Service{
		builder:      deps.Builder,
		runner:       deps.Runner,
		results:      deps.Results,
		store:        deps.Store,
		journal:      deps.Journal,
		runTimeout:   deps.RunTimeout,
		maxToolCalls: deps.MaxToolCalls,
		log:          logger.Get().With("component", "workflow_service"),
	}, nil
}

// Run executes a workflow request. Failures are reported in the response
// status rather than as Go errors, so callers always get a response body.
func (s *Service) Run(ctx context.Context, req *Request) *Response {
	start := time.Now()

	resp := s.run(ctx, req, start)

	metrics.WorkflowRuns.WithLabelValues(resp.Status).Inc()
	metrics.WorkflowDuration.WithLabelValues(resp.Status).Observe(time.Since(start).Seconds())

	return resp
}

func (s *Service) run(ctx context.Context, req *Request, start time.Time) *Response {
	if len(req.AgentConfig) == 0 {
		return failedResponse("agent_config is required")
	}

	agentCfg, err := agents.ParseConfig(req.AgentConfig)
	if err != nil {
		s.log.Warnf("Rejected workflow request: %v", err)
		return failedResponse("invalid agent configuration: " + err.Error())
	}

	warnings := agentCfg.Lint()
	for _, w := range warnings {
		s.log.Warnf("Agent config warning: %s", w)
	}

	ag, err := s.builder.CreateAgent(agentCfg)
	if err != nil {
		s.log.Errorf("Failed to build agent %q: %v", agentCfg.Name, err)
		return failedResponse("failed to build agent: " + err.Error())
	}

	codeContent, fileName, err := resolveInput(req.JobConfig.InputConfig)
	if err != nil {
		s.log.Warnf("Rejected workflow input: %v", err)
		return failedResponse(err.Error())
	}

	query, err := SynthesizeQuery(req.TemplateConfig, req.JobConfig, codeContent, fileName)
	if err != nil {
		s.log.Errorf("Query synthesis failed: %v", err)
		return failedResponse("failed to synthesize query: " + err.Error())
	}

	s.log.Infof("Running workflow: job=%s agent=%s query_chars=%d",
		req.JobConfig.JobName, agentCfg.Name, len(query))

	output, err := s.runner.Run(ctx, ag, agents.RunInput{
		Query:        query,
		Timeout:      s.runTimeout,
		MaxToolCalls: s.maxToolCalls,
	})
	if err != nil {
		s.log.Errorf("Workflow run failed: job=%s agent=%s: %v", req.JobConfig.JobName, agentCfg.Name, err)
		metrics.AgentRuns.WithLabelValues(agentCfg.Name, "error").Inc()
		s.persist(ctx, req, agentCfg.Name, nil, StatusFailed, start)
		return failedResponse("workflow execution failed")
	}

	metrics.AgentRuns.WithLabelValues(agentCfg.Name, "success").Inc()
	metrics.AgentTokens.WithLabelValues(agentCfg.Name, "input").Add(float64(output.InputTokens))
	metrics.AgentTokens.WithLabelValues(agentCfg.Name, "output").Add(float64(output.OutputTokens))

	responses := collectResponses(output)

	resp := &Response{
		Status:           StatusCompleted,
		EventsGenerated:  output.EventsGenerated,
		ResponseLength:   responseLength(responses),
		ExecutionResults: responses,
		Warnings:         warnings,
	}

	files, err := s.results.Write(
		req.JobConfig, agentCfg.Name, fileName, responses,
		output.EventsGenerated, output.ToolCallCount, output.TokensUsed(),
	)
	if err != nil {
		// The run itself succeeded; report the missing artifacts but keep going.
		s.log.Errorf("Failed to write result files: %v", err)
	} else {
		resp.OutputFile = files.OutputFile
		resp.JSONFile = files.JSONFile
	}

	resp.RunID = s.persist(ctx, req, agentCfg.Name, output, StatusCompleted, start)

	s.log.Infof("Workflow complete: job=%s agent=%s events=%d tokens=%d duration=%v",
		req.JobConfig.JobName, agentCfg.Name, output.EventsGenerated, output.TokensUsed(), output.Duration)

	return resp
}

// persist records the run in the configured backends. Storage failures
// are logged and never fail the workflow.
func (s *Service) persist(ctx context.Context, req *Request, agentName string, output *agents.RunOutput, status string, start time.Time) string {
	if s.store == nil && s.journal == nil {
		return ""
	}

	record := &RunRecord{
		ID:        uuid.New().String(),
		JobName:   req.JobConfig.JobName,
		AgentName: agentName,
		Status:    status,
		Duration:  time.Since(start),
		CreatedAt: time.Now().UTC(),
	}
	if output != nil {
		record.FinalResponse = output.FinalResponse
		record.Events = output.EventsGenerated
		record.ToolCalls = output.ToolCallCount
		record.InputTokens = output.InputTokens
		record.OutputTokens = output.OutputTokens
	}

	if s.store != nil {
		if err := s.store.Save(ctx, record); err != nil {
			s.log.Errorf("Failed to save run record: %v", err)
		}
	}
	if s.journal != nil {
		if err := s.journal.Record(ctx, record); err != nil {
			s.log.Errorf("Failed to journal run record: %v", err)
		}
	}

	return record.ID
}

func resolveInput(in InputConfig) (content, fileName string, err error) {
	fileName = in.FileName

	if in.CodeContent != "" {
		if fileName == "" {
			fileName = "input.txt"
		}
		return in.CodeContent, fileName, nil
	}

	if in.InputFile == "" {
		return "", "", errors.Wrap(errors.ErrInvalidInput, "either code_content or input_file is required")
	}

	data, err := os.ReadFile(in.InputFile)
	if err != nil {
		return "", "", errors.Wrapf(errors.ErrInvalidInput, "failed to read input file %s", in.InputFile)
	}
	if fileName == "" {
		fileName = filepath.Base(in.InputFile)
	}

	return string(data), fileName, nil
}

func collectResponses(output *agents.RunOutput) map[string]string {
	responses := make(map[string]string)
	for _, msg := range output.Trace {
		if msg.Role == "assistant" && msg.Content != "" {
			responses[msg.Author] = msg.Content
		}
	}
	if len(responses) == 0 && output.FinalResponse != "" {
		responses["final"] = output.FinalResponse
	}
	return responses
}

func responseLength(responses map[string]string) int {
	total := 0
	for _, r := range responses {
		total += len(r)
	}
	return total
}

func failedResponse(message string) *Response {
	return &Response{
		Status:       StatusFailed,
		ErrorMessage: message,
	}
}
