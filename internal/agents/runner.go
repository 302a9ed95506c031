package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	adksession "google.golang.org/adk/session"
	"google.golang.org/genai"

	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// RunInput contains input parameters for an agent run.
type RunInput struct {
	Query        string
	UserID       string        // defaults to "system"
	Timeout      time.Duration // 0 = no timeout
	MaxToolCalls int           // 0 = unlimited
}

func exceedsToolBudget(count, limit int) bool {
	return limit > 0 && count > limit
}

// RunOutput contains the result of an agent run.
type RunOutput struct {
	FinalResponse string
	SessionID     string

	EventsGenerated int
	ToolCallCount   int
	InputTokens     int
	OutputTokens    int
	Duration        time.Duration

	Trace []Message
}

// TokensUsed returns the total token count across the run.
func (o *RunOutput) TokensUsed() int {
	return o.InputTokens + o.OutputTokens
}

// Runner executes agent hierarchies through the ADK runner, collecting
// the conversation trace, token usage, and the final response.
type Runner struct {
	appName        string
	sessionService adksession.Service
	log            *logger.Logger
}

// NewRunner creates a runner. A nil session service selects the in-memory
// implementation.
func NewRunner(appName string, sessionService adksession.Service) *Runner {
	if sessionService == nil {
		sessionService = adksession.InMemoryService()
	}
	return &Runner{
		appName:        appName,
		sessionService: sessionService,
		log:            logger.Get().With("component", "agent_runner", "app", appName),
	}
}

// Run executes the agent with the given query and tracks every event.
func (r *Runner) Run(ctx context.Context, ag agent.Agent, input RunInput) (*RunOutput, error) {
	if input.Query == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "query is required")
	}

	userID := input.UserID
	if userID == "" {
		userID = "system"
	}

	if input.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, input.Timeout)
		defer cancel()
	}

	runnerInstance, err := runner.New(runner.Config{
		AppName:        r.appName,
		Agent:          ag,
		SessionService: r.sessionService,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ADK runner")
	}

	sessionID := uuid.New().String()
	startTime := time.Now()

	r.log.Infof("Starting agent run: agent=%s session=%s", ag.Name(), sessionID)

	userContent := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: input.Query}},
	}

	conversation := NewConversationLog()
	conversation.AddUserMessage(input.Query)

	output := &RunOutput{SessionID: sessionID}

	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeSSE,
	}

	var finalResponse *adksession.Event

	for event, err := range runnerInstance.Run(ctx, userID, sessionID, userContent, runConfig) {
		if err != nil {
			return nil, errors.Wrap(err, "agent run failed")
		}
		if event == nil {
			continue
		}

		// Skip streaming chunks, wait for complete events
		if event.LLMResponse.Partial {
			continue
		}

		output.EventsGenerated++

		if event.UsageMetadata != nil {
			output.InputTokens += int(event.UsageMetadata.PromptTokenCount)
			output.OutputTokens += int(event.UsageMetadata.CandidatesTokenCount)
		}

		if event.LLMResponse.Content != nil {
			assistantContent := ""
			var toolCalls []ToolCall

			for _, part := range event.LLMResponse.Content.Parts {
				if part.Text != "" {
					assistantContent += part.Text
				}

				if part.FunctionCall != nil {
					output.ToolCallCount++
					if exceedsToolBudget(output.ToolCallCount, input.MaxToolCalls) {
						return nil, errors.Wrapf(errors.ErrToolCallLimit,
							"agent %s exceeded %d tool calls", ag.Name(), input.MaxToolCalls)
					}
					toolCalls = append(toolCalls, ToolCall{
						ID:        fmt.Sprintf("call_%d", output.ToolCallCount),
						Name:      part.FunctionCall.Name,
						Arguments: part.FunctionCall.Args,
					})
					r.log.Debugf("Tool call: %s(%v)", part.FunctionCall.Name, part.FunctionCall.Args)
				}

				if part.FunctionResponse != nil {
					if err := conversation.AddToolResult(
						fmt.Sprintf("call_%d", output.ToolCallCount),
						part.FunctionResponse.Name,
						part.FunctionResponse.Response,
					); err != nil {
						r.log.Warnf("Failed to record tool result: %v", err)
					}
				}
			}

			if assistantContent != "" || len(toolCalls) > 0 {
				conversation.AddAssistantMessage(event.Author, assistantContent, toolCalls)
			}
		}

		if event.TurnComplete && event.IsFinalResponse() {
			finalResponse = event
			break
		}
	}

	output.Duration = time.Since(startTime)
	output.Trace = conversation.History()

	if finalResponse != nil && finalResponse.LLMResponse.Content != nil {
		for _, part := range finalResponse.LLMResponse.Content.Parts {
			if part.Text != "" {
				output.FinalResponse += part.Text
			}
		}
	}

	if output.FinalResponse == "" {
		// Fall back to the last assistant turn so callers always get text
		for i := len(output.Trace) - 1; i >= 0; i-- {
			if output.Trace[i].Role == "assistant" && output.Trace[i].Content != "" {
				output.FinalResponse = output.Trace[i].Content
				break
			}
		}
	}

	r.log.Infof("Agent run complete: session=%s duration=%v events=%d tokens=%d tools=%d",
		sessionID, output.Duration, output.EventsGenerated, output.TokensUsed(), output.ToolCallCount)

	return output, nil
}
