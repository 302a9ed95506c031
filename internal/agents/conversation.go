package agents

import (
	"encoding/json"
	"time"

	"hermes/pkg/errors"
)

// Message represents a single message in the conversation trace.
type Message struct {
	Role       string                 `json:"role"` // "user", "assistant", "tool"
	Author     string                 `json:"author,omitempty"`
	Content    string                 `json:"content"`
	ToolCalls  []ToolCall             `json:"tool_calls,omitempty"`
	ToolCallID string                 `json:"tool_call_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

// ToolCall represents a function/tool call request
type ToolCall struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ConversationLog records the turns of a workflow run for result files
// and the optimizer.
type ConversationLog struct {
	history   []Message
	turnCount int
}

// NewConversationLog creates an empty conversation log.
func NewConversationLog() *ConversationLog {
	return &ConversationLog{
		history: make([]Message, 0, 16),
	}
}

// AddUserMessage appends a user turn.
func (cl *ConversationLog) AddUserMessage(content string) {
	cl.history = append(cl.history, Message{
		Role:      "user",
		Content:   content,
		Timestamp: time.Now(),
	})
	cl.turnCount++
}

// AddAssistantMessage appends a model turn attributed to an agent.
func (cl *ConversationLog) AddAssistantMessage(author, content string, toolCalls []ToolCall) {
	cl.history = append(cl.history, Message{
		Role:      "assistant",
		Author:    author,
		Content:   content,
		ToolCalls: toolCalls,
		Timestamp: time.Now(),
	})
	cl.turnCount++
}

// AddToolResult appends a tool execution result.
func (cl *ConversationLog) AddToolResult(toolCallID, toolName string, result interface{}) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "failed to marshal tool result")
	}

	cl.history = append(cl.history, Message{
		Role:       "tool",
		Content:    string(resultJSON),
		ToolCallID: toolCallID,
		Metadata: map[string]interface{}{
			"tool_name": toolName,
		},
		Timestamp: time.Now(),
	})

	return nil
}

// History returns the recorded messages.
func (cl *ConversationLog) History() []Message {
	return cl.history
}

// TurnCount returns the number of user and assistant turns.
func (cl *ConversationLog) TurnCount() int {
	return cl.turnCount
}
