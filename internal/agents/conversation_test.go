package agents

import "testing"

func TestConversationLog_Basic(t *testing.T) {
	cl := NewConversationLog()

	if cl.TurnCount() != 0 {
		t.Errorf("Expected 0 turns, got %d", cl.TurnCount())
	}

	cl.AddUserMessage("Analyze this code")
	cl.AddAssistantMessage("analyzer", "Looks fine.", nil)

	if cl.TurnCount() != 2 {
		t.Errorf("Expected 2 turns, got %d", cl.TurnCount())
	}

	history := cl.History()
	if len(history) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(history))
	}
	if history[0].Role != "user" || history[0].Content != "Analyze this code" {
		t.Errorf("Unexpected user message: %+v", history[0])
	}
	if history[1].Role != "assistant" || history[1].Author != "analyzer" {
		t.Errorf("Unexpected assistant message: %+v", history[1])
	}
}

func TestConversationLog_ToolResults(t *testing.T) {
	cl := NewConversationLog()

	cl.AddUserMessage("what time is it?")
	cl.AddAssistantMessage("assistant", "", []ToolCall{
		{ID: "call_1", Name: "get_current_time", Arguments: map[string]interface{}{"timezone": "UTC"}},
	})

	if err := cl.AddToolResult("call_1", "get_current_time", map[string]string{
		"status": "success",
		"report": "12:00",
	}); err != nil {
		t.Fatalf("AddToolResult failed: %v", err)
	}

	history := cl.History()
	if len(history) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(history))
	}

	toolMsg := history[2]
	if toolMsg.Role != "tool" || toolMsg.ToolCallID != "call_1" {
		t.Errorf("Unexpected tool message: %+v", toolMsg)
	}
	if toolMsg.Metadata["tool_name"] != "get_current_time" {
		t.Errorf("Expected tool_name metadata, got %+v", toolMsg.Metadata)
	}
	if toolMsg.Content == "" {
		t.Error("Expected serialized tool result content")
	}

	// Tool results are not conversation turns
	if cl.TurnCount() != 2 {
		t.Errorf("Expected 2 turns, got %d", cl.TurnCount())
	}
}
