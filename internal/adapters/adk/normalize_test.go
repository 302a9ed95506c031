package adk

import (
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

func textContent(role, text string) *genai.Content {
	return &genai.Content{
		Role:  role,
		Parts: []*genai.Part{{Text: text}},
	}
}

func TestMaybeAppendUserContent_EmptyHistory(t *testing.T) {
	req := &model.LLMRequest{}

	MaybeAppendUserContent(req, "placeholder text")

	if len(req.Contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(req.Contents))
	}

	last := req.Contents[0]
	if last.Role != "user" {
		t.Errorf("Expected role 'user', got %q", last.Role)
	}
	if len(last.Parts) != 1 || last.Parts[0].Text != "placeholder text" {
		t.Errorf("Expected single placeholder part, got %+v", last.Parts)
	}
}

func TestMaybeAppendUserContent_TrailingModelTurn(t *testing.T) {
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			textContent("user", "Hello"),
			textContent("model", "Hi there!"),
		},
	}

	MaybeAppendUserContent(req, "placeholder text")

	if len(req.Contents) != 3 {
		t.Fatalf("Expected 3 contents, got %d", len(req.Contents))
	}
	if req.Contents[2].Role != "user" {
		t.Errorf("Expected last role 'user', got %q", req.Contents[2].Role)
	}

	// Existing turns must be untouched
	if req.Contents[0].Parts[0].Text != "Hello" || req.Contents[1].Parts[0].Text != "Hi there!" {
		t.Error("Existing turns were modified")
	}
}

func TestMaybeAppendUserContent_TrailingUserTurnUnchanged(t *testing.T) {
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			textContent("user", "Hello"),
			textContent("model", "Hi there!"),
			textContent("user", "How are you?"),
		},
	}

	MaybeAppendUserContent(req, "placeholder text")

	if len(req.Contents) != 3 {
		t.Fatalf("Expected 3 contents, got %d", len(req.Contents))
	}
	if req.Contents[2].Parts[0].Text != "How are you?" {
		t.Errorf("Last user turn was modified: %+v", req.Contents[2])
	}
}

func TestMaybeAppendUserContent_TrailingToolTurn(t *testing.T) {
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			textContent("user", "What's the weather?"),
			{
				Role: "tool",
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						Name:     "get_temperature",
						Response: map[string]any{"status": "success"},
					},
				}},
			},
		},
	}

	MaybeAppendUserContent(req, "placeholder text")

	if len(req.Contents) != 3 {
		t.Fatalf("Expected 3 contents, got %d", len(req.Contents))
	}
	if req.Contents[2].Role != "user" {
		t.Errorf("Expected appended user turn, got role %q", req.Contents[2].Role)
	}
}

func TestMaybeAppendUserContent_Idempotent(t *testing.T) {
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			textContent("model", "Working on it."),
		},
	}

	MaybeAppendUserContent(req, "placeholder text")
	MaybeAppendUserContent(req, "placeholder text")
	MaybeAppendUserContent(req, "placeholder text")

	if len(req.Contents) != 2 {
		t.Fatalf("Expected 2 contents after repeated calls, got %d", len(req.Contents))
	}
}

func TestMaybeAppendUserContent_EmptyPlaceholderFallsBack(t *testing.T) {
	req := &model.LLMRequest{}

	MaybeAppendUserContent(req, "")

	if len(req.Contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(req.Contents))
	}
	if req.Contents[0].Parts[0].Text != DefaultUserTurnPlaceholder {
		t.Errorf("Expected default placeholder, got %q", req.Contents[0].Parts[0].Text)
	}
	if req.Contents[0].Parts[0].Text == "" {
		t.Error("Placeholder must never be empty")
	}
}
