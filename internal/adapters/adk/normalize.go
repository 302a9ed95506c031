package adk

import (
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// DefaultUserTurnPlaceholder is the text of the synthetic user turn
// appended when a conversation does not end with a user message.
const DefaultUserTurnPlaceholder = "Please continue."

// MaybeAppendUserContent ensures the request's conversation history ends
// with a user turn. Backends reject histories whose last message is not
// from the user, so a synthetic placeholder turn is appended when the
// history is empty or ends with a model, system, or tool message.
// A history already ending with a user turn is left untouched.
func MaybeAppendUserContent(req *model.LLMRequest, placeholder string) {
	if placeholder == "" {
		placeholder = DefaultUserTurnPlaceholder
	}

	if len(req.Contents) > 0 && req.Contents[len(req.Contents)-1].Role == "user" {
		return
	}

	req.Contents = append(req.Contents, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: placeholder}},
	})
}
