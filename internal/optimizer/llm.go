package optimizer

import (
	"context"
	"encoding/json"
	"strings"

	"hermes/internal/adapters/ai"
	"hermes/pkg/errors"
)

// askModel sends a single-turn request and returns the assistant text.
func askModel(ctx context.Context, provider ai.ChatProvider, model, system, user string) (string, error) {
	resp, err := provider.Chat(ctx, ai.ChatRequest{
		Model: model,
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: system},
			{Role: ai.RoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.Wrap(errors.ErrEmptyResponse, "model returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// decodeJSONReply unmarshals a model reply into v. Models tend to wrap
// JSON in markdown fences or surround it with prose, so the first
// balanced JSON object is extracted before decoding.
func decodeJSONReply(reply string, v any) error {
	body := extractJSONObject(reply)
	if body == "" {
		return errors.Wrapf(errors.ErrInvalidInput, "no JSON object in model reply: %.80s", reply)
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return errors.Wrap(err, "failed to decode model reply")
	}
	return nil
}

func extractJSONObject(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}

	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}

	return ""
}
