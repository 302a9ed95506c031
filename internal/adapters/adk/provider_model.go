package adk

import (
	"context"
	"encoding/json"
	"iter"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"hermes/internal/adapters/ai"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// Ensure ProviderModel implements model.LLM
var _ model.LLM = (*ProviderModel)(nil)

// ProviderModel adapts an ai.ChatProvider to ADK's model.LLM interface.
type ProviderModel struct {
	provider    ai.ChatProvider
	modelName   string
	placeholder string
	log         *logger.Logger
}

// NewProviderModel creates an ADK model backed by a chat provider.
func NewProviderModel(provider ai.ChatProvider, modelName string, placeholder string) *ProviderModel {
	return &ProviderModel{
		provider:    provider,
		modelName:   modelName,
		placeholder: placeholder,
		log:         logger.Get().With("component", "provider_model", "model", modelName),
	}
}

// Name returns the model name.
func (m *ProviderModel) Name() string {
	return m.modelName
}

// GenerateContent implements the ADK model.LLM interface.
func (m *ProviderModel) GenerateContent(
	ctx context.Context,
	req *model.LLMRequest,
	stream bool,
) iter.Seq2[*model.LLMResponse, error] {
	if stream {
		return func(yield func(*model.LLMResponse, error) bool) {
			yield(nil, errors.Wrap(errors.ErrNotImplemented, "streaming not implemented"))
		}
	}

	return func(yield func(*model.LLMResponse, error) bool) {
		MaybeAppendUserContent(req, m.placeholder)

		chatReq := m.convertToChatRequest(req)

		m.log.Debug("Calling LLM", "messages", len(chatReq.Messages), "tools", len(chatReq.Tools))

		resp, err := m.provider.Chat(ctx, chatReq)
		if err != nil {
			m.log.Error("LLM call failed", "error", err)
			yield(nil, errors.Wrap(err, "chat provider failed"))
			return
		}

		m.log.Debug("LLM response received",
			"choices", len(resp.Choices),
			"tokens", resp.Usage.TotalTokens,
		)

		yield(m.convertToADKResponse(resp), nil)
	}
}

// convertToChatRequest converts an ADK request to the provider format.
func (m *ProviderModel) convertToChatRequest(req *model.LLMRequest) ai.ChatRequest {
	chatReq := ai.ChatRequest{
		Model: m.modelName,
	}

	for _, content := range req.Contents {
		chatMsg := ai.Message{}

		switch content.Role {
		case "user":
			chatMsg.Role = ai.RoleUser
		case "model":
			chatMsg.Role = ai.RoleAssistant
		case "system":
			chatMsg.Role = ai.RoleSystem
		case "function", "tool":
			chatMsg.Role = ai.RoleTool
		default:
			chatMsg.Role = ai.RoleUser
		}

		for _, part := range content.Parts {
			if part.Text != "" {
				if chatMsg.Content != "" {
					chatMsg.Content += "\n"
				}
				chatMsg.Content += part.Text
			}
			if part.FunctionCall != nil {
				args, err := json.Marshal(part.FunctionCall.Args)
				if err != nil {
					m.log.Warn("Failed to marshal function call args", "error", err)
					continue
				}
				chatMsg.ToolCalls = append(chatMsg.ToolCalls, ai.ToolCall{
					ID:   part.FunctionCall.Name,
					Type: "function",
					Function: ai.FunctionCall{
						Name:      part.FunctionCall.Name,
						Arguments: string(args),
					},
				})
			}
			if part.FunctionResponse != nil {
				chatMsg.Role = ai.RoleTool
				chatMsg.ToolCallID = part.FunctionResponse.Name
				chatMsg.Name = part.FunctionResponse.Name
				if respData, err := json.Marshal(part.FunctionResponse.Response); err == nil {
					chatMsg.Content = string(respData)
				}
			}
		}

		chatReq.Messages = append(chatReq.Messages, chatMsg)
	}

	chatReq.Tools = convertToolDeclarations(req.Tools)

	return chatReq
}

// convertToolDeclarations maps ADK tool declarations to provider tool
// definitions. Declarations arrive as maps with the handful of shapes the
// runner produces; anything unrecognized degrades to an empty object schema.
func convertToolDeclarations(tools map[string]any) []ai.ToolDefinition {
	if len(tools) == 0 {
		return nil
	}

	defs := make([]ai.ToolDefinition, 0, len(tools))
	for toolName, toolData := range tools {
		desc := ""
		params := map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
			"required":   []string{},
		}

		if decl, ok := toolData.(map[string]interface{}); ok {
			if d, ok := decl["description"].(string); ok {
				desc = d
			}
			if p, ok := decl["parameters"].(map[string]interface{}); ok {
				params = p
			}
		}

		defs = append(defs, ai.ToolDefinition{
			Type: "function",
			Function: ai.FunctionDefinition{
				Name:        toolName,
				Description: desc,
				Parameters:  params,
			},
		})
	}

	return defs
}

// convertToADKResponse converts a provider response to ADK format.
func (m *ProviderModel) convertToADKResponse(resp *ai.ChatResponse) *model.LLMResponse {
	adkResp := &model.LLMResponse{}

	if len(resp.Choices) == 0 {
		adkResp.FinishReason = genai.FinishReasonOther
		adkResp.ErrorMessage = "no choices in response"
		return adkResp
	}

	choice := resp.Choices[0]

	content := &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{},
	}

	if choice.Message.Content != "" {
		content.Parts = append(content.Parts, &genai.Part{
			Text: choice.Message.Content,
		})
	}

	for _, tc := range choice.Message.ToolCalls {
		var args map[string]interface{}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			m.log.Warn("Failed to parse tool call arguments", "error", err)
			continue
		}

		content.Parts = append(content.Parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				Name: tc.Function.Name,
				Args: args,
			},
		})
	}

	adkResp.Content = content

	switch choice.FinishReason {
	case ai.FinishReasonLength:
		adkResp.FinishReason = genai.FinishReasonMaxTokens
	default:
		adkResp.FinishReason = genai.FinishReasonStop
	}

	adkResp.UsageMetadata = &genai.GenerateContentResponseUsageMetadata{
		PromptTokenCount:     int32(resp.Usage.PromptTokens),
		CandidatesTokenCount: int32(resp.Usage.CompletionTokens),
		TotalTokenCount:      int32(resp.Usage.TotalTokens),
	}

	adkResp.TurnComplete = true

	return adkResp
}
