package adk

import (
	"context"
	"encoding/json"
	"iter"

	"github.com/tmc/langchaingo/llms"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// Ensure LangChainModel implements model.LLM
var _ model.LLM = (*LangChainModel)(nil)

// LangChainModel adapts a langchaingo llms.Model to ADK's model.LLM
// interface, so ADK agents can run on any LangChain-compatible backend
// (OpenAI, LiteLLM gateways, local models).
type LangChainModel struct {
	llm         llms.Model
	modelName   string
	placeholder string
	callOpts    []llms.CallOption
	log         *logger.Logger
}

// NewLangChainModel creates an ADK model backed by a langchaingo model.
// Extra call options (temperature, max tokens) are applied to every request.
func NewLangChainModel(llm llms.Model, modelName string, placeholder string, opts ...llms.CallOption) *LangChainModel {
	return &LangChainModel{
		llm:         llm,
		modelName:   modelName,
		placeholder: placeholder,
		callOpts:    opts,
		log:         logger.Get().With("component", "langchain_model", "model", modelName),
	}
}

// Name returns the model name.
func (m *LangChainModel) Name() string {
	return m.modelName
}

// GenerateContent implements the ADK model.LLM interface.
func (m *LangChainModel) GenerateContent(
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

		messages := m.convertToMessages(req)

		opts := make([]llms.CallOption, 0, len(m.callOpts)+1)
		opts = append(opts, m.callOpts...)
		if tools := convertToLangChainTools(req.Tools); len(tools) > 0 {
			opts = append(opts, llms.WithTools(tools))
		}

		m.log.Debug("Calling LangChain model", "messages", len(messages))

		resp, err := m.llm.GenerateContent(ctx, messages, opts...)
		if err != nil {
			m.log.Error("LangChain model call failed", "error", err)
			yield(nil, errors.Wrap(err, "langchain model failed"))
			return
		}

		if len(resp.Choices) == 0 {
			yield(nil, errors.Wrap(errors.ErrEmptyResponse, "langchain model returned no choices"))
			return
		}

		yield(m.convertToADKResponse(resp), nil)
	}
}

// convertToMessages converts ADK request contents to LangChain messages.
func (m *LangChainModel) convertToMessages(req *model.LLMRequest) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(req.Contents))

	for _, content := range req.Contents {
		msg := llms.MessageContent{}

		switch content.Role {
		case "user":
			msg.Role = llms.ChatMessageTypeHuman
		case "model":
			msg.Role = llms.ChatMessageTypeAI
		case "system":
			msg.Role = llms.ChatMessageTypeSystem
		case "function", "tool":
			msg.Role = llms.ChatMessageTypeTool
		default:
			msg.Role = llms.ChatMessageTypeHuman
		}

		for _, part := range content.Parts {
			if part.Text != "" {
				msg.Parts = append(msg.Parts, llms.TextPart(part.Text))
			}
			if part.FunctionCall != nil {
				args, err := json.Marshal(part.FunctionCall.Args)
				if err != nil {
					m.log.Warn("Failed to marshal function call args", "error", err)
					continue
				}
				msg.Parts = append(msg.Parts, llms.ToolCall{
					ID:   part.FunctionCall.Name,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      part.FunctionCall.Name,
						Arguments: string(args),
					},
				})
			}
			if part.FunctionResponse != nil {
				msg.Role = llms.ChatMessageTypeTool
				respData, err := json.Marshal(part.FunctionResponse.Response)
				if err != nil {
					m.log.Warn("Failed to marshal function response", "error", err)
					continue
				}
				msg.Parts = append(msg.Parts, llms.ToolCallResponse{
					ToolCallID: part.FunctionResponse.Name,
					Name:       part.FunctionResponse.Name,
					Content:    string(respData),
				})
			}
		}

		messages = append(messages, msg)
	}

	return messages
}

// convertToLangChainTools maps ADK tool declarations to LangChain tools.
func convertToLangChainTools(tools map[string]any) []llms.Tool {
	if len(tools) == 0 {
		return nil
	}

	lcTools := make([]llms.Tool, 0, len(tools))
	for toolName, toolData := range tools {
		desc := ""
		params := map[string]any{
			"type":       "object",
			"properties": map[string]any{},
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

		lcTools = append(lcTools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        toolName,
				Description: desc,
				Parameters:  params,
			},
		})
	}

	return lcTools
}

// convertToADKResponse converts a LangChain response to ADK format.
func (m *LangChainModel) convertToADKResponse(resp *llms.ContentResponse) *model.LLMResponse {
	choice := resp.Choices[0]

	content := &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{},
	}

	if choice.Content != "" {
		content.Parts = append(content.Parts, &genai.Part{
			Text: choice.Content,
		})
	}

	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		var args map[string]interface{}
		if err := json.Unmarshal([]byte(tc.FunctionCall.Arguments), &args); err != nil {
			m.log.Warn("Failed to parse tool call arguments", "error", err)
			continue
		}
		content.Parts = append(content.Parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				Name: tc.FunctionCall.Name,
				Args: args,
			},
		})
	}

	adkResp := &model.LLMResponse{
		Content:      content,
		TurnComplete: true,
	}

	switch choice.StopReason {
	case "length", "max_tokens":
		adkResp.FinishReason = genai.FinishReasonMaxTokens
	default:
		adkResp.FinishReason = genai.FinishReasonStop
	}

	return adkResp
}
