package ai

import (
	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"hermes/pkg/errors"
)

// NewLangChainFactory returns a constructor for langchaingo models bound
// to an OpenAI-compatible endpoint. Works with LiteLLM-style gateways
// via baseURL.
func NewLangChainFactory(apiKey, baseURL string) func(model string) (llms.Model, error) {
	return func(model string) (llms.Model, error) {
		if apiKey == "" {
			return nil, errors.Wrap(errors.ErrMissingAPIKey, "langchain provider requires an API key")
		}

		opts := []lcopenai.Option{
			lcopenai.WithModel(model),
			lcopenai.WithToken(apiKey),
		}
		if baseURL != "" {
			opts = append(opts, lcopenai.WithBaseURL(baseURL))
		}

		llm, err := lcopenai.New(opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create langchain model %s", model)
		}

		return llm, nil
	}
}
