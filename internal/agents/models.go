package agents

import (
	"strings"

	"github.com/tmc/langchaingo/llms"
	adkmodel "google.golang.org/adk/model"

	hermesadk "hermes/internal/adapters/adk"
	"hermes/internal/adapters/ai"
	"hermes/pkg/errors"
)

// LangChainFactory builds a langchaingo model for a model name.
type LangChainFactory func(modelName string) (llms.Model, error)

// ModelResolver turns model references from agent configs into ADK models.
// References use the form "provider:model", e.g. "openai:gpt-4o" or
// "langchain:gpt-4o-mini"; a bare model name selects the chat provider.
type ModelResolver struct {
	provider    ai.ChatProvider
	langchain   LangChainFactory
	placeholder string
}

// NewModelResolver builds a resolver. Either backend may be nil; resolving
// a reference to a missing backend returns an error.
func NewModelResolver(provider ai.ChatProvider, langchain LangChainFactory, placeholder string) *ModelResolver {
	return &ModelResolver{
		provider:    provider,
		langchain:   langchain,
		placeholder: placeholder,
	}
}

// Resolve maps a model reference to an ADK model implementation.
func (r *ModelResolver) Resolve(ref string) (adkmodel.LLM, error) {
	if ref == "" {
		return nil, errors.Wrap(errors.ErrUnknownModel, "empty model reference")
	}

	providerName, modelName := "openai", ref
	if before, after, ok := strings.Cut(ref, ":"); ok {
		providerName, modelName = before, after
	}

	switch providerName {
	case "openai", "litellm":
		if r.provider == nil {
			return nil, errors.Wrapf(errors.ErrProviderNotConfigured, "no chat provider for model %q", ref)
		}
		return hermesadk.NewProviderModel(r.provider, modelName, r.placeholder), nil

	case "langchain":
		if r.langchain == nil {
			return nil, errors.Wrapf(errors.ErrProviderNotConfigured, "no langchain factory for model %q", ref)
		}
		lcModel, err := r.langchain(modelName)
		if err != nil {
			return nil, errors.Wrapf(err, "build langchain model %q", modelName)
		}
		return hermesadk.NewLangChainModel(lcModel, modelName, r.placeholder), nil

	default:
		return nil, errors.Wrapf(errors.ErrUnknownModel, "unknown model provider %q in reference %q", providerName, ref)
	}
}
