package llm

import (
	"bookforge/internal/errors"
	"context"
	"log/slog"
	"sync"
)

// Credentials holds the vendor API keys. An empty key means that vendor's
// provider fails fast with ErrProviderNotConfigured instead of attempting
// calls.
type Credentials struct {
	GoogleKey    string
	AnthropicKey string
	OpenAIKey    string
}

// Registry lazily constructs and memoizes one provider instance per provider
// identifier. It is read-mostly and safe for concurrent callers; provider
// instances are reusable across goroutines once built.
type Registry struct {
	creds  Credentials
	logger *slog.Logger

	mu        sync.Mutex
	providers map[string]Provider
}

func NewRegistry(creds Credentials, logger *slog.Logger) *Registry {
	return &Registry{
		creds:     creds,
		logger:    logger.With("source", "llm.Registry"),
		providers: make(map[string]Provider),
	}
}

// Provider resolves a provider identifier to its memoized instance,
// constructing it on first use. Construction needs a context because some
// vendor clients dial during setup.
func (r *Registry) Provider(ctx context.Context, id string) (Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.providers[id]; ok {
		return p, nil
	}

	p, err := r.construct(ctx, id)
	if err != nil {
		return nil, err
	}
	r.providers[id] = p
	r.logger.DebugContext(ctx, "constructed provider", slog.String("provider", id))
	return p, nil
}

func (r *Registry) construct(ctx context.Context, id string) (Provider, error) {
	switch id {
	case ProviderGoogle:
		if r.creds.GoogleKey == "" {
			return nil, errors.Wrap(ErrProviderNotConfigured, "missing google credential")
		}
		return newGeminiProvider(ctx, r.creds.GoogleKey, r.logger)
	case ProviderAnthropic:
		if r.creds.AnthropicKey == "" {
			return nil, errors.Wrap(ErrProviderNotConfigured, "missing anthropic credential")
		}
		return newAnthropicProvider(r.creds.AnthropicKey, r.logger), nil
	case ProviderOpenAI:
		if r.creds.OpenAIKey == "" {
			return nil, errors.Wrap(ErrProviderNotConfigured, "missing openai credential")
		}
		return newOpenAIProvider(r.creds.OpenAIKey, r.logger), nil
	default:
		return nil, errors.Wrap(ErrUnknownProvider, "construct provider", slog.String("provider", id))
	}
}

// ForModel resolves a model identifier to the provider that serves it via the
// static catalog. Unknown models fall back to the default text model so a
// deprecated identifier degrades instead of breaking the pipeline.
func (r *Registry) ForModel(ctx context.Context, modelID string) (Provider, ModelDefinition, error) {
	def, ok := Model(modelID)
	if !ok {
		r.logger.WarnContext(ctx, "model not in catalog, falling back",
			slog.String("model", modelID), slog.String("fallback", DefaultTextModel))
		def, _ = Model(DefaultTextModel)
	}
	p, err := r.Provider(ctx, def.Provider)
	if err != nil {
		return nil, ModelDefinition{}, err
	}
	return p, def, nil
}

// Available reports whether the provider has a credential without
// constructing it.
func (r *Registry) Available(id string) bool {
	switch id {
	case ProviderGoogle:
		return r.creds.GoogleKey != ""
	case ProviderAnthropic:
		return r.creds.AnthropicKey != ""
	case ProviderOpenAI:
		return r.creds.OpenAIKey != ""
	default:
		return false
	}
}

// Register injects a provider instance, replacing any memoized one. Tests use
// this to run the pipeline against fakes.
func (r *Registry) Register(id string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[id] = p
}
