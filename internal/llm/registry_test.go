package llm_test

import (
	"bookforge/internal/llm"
	"bookforge/internal/testhelpers"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	id    string
	calls int
}

func (f *fakeProvider) ID() string { return f.id }

func (f *fakeProvider) GenerateText(context.Context, string, string, llm.Options) (string, error) {
	f.calls++
	return "ok", nil
}

func (f *fakeProvider) GenerateImage(context.Context, string, string, int, int) (string, error) {
	return "data:image/png;base64,", nil
}

func newRegistry(t *testing.T) *llm.Registry {
	t.Helper()
	return llm.NewRegistry(llm.Credentials{}, testhelpers.NewLogger(io.Discard)) //nolint:exhaustruct // this is better for readability
}

func TestRegistry_ProviderNotConfigured(t *testing.T) {
	t.Parallel()
	registry := newRegistry(t)

	for _, id := range []string{llm.ProviderGoogle, llm.ProviderAnthropic, llm.ProviderOpenAI} {
		_, err := registry.Provider(context.Background(), id)
		require.ErrorIs(t, err, llm.ErrProviderNotConfigured, id)
		require.NotErrorIs(t, err, llm.ErrGenerationFailed, id)
		require.False(t, registry.Available(id), id)
	}
}

func TestRegistry_UnknownProvider(t *testing.T) {
	t.Parallel()
	registry := newRegistry(t)

	_, err := registry.Provider(context.Background(), "mystery-vendor")
	require.ErrorIs(t, err, llm.ErrUnknownProvider)
}

func TestRegistry_Memoization(t *testing.T) {
	t.Parallel()
	registry := newRegistry(t)
	fake := &fakeProvider{id: llm.ProviderAnthropic} //nolint:exhaustruct // this is better for readability
	registry.Register(llm.ProviderAnthropic, fake)

	first, err := registry.Provider(context.Background(), llm.ProviderAnthropic)
	require.NoError(t, err)
	second, err := registry.Provider(context.Background(), llm.ProviderAnthropic)
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestRegistry_ForModelFallsBack(t *testing.T) {
	t.Parallel()
	registry := newRegistry(t)
	fake := &fakeProvider{id: llm.ProviderGoogle} //nolint:exhaustruct // this is better for readability
	registry.Register(llm.ProviderGoogle, fake)

	provider, def, err := registry.ForModel(context.Background(), "gemini-0.1-retired")
	require.NoError(t, err)
	require.Equal(t, llm.DefaultTextModel, def.ID)
	require.Same(t, fake, provider)
}

func TestModelCatalog(t *testing.T) {
	t.Parallel()

	def, ok := llm.Model(llm.DefaultTextModel)
	require.True(t, ok)
	require.Equal(t, llm.ProviderGoogle, def.Provider)
	require.True(t, def.Has(llm.CapabilityText))

	openAIModels := llm.ModelsByProvider(llm.ProviderOpenAI)
	require.NotEmpty(t, openAIModels)
	for _, m := range openAIModels {
		require.Equal(t, llm.ProviderOpenAI, m.Provider)
	}
}

func TestModelCost(t *testing.T) {
	t.Parallel()

	def, ok := llm.Model("claude-3-5-sonnet-20241022")
	require.True(t, ok)
	require.Greater(t, def.Cost(1_000_000, 1_000_000), 0.0)
	require.Zero(t, def.Cost(0, 0))
}
