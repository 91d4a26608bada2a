// Package llm abstracts the text/image/speech generation capability behind a
// uniform provider interface with one implementation per vendor. Providers are
// resolved through a registry keyed by provider identifier and constructed
// lazily so that a missing credential only matters when its provider is
// actually asked for.
package llm

import (
	"bookforge/internal/errors"
	"context"
)

var (
	// ErrProviderNotConfigured means the credential for a provider is missing.
	// It is raised before any network call so callers can tell "can't run
	// this model" apart from "model run failed".
	ErrProviderNotConfigured = errors.NewSentinel("provider is not configured")

	// ErrGenerationFailed wraps transport or vendor-level failures of a
	// single generation call.
	ErrGenerationFailed = errors.NewSentinel("model generation failed")

	// ErrUnknownProvider means the requested provider identifier has no
	// implementation.
	ErrUnknownProvider = errors.NewSentinel("unknown provider")

	// ErrUnsupportedCapability means the provider cannot serve the requested
	// modality, e.g. image generation on a text-only vendor.
	ErrUnsupportedCapability = errors.NewSentinel("capability not supported by provider")
)

// Options tune a single text generation call.
type Options struct {
	// Temperature is the sampling temperature; zero means provider default.
	Temperature float32
	// MaxTokens caps the output length; zero means provider default.
	MaxTokens int
	// SystemPrompt is an optional system instruction.
	SystemPrompt string
	// JSONMode asks the provider to constrain output to valid JSON.
	JSONMode bool
	// Images are optional PNG payloads for vision-capable calls.
	Images [][]byte
}

// Provider is the uniform generation capability implemented per vendor.
type Provider interface {
	ID() string

	// GenerateText returns the model's text output for the prompt.
	GenerateText(ctx context.Context, modelID, prompt string, opts Options) (string, error)

	// GenerateImage returns an image reference (data URL) for the prompt.
	GenerateImage(ctx context.Context, modelID, prompt string, width, height int) (string, error)
}

// SpeechSynthesizer is implemented by providers that can render a multi-voice
// dialogue into raw PCM samples. voices maps speaker labels to voice names.
type SpeechSynthesizer interface {
	GenerateSpeech(ctx context.Context, modelID, dialogue string, voices map[string]string) ([]byte, error)
}
