package llm

import (
	"bookforge/internal/errors"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// geminiProvider serves Gemini text generation, Imagen image generation, and
// multi-speaker speech synthesis.
type geminiProvider struct {
	client *genai.Client
	logger *slog.Logger
}

func newGeminiProvider(ctx context.Context, apiKey string, logger *slog.Logger) (*geminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{ //nolint:exhaustruct // this is better for readability
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}
	return &geminiProvider{
		client: client,
		logger: logger.With("source", "geminiProvider"),
	}, nil
}

func (p *geminiProvider) ID() string {
	return ProviderGoogle
}

func (p *geminiProvider) GenerateText(ctx context.Context, modelID, prompt string, opts Options) (string, error) {
	config := &genai.GenerateContentConfig{} //nolint:exhaustruct // this is better for readability
	if opts.Temperature > 0 {
		config.Temperature = genai.Ptr(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}
	if opts.JSONMode {
		config.ResponseMIMEType = "application/json"
	}

	var parts []*genai.Part
	for _, img := range opts.Images {
		parts = append(parts, genai.NewPartFromBytes(img, "image/png"))
	}
	parts = append(parts, genai.NewPartFromText(prompt))
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := p.client.Models.GenerateContent(ctx, modelID, contents, config)
	if err != nil {
		return "", errors.Wrap(ErrGenerationFailed, "gemini text generation", slog.String("model", modelID), errors.SlogError(err))
	}
	text := result.Text()
	if text == "" {
		return "", errors.Wrap(ErrGenerationFailed, "gemini returned no text", slog.String("model", modelID))
	}
	return text, nil
}

func (p *geminiProvider) GenerateImage(ctx context.Context, modelID, prompt string, width, height int) (string, error) {
	aspectRatio := "1:1"
	switch {
	case width > height:
		aspectRatio = "16:9"
	case height > width:
		aspectRatio = "9:16"
	}

	response, err := p.client.Models.GenerateImages(ctx, modelID, prompt,
		&genai.GenerateImagesConfig{ //nolint:exhaustruct // this is better for readability
			NumberOfImages: 1,
			AspectRatio:    aspectRatio,
			OutputMIMEType: "image/png",
		})
	if err != nil {
		return "", errors.Wrap(ErrGenerationFailed, "imagen image generation", slog.String("model", modelID), errors.SlogError(err))
	}
	if len(response.GeneratedImages) == 0 || response.GeneratedImages[0].Image == nil {
		return "", errors.Wrap(ErrGenerationFailed, "imagen returned no image", slog.String("model", modelID))
	}
	encoded := base64.StdEncoding.EncodeToString(response.GeneratedImages[0].Image.ImageBytes)
	return fmt.Sprintf("data:image/png;base64,%s", encoded), nil
}

// GenerateSpeech renders a two-host dialogue into raw 16-bit PCM samples at
// the vendor's native sample rate (24 kHz).
func (p *geminiProvider) GenerateSpeech(ctx context.Context, modelID, dialogue string, voices map[string]string) ([]byte, error) {
	speakerConfigs := make([]*genai.SpeakerVoiceConfig, 0, len(voices))
	for speaker, voice := range voices {
		speakerConfigs = append(speakerConfigs, &genai.SpeakerVoiceConfig{
			Speaker: speaker,
			VoiceConfig: &genai.VoiceConfig{ //nolint:exhaustruct // this is better for readability
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		})
	}

	config := &genai.GenerateContentConfig{ //nolint:exhaustruct // this is better for readability
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{ //nolint:exhaustruct // this is better for readability
			MultiSpeakerVoiceConfig: &genai.MultiSpeakerVoiceConfig{
				SpeakerVoiceConfigs: speakerConfigs,
			},
		},
	}
	contents := []*genai.Content{genai.NewContentFromText(dialogue, genai.RoleUser)}

	result, err := p.client.Models.GenerateContent(ctx, modelID, contents, config)
	if err != nil {
		return nil, errors.Wrap(ErrGenerationFailed, "gemini speech synthesis", slog.String("model", modelID), errors.SlogError(err))
	}
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, errors.Wrap(ErrGenerationFailed, "gemini returned no audio", slog.String("model", modelID))
}
