package llm

import (
	"bookforge/internal/errors"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

// openAIProvider serves chat completions (with JSON mode and vision) and
// DALL-E image generation.
type openAIProvider struct {
	client *openai.Client
	logger *slog.Logger
}

func newOpenAIProvider(apiKey string, logger *slog.Logger) *openAIProvider {
	return &openAIProvider{
		client: openai.NewClient(apiKey),
		logger: logger.With("source", "openAIProvider"),
	}
}

func (p *openAIProvider) ID() string {
	return ProviderOpenAI
}

func (p *openAIProvider) GenerateText(ctx context.Context, modelID, prompt string, opts Options) (string, error) {
	var messages []openai.ChatCompletionMessage

	if opts.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.SystemPrompt,
		})
	}

	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(opts.Images) > 0 {
		parts := []openai.ChatMessagePart{{Type: openai.ChatMessagePartTypeText, Text: prompt}}
		for _, img := range opts.Images {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(img),
				},
			})
		}
		user.MultiContent = parts
	} else {
		user.Content = prompt
	}
	messages = append(messages, user)

	request := openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
		Model:       modelID,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.JSONMode {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	completion, err := p.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", errors.Wrap(ErrGenerationFailed, "openai chat completion", slog.String("model", modelID), errors.SlogError(err))
	}
	if len(completion.Choices) == 0 {
		return "", errors.Wrap(ErrGenerationFailed, "openai returned no choices", slog.String("model", modelID))
	}
	return completion.Choices[0].Message.Content, nil
}

func (p *openAIProvider) GenerateImage(ctx context.Context, modelID, prompt string, width, height int) (string, error) {
	// DALL-E 3 only supports three fixed sizes; map the request to the
	// closest one.
	size := openai.CreateImageSize1024x1024
	switch {
	case width > height:
		size = openai.CreateImageSize1792x1024
	case height > width:
		size = openai.CreateImageSize1024x1792
	}

	response, err := p.client.CreateImage(ctx, openai.ImageRequest{ //nolint:exhaustruct // this is better for readability
		Model:          modelID,
		Prompt:         prompt,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
		N:              1,
	})
	if err != nil {
		return "", errors.Wrap(ErrGenerationFailed, "openai image generation", slog.String("model", modelID), errors.SlogError(err))
	}
	if len(response.Data) == 0 {
		return "", errors.Wrap(ErrGenerationFailed, "openai returned no image", slog.String("model", modelID))
	}
	if b64 := response.Data[0].B64JSON; b64 != "" {
		return fmt.Sprintf("data:image/png;base64,%s", b64), nil
	}
	return response.Data[0].URL, nil
}
