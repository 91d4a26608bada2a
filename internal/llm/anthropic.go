package llm

import (
	"bookforge/internal/errors"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion = "2023-06-01"

	defaultAnthropicMaxTokens = 8192
)

// anthropicProvider talks to the Anthropic Messages API over plain HTTP.
type anthropicProvider struct {
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func newAnthropicProvider(apiKey string, logger *slog.Logger) *anthropicProvider {
	return &anthropicProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Minute}, //nolint:exhaustruct // this is better for readability
		logger:     logger.With("source", "anthropicProvider"),
	}
}

func (p *anthropicProvider) ID() string {
	return ProviderAnthropic
}

type anthropicContentBlock struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicMessage struct {
	Role    string                  `json:"role"`
	Content []anthropicContentBlock `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature *float32           `json:"temperature,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []anthropicContentBlock `json:"content"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *anthropicProvider) GenerateText(ctx context.Context, modelID, prompt string, opts Options) (string, error) {
	content := make([]anthropicContentBlock, 0, len(opts.Images)+1)
	for _, img := range opts.Images {
		content = append(content, anthropicContentBlock{ //nolint:exhaustruct // this is better for readability
			Type: "image",
			Source: &anthropicSource{
				Type:      "base64",
				MediaType: "image/png",
				Data:      base64.StdEncoding.EncodeToString(img),
			},
		})
	}
	content = append(content, anthropicContentBlock{Type: "text", Text: prompt}) //nolint:exhaustruct // this is better for readability

	system := opts.SystemPrompt
	if opts.JSONMode {
		// The Messages API has no structured output switch. Steering the
		// system prompt keeps parity with providers that do.
		if system != "" {
			system += "\n\n"
		}
		system += "CRITICAL: Return ONLY valid JSON. No markdown fences, no commentary."
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	request := anthropicRequest{
		Model:     modelID,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: content}},
	}
	if opts.Temperature > 0 {
		request.Temperature = &opts.Temperature
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", errors.Wrap(err, "marshal anthropic request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicBaseURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build anthropic request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(ErrGenerationFailed, "anthropic request failed", slog.String("model", modelID), errors.SlogError(err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(ErrGenerationFailed, "read anthropic response", slog.String("model", modelID), errors.SlogError(err))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", errors.Wrap(ErrGenerationFailed, "decode anthropic response",
			slog.String("model", modelID), slog.Int("status", resp.StatusCode), errors.SlogError(err))
	}
	if resp.StatusCode != http.StatusOK {
		message := fmt.Sprintf("status %d", resp.StatusCode)
		if parsed.Error != nil {
			message = parsed.Error.Message
		}
		return "", errors.Wrap(ErrGenerationFailed, "anthropic API error",
			slog.String("model", modelID), slog.Int("status", resp.StatusCode), slog.String("message", message))
	}

	for _, block := range parsed.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", errors.Wrap(ErrGenerationFailed, "anthropic returned no text", slog.String("model", modelID))
}

func (p *anthropicProvider) GenerateImage(_ context.Context, modelID, _ string, _, _ int) (string, error) {
	return "", errors.Wrap(ErrUnsupportedCapability, "anthropic has no image model", slog.String("model", modelID))
}
