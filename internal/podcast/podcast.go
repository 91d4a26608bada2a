// Package podcast turns a research record (and optionally the generated book)
// into a two-host episode: a script stage, a multi-speaker synthesis stage,
// and WAV framing for the raw PCM the synthesizer returns.
package podcast

import (
	"bookforge/internal/errors"
	"bookforge/internal/jsonx"
	"bookforge/internal/llm"
	"bookforge/internal/models"
	"bookforge/internal/prompts"
	"bookforge/internal/schema"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// chapterSummaryLen bounds how much of each chapter body feeds the script
// prompt.
const chapterSummaryLen = 500

// Service generates podcast scripts and audio.
type Service struct {
	registry *llm.Registry
	logger   *slog.Logger
}

func NewService(registry *llm.Registry, logger *slog.Logger) *Service {
	return &Service{
		registry: registry,
		logger:   logger.With("source", "podcast.Service"),
	}
}

// GenerateScript writes the episode dialogue. A non-nil book turns the episode
// into a review of that book; otherwise it is an investigative report on the
// topic alone.
func (s *Service) GenerateScript(ctx context.Context, topic string, research *models.ResearchRecord, settings models.PodcastSettings, book *models.Book) (*models.PodcastScript, error) {
	modelID := llm.DefaultTextModel
	provider, def, err := s.registry.ForModel(ctx, modelID)
	if err != nil {
		return nil, errors.Wrap(err, "resolve podcast script model")
	}

	length := "Standard (5 minutes)"
	switch settings.LengthLevel {
	case models.TierNano:
		length = "Short (2 minutes)"
	case models.TierDeep:
		length = "Deep Dive (10 minutes)"
	}

	researchJSON, _ := json.Marshal(research)

	prompt := fmt.Sprintf(`Topic: %s
Research Data: %s
%s
Configuration:
- Style: %s
- Length: %s

Create a podcast script dialogue between Host 1 and Host 2.
If a Book is provided, structure the episode as a review/reaction to that specific book.
If no Book is provided, structure it as an investigative report on the topic.`,
		topic, researchJSON, bookContext(book), settings.ConversationStyle, length)

	text, err := provider.GenerateText(ctx, def.ID, prompt, llm.Options{ //nolint:exhaustruct // this is better for readability
		SystemPrompt: prompts.PodcastProducerSystem,
		JSONMode:     true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "podcast script generation")
	}

	raw, err := jsonx.Extract(text)
	if err != nil {
		raw, err = jsonx.Extract(jsonx.Repair(text))
		if err != nil {
			return nil, errors.Wrap(err, "podcast script unparseable", slog.Int("output_len", len(text)))
		}
	}
	script, err := schema.PodcastScript(raw)
	if err != nil {
		return nil, errors.Wrap(err, "podcast script invalid")
	}
	return script, nil
}

// bookContext renders the chapter summaries block, or an empty string when no
// book accompanies the episode.
func bookContext(book *models.Book) string {
	if book == nil {
		return ""
	}
	var summaries strings.Builder
	for _, chapter := range book.Chapters {
		content := chapter.Content
		if len(content) > chapterSummaryLen {
			content = content[:chapterSummaryLen]
		}
		fmt.Fprintf(&summaries, "Chapter %d (%s): %s...\n", chapter.Number, chapter.Title, content)
	}
	return fmt.Sprintf(`
THE BOOK BEING DISCUSSED:
Title: %s
Subtitle: %s

KEY NARRATIVE POINTS (Discuss these):
%s
INSTRUCTION: The hosts have read this book. They should discuss its specific "Lie", "Math", and "Hidden Killers". Quote the book's title directly.
`, book.Title, book.Subtitle, summaries.String())
}

// GenerateAudio synthesizes the script with the multi-speaker voices from
// settings and returns a complete WAV file.
func (s *Service) GenerateAudio(ctx context.Context, script *models.PodcastScript, settings models.PodcastSettings) ([]byte, error) {
	provider, def, err := s.registry.ForModel(ctx, llm.DefaultSpeechModel)
	if err != nil {
		return nil, errors.Wrap(err, "resolve speech model")
	}
	synth, ok := provider.(llm.SpeechSynthesizer)
	if !ok {
		return nil, errors.Wrap(llm.ErrUnsupportedCapability, "provider cannot synthesize speech",
			slog.String("provider", provider.ID()))
	}

	var dialogue strings.Builder
	for i, line := range script.Lines {
		if i > 0 {
			dialogue.WriteByte('\n')
		}
		dialogue.WriteString(line.Speaker)
		dialogue.WriteString(": ")
		dialogue.WriteString(line.Text)
	}

	voices := map[string]string{
		"Host 1": settings.Host1Voice,
		"Host 2": settings.Host2Voice,
	}
	pcm, err := synth.GenerateSpeech(ctx, def.ID, dialogue.String(), voices)
	if err != nil {
		return nil, errors.Wrap(err, "speech synthesis")
	}
	if len(pcm) == 0 {
		return nil, errors.Wrap(llm.ErrGenerationFailed, "no audio data generated")
	}

	// The synthesizer returns headerless 16-bit PCM at 24 kHz mono.
	return WrapWAV(pcm, 24000, 1), nil
}

// NewEpisode assembles a finished episode with a fresh identifier.
func NewEpisode(script *models.PodcastScript, audio []byte, settings models.PodcastSettings) models.PodcastEpisode {
	return models.PodcastEpisode{
		ID:        uuid.NewString(),
		Title:     script.Title,
		Script:    script.Lines,
		Audio:     audio,
		Settings:  settings,
		Timestamp: time.Now().UTC(),
	}
}
