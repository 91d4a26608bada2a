// Package author implements the two-stage book pipeline: an architect call
// that produces an outline with per-chapter briefs, and a ghostwriter call per
// brief. A failed chapter degrades to an apology placeholder; only a failed
// outline kills the draft.
package author

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
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrOutlineFailed marks the fatal case: without an outline there are no
// briefs and nothing to write.
var ErrOutlineFailed = errors.NewSentinel("outline generation failed")

// failedChapterContent replaces the body of any chapter whose generation
// failed, so one bad chapter never kills the whole book.
const failedChapterContent = "## Content Generation Failed\n\nWe apologize, but the ghostwriter was intercepted by legal counsel. Please regenerate this chapter."

// Progress receives human-readable status lines as the draft advances.
type Progress func(msg string)

// Agent drives outline and chapter generation against the configured writing
// model.
type Agent struct {
	registry *llm.Registry
	logger   *slog.Logger
}

func NewAgent(registry *llm.Registry, logger *slog.Logger) *Agent {
	return &Agent{
		registry: registry,
		logger:   logger.With("source", "author.Agent"),
	}
}

// GenerateDraft runs the full pipeline: outline, one ghostwriter call per
// brief, assembly. Chapters run sequentially unless settings.Workers raises
// the bound; assembly re-sorts by brief number either way. onProgress may be
// nil.
func (a *Agent) GenerateDraft(ctx context.Context, topic string, research *models.ResearchRecord, settings models.GenSettings, onProgress Progress) (*models.Book, error) {
	report := func(msg string) {
		if onProgress != nil {
			onProgress(msg)
		}
	}

	report("Architecting book structure and chapter briefs...")
	outline, err := a.GenerateOutline(ctx, topic, research, settings)
	if err != nil {
		return nil, err
	}

	chapters, err := a.writeChapters(ctx, topic, research, settings, outline, report)
	if err != nil {
		return nil, err
	}

	report("Finalizing manuscript...")
	return &models.Book{
		Title:      outline.Title,
		Subtitle:   outline.Subtitle,
		FrontCover: outline.FrontCover,
		BackCover:  outline.BackCover,
		Chapters:   chapters,
	}, nil
}

func (a *Agent) writeChapters(ctx context.Context, topic string, research *models.ResearchRecord, settings models.GenSettings, outline *models.Outline, report Progress) ([]models.Chapter, error) {
	workers := settings.Workers
	if workers < 1 {
		workers = 1
	}

	chapters := make([]models.Chapter, len(outline.ChapterBriefs))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, brief := range outline.ChapterBriefs {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "draft cancelled")
		}

		group.Go(func() error {
			// Announced here, not at dispatch: with a bounded group the
			// closure only starts once a worker slot frees, so the status
			// line always names the chapter actually being written.
			mu.Lock()
			report(fmt.Sprintf("Writing Chapter %d: %s...", brief.Number, brief.Title))
			mu.Unlock()

			chapter := models.Chapter{
				Number:        brief.Number,
				Title:         brief.Title,
				Content:       failedChapterContent,
				PosiBotQuotes: []models.PosiBotQuote{},
				Visuals:       []models.VisualElement{},
			}
			content, err := a.GenerateChapter(groupCtx, topic, research, settings, brief, outline.Title)
			if err != nil {
				// Placeholder stands in; the group never sees the failure so
				// sibling chapters keep going.
				a.logger.ErrorContext(groupCtx, "chapter generation failed",
					slog.Int("chapter", brief.Number), errors.SlogError(err))
			} else {
				chapter.Content = content.Content
				chapter.PosiBotQuotes = content.PosiBotQuotes
				chapter.Visuals = content.Visuals
			}
			mu.Lock()
			chapters[i] = chapter
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.Wrap(err, "chapter generation aborted")
	}

	sort.SliceStable(chapters, func(i, j int) bool { return chapters[i].Number < chapters[j].Number })
	return chapters, nil
}

// GenerateOutline is the architect stage.
func (a *Agent) GenerateOutline(ctx context.Context, topic string, research *models.ResearchRecord, settings models.GenSettings) (*models.Outline, error) {
	provider, def, err := a.resolveModel(ctx, settings)
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrOutlineFailed, err), "resolve writing model")
	}

	stats := research.MarketStats
	if len(stats) > 5 {
		stats = stats[:5]
	}
	statsJSON, _ := json.Marshal(stats)
	summaryJSON, _ := json.Marshal(research.Summary)

	structure := "Full Standard (8 Chapters)"
	if settings.LengthLevel == models.TierNano {
		structure = "Condensed (4 Chapters)"
	}
	manifest := manifestOrDefault(settings.Manifest)

	prompt := fmt.Sprintf(`Topic: %s
Research Data Summary: %s
Key Stats: %s

USER MANIFEST (CRITICAL - FOLLOW THESE RULES):
%s

Global Constraints:
Tone: %s
Structure: %s

Task: Create the master outline and DETAILED CHAPTER BRIEFS for the ghostwriter.
IMPORTANT: If the Manifest contains a [MANUSCRIPT OVERRIDE] for a chapter, the brief MUST instruct the ghostwriter to use that exact text.`,
		topic, summaryJSON, statsJSON, manifest, toneOrDefault(settings.Tone), structure)

	raw, err := a.structuredCall(ctx, provider, def.ID, prompt, prompts.OutlineSystem)
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrOutlineFailed, err), "architect stage")
	}
	outline, err := schema.Outline(raw)
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrOutlineFailed, err), "architect output invalid")
	}
	return outline, nil
}

// GenerateChapter is the ghostwriter stage for one brief. The full research
// record and manifest are re-sent on every call so each chapter stands alone.
func (a *Agent) GenerateChapter(ctx context.Context, topic string, research *models.ResearchRecord, settings models.GenSettings, brief models.ChapterBrief, bookTitle string) (*models.ChapterContent, error) {
	provider, def, err := a.resolveModel(ctx, settings)
	if err != nil {
		return nil, errors.Wrap(err, "resolve writing model")
	}

	researchJSON, _ := json.Marshal(research)

	prompt := fmt.Sprintf(`Book Title: %s
Topic: %s
Research Data (Reference this for facts): %s

CHAPTER ASSIGNMENT:
Number: %d
Title: %s
BRIEFING INSTRUCTIONS: %s

MANIFEST / SPEC (Look here for specific PosiBot rules or Overrides):
%s

Global Tone: %s
Tech Level: %d
PosiBot Voice Samples (match this register): %s`,
		bookTitle, topic, researchJSON, brief.Number, brief.Title, brief.DetailedBrief,
		manifestOrDefault(settings.Manifest), toneOrDefault(settings.Tone), settings.TechLevel,
		strings.Join(prompts.PosiBotQuotes, " | "))

	raw, err := a.structuredCall(ctx, provider, def.ID, prompt, prompts.ChapterSystem)
	if err != nil {
		return nil, errors.Wrap(err, "ghostwriter stage", slog.Int("chapter", brief.Number))
	}
	content, err := schema.ChapterContent(raw)
	if err != nil {
		return nil, errors.Wrap(err, "ghostwriter output invalid", slog.Int("chapter", brief.Number))
	}
	return content, nil
}

func (a *Agent) resolveModel(ctx context.Context, settings models.GenSettings) (llm.Provider, llm.ModelDefinition, error) {
	modelID := settings.WritingModel
	if modelID == "" {
		modelID = llm.DefaultTextModel
	}
	return a.registry.ForModel(ctx, modelID)
}

func (a *Agent) structuredCall(ctx context.Context, provider llm.Provider, modelID, prompt, system string) (json.RawMessage, error) {
	text, err := provider.GenerateText(ctx, modelID, prompt, llm.Options{ //nolint:exhaustruct // this is better for readability
		SystemPrompt: system,
		JSONMode:     true,
		Temperature:  0.7,
		MaxTokens:    8192,
	})
	if err != nil {
		return nil, err
	}
	raw, err := jsonx.Extract(text)
	if err != nil {
		raw, err = jsonx.Extract(jsonx.Repair(text))
		if err != nil {
			return nil, errors.Wrap(err, "model output unparseable", slog.Int("output_len", len(text)))
		}
	}
	return raw, nil
}

func toneOrDefault(tone string) string {
	if strings.TrimSpace(tone) == "" {
		return "Default Y-It Satire"
	}
	return tone
}

// manifestOrDefault substitutes the stock structure, density, and art spec
// when the caller supplies no manifest of their own.
func manifestOrDefault(manifest string) string {
	if strings.TrimSpace(manifest) == "" {
		return prompts.DefaultManifest
	}
	return manifest
}
