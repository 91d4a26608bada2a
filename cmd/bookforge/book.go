package main

import (
	"bookforge/internal/author"
	"bookforge/internal/broker"
	"bookforge/internal/media"
	"bookforge/internal/models"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newBookCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct // this is better for readability
		Use:     "book [topic]",
		GroupID: "generate",
		Short:   "Generate a complete book",
		Long: `Runs the full pipeline: research, outline, per-chapter ghostwriting, assembly.
With --illustrate, cover art is generated for the front and back covers.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.Join(args, " ")
			settings, err := settingsFromFlags(cmd)
			if err != nil {
				return err
			}
			noCache, _ := cmd.Flags().GetBool("no-cache")
			illustrate, _ := cmd.Flags().GetBool("illustrate")
			outPath, _ := cmd.Flags().GetString("out")

			record, err := runResearch(cmd, app, topic, settings.ResearchModel, "", noCache)
			if err != nil {
				return err
			}

			book, err := generateBookStreaming(cmd, app, topic, record, settings)
			if err != nil {
				return err
			}

			if illustrate && !settings.TextOnly {
				illustrateCovers(cmd, app, book, settings)
			}
			return writeJSON(outPath, book)
		},
	}
	cmd.Flags().String("writing-model", "", "model for outline and chapters (default catalog text model)")
	cmd.Flags().String("research-model", "", "model for research agents and synthesis")
	cmd.Flags().String("image-model", "", "model for cover art")
	cmd.Flags().String("tone", "", "overall tone, e.g. \"Dry British Satire\"")
	cmd.Flags().String("style", "", "visual style for generated art")
	cmd.Flags().Int("length", models.TierStandard, "length tier: 1 nano, 2 standard, 3 deep")
	cmd.Flags().Int("density", models.TierStandard, "image density tier: 1-3")
	cmd.Flags().Int("tech-level", models.TierStandard, "technical depth tier: 1-3")
	cmd.Flags().Int("words", 0, "target word count, 0 for default")
	cmd.Flags().Int("workers", 1, "concurrent chapter generations")
	cmd.Flags().String("manifest", "", "path to a custom manifest file")
	cmd.Flags().Bool("text-only", false, "skip all image generation")
	cmd.Flags().Bool("illustrate", false, "generate cover art")
	cmd.Flags().Bool("no-cache", false, "ignore the research cache")
	cmd.Flags().String("out", "", "write the book JSON to this file instead of stdout")
	return cmd
}

func settingsFromFlags(cmd *cobra.Command) (models.GenSettings, error) {
	var settings models.GenSettings //nolint:exhaustruct // this is better for readability
	settings.Tone, _ = cmd.Flags().GetString("tone")
	settings.VisualStyle, _ = cmd.Flags().GetString("style")
	settings.LengthLevel, _ = cmd.Flags().GetInt("length")
	settings.ImageDensity, _ = cmd.Flags().GetInt("density")
	settings.TechLevel, _ = cmd.Flags().GetInt("tech-level")
	settings.TargetWordCount, _ = cmd.Flags().GetInt("words")
	settings.Workers, _ = cmd.Flags().GetInt("workers")
	settings.TextOnly, _ = cmd.Flags().GetBool("text-only")
	settings.ResearchModel, _ = cmd.Flags().GetString("research-model")
	settings.WritingModel, _ = cmd.Flags().GetString("writing-model")
	settings.ImageModel, _ = cmd.Flags().GetString("image-model")

	if manifestPath, _ := cmd.Flags().GetString("manifest"); manifestPath != "" {
		raw, err := os.ReadFile(manifestPath)
		if err != nil {
			return settings, err
		}
		settings.Manifest = string(raw)
	}
	return settings, nil
}

// generateBookStreaming runs the author pipeline in a goroutine and streams
// its progress through the broker, the same handoff the eventual serving
// surface will use.
func generateBookStreaming(cmd *cobra.Command, app *application, topic string, record *models.ResearchRecord, settings models.GenSettings) (*models.Book, error) {
	b := broker.New()
	go b.Start()
	defer b.Stop()

	runID := uuid.NewString()
	events := make(chan broker.Event)
	b.Publish(runID, events)

	type result struct {
		book *models.Book
		err  error
	}
	done := make(chan result, 1)

	go func() {
		agent := author.NewAgent(app.registry, app.logger)
		book, err := agent.GenerateDraft(cmd.Context(), topic, record, settings, func(msg string) {
			events <- broker.Event{Stage: broker.StageWriting, Message: msg} //nolint:exhaustruct // this is better for readability
		})
		close(events)
		b.Unpublish(runID)
		done <- result{book: book, err: err}
	}()

	if stream := <-b.Subscribe(runID); stream != nil {
		for event := range stream {
			cmd.PrintErrln(event.Message)
		}
	}
	r := <-done
	return r.book, r.err
}

func illustrateCovers(cmd *cobra.Command, app *application, book *models.Book, settings models.GenSettings) {
	service := media.NewImageService(app.registry, app.logger)
	for _, cover := range []*models.Cover{book.FrontCover, book.BackCover} {
		if cover == nil || cover.VisualDescription == "" {
			continue
		}
		url, err := service.Generate(cmd.Context(), cover.VisualDescription, settings.VisualStyle, settings.ImageModel, true)
		if err != nil {
			// A failed illustration never blocks the manuscript.
			cmd.PrintErrln(fmt.Sprintf("cover illustration failed: %v", err))
			continue
		}
		cover.ImageURL = url
	}
}
