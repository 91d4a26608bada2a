package main

import (
	"bookforge/internal/models"
	"bookforge/internal/podcast"
	"bookforge/internal/prompts"
	"bookforge/internal/schema"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newPodcastCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct // this is better for readability
		Use:     "podcast [topic]",
		GroupID: "generate",
		Short:   "Generate a two-host podcast episode",
		Long: `Researches the topic and writes a two-host dialogue script. With --book, the
episode reviews that generated book. With --audio, the script is synthesized
into a WAV file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.Join(args, " ")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			bookPath, _ := cmd.Flags().GetString("book")
			audioPath, _ := cmd.Flags().GetString("audio")
			outPath, _ := cmd.Flags().GetString("out")

			settings := podcastSettingsFromFlags(cmd)
			for _, voice := range []string{settings.Host1Voice, settings.Host2Voice} {
				if err := validateVoice(voice); err != nil {
					return err
				}
			}

			record, err := runResearch(cmd, app, topic, "", "", noCache)
			if err != nil {
				return err
			}

			var book *models.Book
			if bookPath != "" {
				raw, err := os.ReadFile(bookPath)
				if err != nil {
					return err
				}
				if book, err = schema.Book(raw); err != nil {
					return err
				}
			}

			service := podcast.NewService(app.registry, app.logger)
			script, err := service.GenerateScript(cmd.Context(), topic, record, settings, book)
			if err != nil {
				return err
			}

			var audio []byte
			if audioPath != "" {
				if audio, err = service.GenerateAudio(cmd.Context(), script, settings); err != nil {
					return err
				}
				if err = os.WriteFile(audioPath, audio, 0o644); err != nil {
					return err
				}
				cmd.PrintErrln("audio written to " + audioPath)
			}

			episode := podcast.NewEpisode(script, audio, settings)
			return writeJSON(outPath, episode)
		},
	}
	cmd.Flags().String("host1-voice", "Charon", "prebuilt voice for Host 1, one of: "+voiceList())
	cmd.Flags().String("host2-voice", "Puck", "prebuilt voice for Host 2, one of: "+voiceList())
	cmd.Flags().String("host1-name", "Host 1", "display name for Host 1")
	cmd.Flags().String("host2-name", "Host 2", "display name for Host 2")
	cmd.Flags().String("conversation-style", "Skeptical vs Optimist", "dialogue style")
	cmd.Flags().Int("length", models.TierStandard, "length tier: 1 short, 2 standard, 3 deep dive")
	cmd.Flags().String("book", "", "path to a generated book JSON the hosts should review")
	cmd.Flags().String("audio", "", "synthesize audio and write a WAV file to this path")
	cmd.Flags().Bool("no-cache", false, "ignore the research cache")
	cmd.Flags().String("out", "", "write the episode JSON to this file instead of stdout")
	return cmd
}

func validateVoice(id string) error {
	for _, voice := range prompts.PodcastVoices {
		if voice.ID == id {
			return nil
		}
	}
	return fmt.Errorf("unknown podcast voice %q, available: %s", id, voiceList())
}

func voiceList() string {
	labels := make([]string, len(prompts.PodcastVoices))
	for i, voice := range prompts.PodcastVoices {
		labels[i] = voice.Label
	}
	return strings.Join(labels, ", ")
}

func podcastSettingsFromFlags(cmd *cobra.Command) models.PodcastSettings {
	var settings models.PodcastSettings //nolint:exhaustruct // this is better for readability
	settings.Host1Voice, _ = cmd.Flags().GetString("host1-voice")
	settings.Host2Voice, _ = cmd.Flags().GetString("host2-voice")
	settings.Host1Name, _ = cmd.Flags().GetString("host1-name")
	settings.Host2Name, _ = cmd.Flags().GetString("host2-name")
	settings.ConversationStyle, _ = cmd.Flags().GetString("conversation-style")
	settings.LengthLevel, _ = cmd.Flags().GetInt("length")
	return settings
}
