package main

import (
	"bookforge/internal/media"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newImageCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct // this is better for readability
		Use:     "image [prompt]",
		GroupID: "media",
		Short:   "Generate a single image",
		Long:    `Generates one image from a prompt with the configured image model and writes it to a PNG file.`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := strings.Join(args, " ")
			style, _ := cmd.Flags().GetString("style")
			modelID, _ := cmd.Flags().GetString("model")
			highRes, _ := cmd.Flags().GetBool("hi-res")
			outPath, _ := cmd.Flags().GetString("out")

			service := media.NewImageService(app.registry, app.logger)
			url, err := service.Generate(cmd.Context(), subject, style, modelID, highRes)
			if err != nil {
				return err
			}

			data, err := decodeDataURL(url)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			cmd.Printf("The image was saved as %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().String("out", "./out.png", "path to generated image file")
	cmd.Flags().String("style", "", "visual style wrapped around the prompt")
	cmd.Flags().String("model", "", "image model (default catalog image model)")
	cmd.Flags().Bool("hi-res", false, "wide cover-format frame")
	return cmd
}

func decodeDataURL(url string) ([]byte, error) {
	_, payload, found := strings.Cut(url, ";base64,")
	if !found {
		return nil, fmt.Errorf("provider returned a non-data URL: %.40q", url)
	}
	return base64.StdEncoding.DecodeString(payload)
}
