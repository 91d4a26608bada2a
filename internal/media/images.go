// Package media generates cover and chapter illustrations.
package media

import (
	"bookforge/internal/errors"
	"bookforge/internal/llm"
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// defaultVisualStyle applies when the caller supplies no style of their own.
const defaultVisualStyle = "Photorealistic, Gritty, Forensic, High Contrast"

// ImageService renders visual descriptions into images via whichever provider
// serves the requested model.
type ImageService struct {
	registry *llm.Registry
	logger   *slog.Logger
}

func NewImageService(registry *llm.Registry, logger *slog.Logger) *ImageService {
	return &ImageService{
		registry: registry,
		logger:   logger.With("source", "media.ImageService"),
	}
}

// Generate renders subject in the given style and returns an image data URL.
// An empty modelID falls back to the default image model; highRes requests a
// wide cover-format frame.
func (s *ImageService) Generate(ctx context.Context, subject, visualStyle, modelID string, highRes bool) (string, error) {
	if _, ok := llm.Model(modelID); !ok {
		if modelID != "" {
			s.logger.WarnContext(ctx, "image model not in catalog, using default",
				slog.String("model", modelID), slog.String("fallback", llm.DefaultImageModel))
		}
		modelID = llm.DefaultImageModel
	}
	if strings.TrimSpace(visualStyle) == "" {
		visualStyle = defaultVisualStyle
	}
	// Subject text from chapter visuals often contains stray instructions;
	// the fixed frame keeps models from typesetting them into the image.
	prompt := fmt.Sprintf("Style: %s. Subject: %s. No text in image.", visualStyle, subject)

	provider, def, err := s.registry.ForModel(ctx, modelID)
	if err != nil {
		return "", errors.Wrap(err, "resolve image model", slog.String("model", modelID))
	}

	width, height := 1024, 1024
	if highRes {
		width = 1792
	}

	s.logger.InfoContext(ctx, "generating image",
		slog.String("model", def.ID), slog.String("provider", provider.ID()), slog.Bool("high_res", highRes))
	url, err := provider.GenerateImage(ctx, def.ID, prompt, width, height)
	if err != nil {
		return "", errors.Wrap(err, "image generation", slog.String("model", def.ID))
	}
	return url, nil
}
