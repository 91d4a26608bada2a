package schema

import (
	"bookforge/internal/models"
	"encoding/json"
	"fmt"
)

type scriptLineWire struct {
	Speaker *Str `json:"speaker"`
	Text    *Str `json:"text"`
}

type podcastScriptWire struct {
	Title *Str             `json:"title"`
	Lines []scriptLineWire `json:"lines"`
}

// PodcastScript validates data against the dialogue script shape.
func PodcastScript(data []byte) (*models.PodcastScript, error) {
	const kind = "PodcastScript"

	var wire podcastScriptWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, invalid(kind, []string{err.Error()})
	}

	var violations []string
	if wire.Title == nil {
		violations = append(violations, "title: required")
	}
	if len(wire.Lines) == 0 {
		violations = append(violations, "lines: required")
	}

	script := models.PodcastScript{
		Title: str(wire.Title),
		Lines: make([]models.PodcastScriptLine, 0, len(wire.Lines)),
	}
	for i, l := range wire.Lines {
		if l.Speaker == nil {
			violations = append(violations, fmt.Sprintf("lines[%d].speaker: required", i))
		}
		if l.Text == nil {
			violations = append(violations, fmt.Sprintf("lines[%d].text: required", i))
		}
		script.Lines = append(script.Lines, models.PodcastScriptLine{
			Speaker: str(l.Speaker),
			Text:    str(l.Text),
		})
	}

	if len(violations) > 0 {
		return nil, invalid(kind, violations)
	}
	return &script, nil
}
