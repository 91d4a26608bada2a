package models

import "time"

// PodcastScriptLine is one utterance in the two-host dialogue.
type PodcastScriptLine struct {
	Speaker string `json:"speaker"` // "Host 1" or "Host 2"
	Text    string `json:"text"`
}

// PodcastScript is the structured output of the script generation stage.
type PodcastScript struct {
	Title string              `json:"title"`
	Lines []PodcastScriptLine `json:"lines"`
}

// PodcastEpisode pairs a script with its synthesized audio and the settings
// that produced it.
type PodcastEpisode struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Script    []PodcastScriptLine `json:"script"`
	Audio     []byte              `json:"-"`
	Settings  PodcastSettings     `json:"settings"`
	Timestamp time.Time           `json:"timestamp"`
}
