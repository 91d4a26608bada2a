package models

type VisualType string

const (
	VisualHero     VisualType = "HERO"
	VisualChart    VisualType = "CHART"
	VisualCallout  VisualType = "CALLOUT"
	VisualPortrait VisualType = "PORTRAIT"
	VisualDiagram  VisualType = "DIAGRAM"
)

// VisualElement is an illustration slot inside a chapter. ImageURL is filled
// in later by the presentation layer once an image has been generated.
type VisualElement struct {
	Type        VisualType `json:"type"`
	Description string     `json:"description"`
	Caption     string     `json:"caption,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
}

// Cover describes the front or back cover of a book.
type Cover struct {
	TitleText         string `json:"titleText,omitempty"`
	SubtitleText      string `json:"subtitleText,omitempty"`
	Blurb             string `json:"blurb,omitempty"`
	VisualDescription string `json:"visualDescription"`
	ImageURL          string `json:"imageUrl,omitempty"`
}

type QuotePosition string

const (
	QuoteLeft  QuotePosition = "LEFT"
	QuoteRight QuotePosition = "RIGHT"
)

// PosiBotQuote is a toxic-positivity sidebar quote interrupting the chapter.
type PosiBotQuote struct {
	Position QuotePosition `json:"position"`
	Text     string        `json:"text"`
}

// Chapter is one fully written chapter with its sidebar quotes and visuals.
// Content is markdown.
type Chapter struct {
	Number        int             `json:"number"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	PosiBotQuotes []PosiBotQuote  `json:"posiBotQuotes"`
	Visuals       []VisualElement `json:"visuals"`
}

// Book is the final assembled artifact, chapters ordered by brief number.
type Book struct {
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	FrontCover *Cover    `json:"frontCover,omitempty"`
	BackCover  *Cover    `json:"backCover,omitempty"`
	Chapters   []Chapter `json:"chapters"`
}

// ChapterBrief is a per-chapter instruction record produced by the architect
// stage and consumed by the ghostwriter stage.
type ChapterBrief struct {
	Number        int    `json:"number"`
	Title         string `json:"title"`
	DetailedBrief string `json:"detailedBrief"`
}

// Outline is the architect-stage output: global book metadata plus the briefs
// that drive the ghostwriter. It is consumed immediately by the chapter loop
// and not retained past assembly.
type Outline struct {
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle"`
	FrontCover    *Cover         `json:"frontCover,omitempty"`
	BackCover     *Cover         `json:"backCover,omitempty"`
	ChapterBriefs []ChapterBrief `json:"chapterBriefs"`
}

// ChapterContent is the ghostwriter-stage output for a single brief.
type ChapterContent struct {
	Content       string          `json:"content"`
	PosiBotQuotes []PosiBotQuote  `json:"posiBotQuotes"`
	Visuals       []VisualElement `json:"visuals"`
}
