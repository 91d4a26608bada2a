package schema

import (
	"bookforge/internal/models"
	"encoding/json"
	"fmt"
)

type coverWire struct {
	TitleText         Str  `json:"titleText"`
	SubtitleText      Str  `json:"subtitleText"`
	Blurb             Str  `json:"blurb"`
	VisualDescription *Str `json:"visualDescription"`
	ImageURL          Str  `json:"imageUrl"`
}

type quoteWire struct {
	Position Str  `json:"position"`
	Text     *Str `json:"text"`
}

type visualWire struct {
	Type        Str  `json:"type"`
	Description *Str `json:"description"`
	Caption     Str  `json:"caption"`
	ImageURL    Str  `json:"imageUrl"`
}

type briefWire struct {
	Number        *Int `json:"number"`
	Title         *Str `json:"title"`
	DetailedBrief *Str `json:"detailedBrief"`
}

type outlineWire struct {
	Title         *Str        `json:"title"`
	Subtitle      *Str        `json:"subtitle"`
	FrontCover    *coverWire  `json:"frontCover"`
	BackCover     *coverWire  `json:"backCover"`
	ChapterBriefs []briefWire `json:"chapterBriefs"`
}

type chapterContentWire struct {
	Content       *Str         `json:"content"`
	PosiBotQuotes []quoteWire  `json:"posiBotQuotes"`
	Visuals       []visualWire `json:"visuals"`
}

type chapterWire struct {
	Number        *Int         `json:"number"`
	Title         *Str         `json:"title"`
	Content       *Str         `json:"content"`
	PosiBotQuotes []quoteWire  `json:"posiBotQuotes"`
	Visuals       []visualWire `json:"visuals"`
}

type bookWire struct {
	Title      *Str          `json:"title"`
	Subtitle   *Str          `json:"subtitle"`
	FrontCover *coverWire    `json:"frontCover"`
	BackCover  *coverWire    `json:"backCover"`
	Chapters   []chapterWire `json:"chapters"`
}

// Outline validates data against the architect-stage Outline shape. Every
// brief needs a positive number, a title, and a detailed brief since those are
// the only structure driving the ghostwriter stage.
func Outline(data []byte) (*models.Outline, error) {
	const kind = "Outline"

	var wire outlineWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, invalid(kind, []string{err.Error()})
	}

	var violations []string
	if wire.Title == nil {
		violations = append(violations, "title: required")
	}
	if wire.Subtitle == nil {
		violations = append(violations, "subtitle: required")
	}
	if len(wire.ChapterBriefs) == 0 {
		violations = append(violations, "chapterBriefs: required")
	}

	outline := models.Outline{
		Title:         str(wire.Title),
		Subtitle:      str(wire.Subtitle),
		FrontCover:    convertCover(wire.FrontCover, "frontCover", &violations),
		BackCover:     convertCover(wire.BackCover, "backCover", &violations),
		ChapterBriefs: make([]models.ChapterBrief, 0, len(wire.ChapterBriefs)),
	}

	for i, b := range wire.ChapterBriefs {
		field := fmt.Sprintf("chapterBriefs[%d]", i)
		switch {
		case b.Number == nil:
			violations = append(violations, field+".number: required")
		case *b.Number < 1:
			violations = append(violations, fmt.Sprintf("%s.number: %d not positive", field, int(*b.Number)))
		}
		if b.Title == nil {
			violations = append(violations, field+".title: required")
		}
		if b.DetailedBrief == nil {
			violations = append(violations, field+".detailedBrief: required")
		}
		outline.ChapterBriefs = append(outline.ChapterBriefs, models.ChapterBrief{
			Number:        intOrZero(b.Number),
			Title:         str(b.Title),
			DetailedBrief: str(b.DetailedBrief),
		})
	}

	if len(violations) > 0 {
		return nil, invalid(kind, violations)
	}
	return &outline, nil
}

// ChapterContent validates data against the ghostwriter-stage shape. Quotes
// and visuals are optional and default to empty.
func ChapterContent(data []byte) (*models.ChapterContent, error) {
	const kind = "ChapterContent"

	var wire chapterContentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, invalid(kind, []string{err.Error()})
	}

	var violations []string
	if wire.Content == nil {
		violations = append(violations, "content: required")
	}
	quotes := convertQuotes(wire.PosiBotQuotes, "posiBotQuotes", &violations)
	visuals := convertVisuals(wire.Visuals, "visuals", &violations)

	if len(violations) > 0 {
		return nil, invalid(kind, violations)
	}
	return &models.ChapterContent{
		Content:       str(wire.Content),
		PosiBotQuotes: quotes,
		Visuals:       visuals,
	}, nil
}

// Book validates a fully assembled book, e.g. one restored from an external
// backup rather than produced by the author pipeline.
func Book(data []byte) (*models.Book, error) {
	const kind = "Book"

	var wire bookWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, invalid(kind, []string{err.Error()})
	}

	var violations []string
	if wire.Title == nil {
		violations = append(violations, "title: required")
	}
	if wire.Subtitle == nil {
		violations = append(violations, "subtitle: required")
	}

	book := models.Book{
		Title:      str(wire.Title),
		Subtitle:   str(wire.Subtitle),
		FrontCover: convertCover(wire.FrontCover, "frontCover", &violations),
		BackCover:  convertCover(wire.BackCover, "backCover", &violations),
		Chapters:   make([]models.Chapter, 0, len(wire.Chapters)),
	}

	for i, c := range wire.Chapters {
		field := fmt.Sprintf("chapters[%d]", i)
		if c.Number == nil {
			violations = append(violations, field+".number: required")
		}
		if c.Title == nil {
			violations = append(violations, field+".title: required")
		}
		if c.Content == nil {
			violations = append(violations, field+".content: required")
		}
		book.Chapters = append(book.Chapters, models.Chapter{
			Number:        intOrZero(c.Number),
			Title:         str(c.Title),
			Content:       str(c.Content),
			PosiBotQuotes: convertQuotes(c.PosiBotQuotes, field+".posiBotQuotes", &violations),
			Visuals:       convertVisuals(c.Visuals, field+".visuals", &violations),
		})
	}

	if len(violations) > 0 {
		return nil, invalid(kind, violations)
	}
	return &book, nil
}

func convertCover(w *coverWire, field string, violations *[]string) *models.Cover {
	if w == nil {
		return nil
	}
	if w.VisualDescription == nil {
		*violations = append(*violations, field+".visualDescription: required")
	}
	return &models.Cover{
		TitleText:         string(w.TitleText),
		SubtitleText:      string(w.SubtitleText),
		Blurb:             string(w.Blurb),
		VisualDescription: str(w.VisualDescription),
		ImageURL:          string(w.ImageURL),
	}
}

func convertQuotes(ws []quoteWire, field string, violations *[]string) []models.PosiBotQuote {
	quotes := make([]models.PosiBotQuote, 0, len(ws))
	for i, q := range ws {
		if q.Text == nil {
			*violations = append(*violations, fmt.Sprintf("%s[%d].text: required", field, i))
		}
		quotes = append(quotes, models.PosiBotQuote{
			Position: models.QuotePosition(q.Position),
			Text:     str(q.Text),
		})
	}
	return quotes
}

func convertVisuals(ws []visualWire, field string, violations *[]string) []models.VisualElement {
	visuals := make([]models.VisualElement, 0, len(ws))
	for i, v := range ws {
		if v.Description == nil {
			*violations = append(*violations, fmt.Sprintf("%s[%d].description: required", field, i))
		}
		visuals = append(visuals, models.VisualElement{
			Type:        models.VisualType(v.Type),
			Description: str(v.Description),
			Caption:     string(v.Caption),
			ImageURL:    string(v.ImageURL),
		})
	}
	return visuals
}

func intOrZero(i *Int) int {
	if i == nil {
		return 0
	}
	return int(*i)
}
