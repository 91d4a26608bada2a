// Package manuscript imports externally written text as a Book. JSON input is
// accepted as-is (restored exports); anything else goes through a forgiving
// markdown parser.
package manuscript

import (
	"bookforge/internal/models"
	"bookforge/internal/schema"
	"regexp"
	"strings"
)

var (
	titleRe     = regexp.MustCompile(`^#\s+(.+)`)
	chapterRe   = regexp.MustCompile(`(?i)^##\s*Chapter\s*(\d+|One|Two|Three)?[:\s]*(.+)`)
	visualTagRe = regexp.MustCompile(`(?i)\[Visual:\s*([A-Za-z]+)?\s*[-:]\s*(.+)\]`)
	mdImageRe   = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	posiBotRe   = regexp.MustCompile(`(?i)^>\s*PosiBot:\s*(.+)`)
)

// Parse converts manuscript text into a Book. JSON that validates as a book
// wins; otherwise the text is treated as markdown with `#` title, `## Chapter
// N: Title` splits, `[Visual: TYPE - desc]` tags, `![alt](url)` images, and
// `> PosiBot: quote` sidebars.
func Parse(text string) *models.Book {
	if book, err := schema.Book([]byte(text)); err == nil {
		if book.Title == "" {
			book.Title = "Untitled Import"
		}
		if book.Subtitle == "" {
			book.Subtitle = "Restored Manuscript"
		}
		return book
	}
	return parseMarkdown(text)
}

func parseMarkdown(text string) *models.Book {
	title := "Imported Manuscript"
	subtitle := "Draft Upload"

	var chapters []models.Chapter
	var current *models.Chapter
	var content []string
	inHeader := true

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(content, "\n"))
		chapters = append(chapters, *current)
		content = nil
	}
	startChapter := func(chapterTitle string) {
		flush()
		inHeader = false
		current = &models.Chapter{
			Number:        len(chapters) + 1,
			Title:         chapterTitle,
			Content:       "",
			PosiBotQuotes: []models.PosiBotQuote{},
			Visuals:       []models.VisualElement{},
		}
	}

	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if inHeader {
			if m := titleRe.FindStringSubmatch(trimmed); m != nil {
				title = m[1]
				continue
			}
			if chapterRe.MatchString(trimmed) || (strings.HasPrefix(trimmed, "##") && i > 5) {
				inHeader = false
			} else if after, ok := strings.CutPrefix(trimmed, "## "); ok {
				subtitle = after
				continue
			}
		}

		if m := chapterRe.FindStringSubmatch(trimmed); m != nil {
			chapterTitle := strings.TrimSpace(m[2])
			if chapterTitle == "" {
				chapterTitle = "Untitled Chapter"
			}
			startChapter(chapterTitle)
			continue
		}
		if after, ok := strings.CutPrefix(trimmed, "## "); !inHeader && ok {
			startChapter(after)
			continue
		}

		if current == nil {
			continue
		}

		if m := visualTagRe.FindStringSubmatch(trimmed); m != nil {
			current.Visuals = append(current.Visuals, models.VisualElement{ //nolint:exhaustruct // this is better for readability
				Type:        visualType(m[1]),
				Description: m[2],
				Caption:     m[2],
			})
			continue
		}
		if m := mdImageRe.FindStringSubmatch(trimmed); m != nil {
			// Inline images are assumed important.
			current.Visuals = append(current.Visuals, models.VisualElement{
				Type:        models.VisualHero,
				Description: m[1],
				Caption:     m[1],
				ImageURL:    m[2],
			})
			continue
		}
		if m := posiBotRe.FindStringSubmatch(trimmed); m != nil {
			position := models.QuoteLeft
			if len(current.PosiBotQuotes)%2 == 1 {
				position = models.QuoteRight
			}
			current.PosiBotQuotes = append(current.PosiBotQuotes, models.PosiBotQuote{
				Position: position,
				Text:     strings.TrimSpace(m[1]),
			})
			continue
		}

		content = append(content, line)
	}
	flush()

	return &models.Book{
		Title:    title,
		Subtitle: subtitle,
		FrontCover: &models.Cover{ //nolint:exhaustruct // this is better for readability
			TitleText:         title,
			SubtitleText:      subtitle,
			VisualDescription: "A striking cover representing the book topic.",
		},
		BackCover: &models.Cover{ //nolint:exhaustruct // this is better for readability
			Blurb:             "Imported manuscript.",
			VisualDescription: "Abstract patterns.",
		},
		Chapters: chapters,
	}
}

func visualType(raw string) models.VisualType {
	switch models.VisualType(strings.ToUpper(raw)) {
	case models.VisualHero, models.VisualChart, models.VisualCallout, models.VisualPortrait, models.VisualDiagram:
		return models.VisualType(strings.ToUpper(raw))
	default:
		return models.VisualDiagram
	}
}
