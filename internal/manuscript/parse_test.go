package manuscript_test

import (
	"bookforge/internal/manuscript"
	"bookforge/internal/models"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_JSONImport(t *testing.T) {
	t.Parallel()
	book := manuscript.Parse(`{
		"title": "Restored",
		"subtitle": "From Backup",
		"chapters": [{"number": 1, "title": "The Lie", "content": "Body text."}]
	}`)

	require.Equal(t, "Restored", book.Title)
	require.Equal(t, "From Backup", book.Subtitle)
	require.Len(t, book.Chapters, 1)
	require.Equal(t, "Body text.", book.Chapters[0].Content)
}

func TestParse_Markdown(t *testing.T) {
	t.Parallel()
	book := manuscript.Parse(`# The Dropshipping Delusion
## Why 99% Fail

## Chapter 1: The Lie
The pitch sounds perfect.

[Visual: HERO - A rotting golden apple]
More text after the visual.

## Chapter 2: The Math
Real numbers.
![cost chart](https://example.com/chart.png)
> PosiBot: Math is just a mindset!
`)

	require.Equal(t, "The Dropshipping Delusion", book.Title)
	require.Equal(t, "Why 99% Fail", book.Subtitle)
	require.Len(t, book.Chapters, 2)

	first := book.Chapters[0]
	require.Equal(t, 1, first.Number)
	require.Equal(t, "The Lie", first.Title)
	require.Contains(t, first.Content, "The pitch sounds perfect.")
	require.NotContains(t, first.Content, "[Visual:")
	require.Len(t, first.Visuals, 1)
	require.Equal(t, models.VisualHero, first.Visuals[0].Type)
	require.Equal(t, "A rotting golden apple", first.Visuals[0].Description)

	second := book.Chapters[1]
	require.Equal(t, "The Math", second.Title)
	require.Len(t, second.Visuals, 1)
	require.Equal(t, models.VisualHero, second.Visuals[0].Type)
	require.Equal(t, "https://example.com/chart.png", second.Visuals[0].ImageURL)
	require.Len(t, second.PosiBotQuotes, 1)
	require.Equal(t, "Math is just a mindset!", second.PosiBotQuotes[0].Text)
	require.Equal(t, models.QuoteLeft, second.PosiBotQuotes[0].Position)

	require.NotNil(t, book.FrontCover)
	require.Equal(t, "The Dropshipping Delusion", book.FrontCover.TitleText)
	require.NotNil(t, book.BackCover)
}

func TestParse_LooseHeadersBecomeChapters(t *testing.T) {
	t.Parallel()
	book := manuscript.Parse(`# Title

## Chapter 1: Start
Text one.

## Just A Heading
Text two.
`)
	require.Len(t, book.Chapters, 2)
	require.Equal(t, "Just A Heading", book.Chapters[1].Title)
	require.Equal(t, 2, book.Chapters[1].Number)
}

func TestParse_UnknownVisualTypeDefaultsToDiagram(t *testing.T) {
	t.Parallel()
	book := manuscript.Parse(`# T

## Chapter 1: C
[Visual: SPLASH - something odd]
`)
	require.Len(t, book.Chapters, 1)
	require.Len(t, book.Chapters[0].Visuals, 1)
	require.Equal(t, models.VisualDiagram, book.Chapters[0].Visuals[0].Type)
}

func TestParse_PlainTextFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	book := manuscript.Parse("just some prose with no structure at all")
	require.Equal(t, "Imported Manuscript", book.Title)
	require.Equal(t, "Draft Upload", book.Subtitle)
	require.Empty(t, book.Chapters)
}
