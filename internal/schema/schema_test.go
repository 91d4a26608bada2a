package schema_test

import (
	"bookforge/internal/models"
	"bookforge/internal/schema"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestResearchCoercion(t *testing.T) {
	// Rating supplied as a string must coerce to the number.
	data := []byte(`{
		"summary": "Grim.",
		"ethicalRating": "7",
		"profitPotential": 42,
		"marketStats": [{"label": "Failure rate", "value": 92, "context": "2024 survey"}],
		"hiddenCosts": [],
		"caseStudies": [],
		"affiliates": []
	}`)

	record, err := schema.Research(data)
	require.NoError(t, err)
	require.Equal(t, 7, record.EthicalRating)
	require.Equal(t, "42", record.ProfitPotential)
	require.Len(t, record.MarketStats, 1)
	require.Equal(t, "92", record.MarketStats[0].Value)
}

func TestResearchEnumRelaxation(t *testing.T) {
	// Unknown enum values pass through as strings instead of rejecting.
	data := []byte(`{
		"summary": "s",
		"ethicalRating": 5,
		"profitPotential": "low",
		"marketStats": [],
		"hiddenCosts": [],
		"caseStudies": [{
			"name": "Dana",
			"type": "DRAW",
			"background": "b",
			"strategy": "s",
			"outcome": "o",
			"revenue": "$0"
		}],
		"affiliates": []
	}`)

	record, err := schema.Research(data)
	require.NoError(t, err)
	require.Equal(t, models.CaseStudyType("DRAW"), record.CaseStudies[0].Type)
}

func TestResearchMissingArraysDefaultEmpty(t *testing.T) {
	data := []byte(`{"summary": "s", "ethicalRating": 3, "profitPotential": "p"}`)

	record, err := schema.Research(data)
	require.NoError(t, err)
	require.NotNil(t, record.MarketStats)
	require.NotNil(t, record.HiddenCosts)
	require.NotNil(t, record.CaseStudies)
	require.NotNil(t, record.Affiliates)
	require.Empty(t, record.MarketStats)
}

func TestResearchViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "missing summary",
			data: `{"ethicalRating": 5, "profitPotential": "p"}`,
			want: "summary: required",
		},
		{
			name: "rating out of range",
			data: `{"summary": "s", "ethicalRating": 12, "profitPotential": "p"}`,
			want: "outside [1,10]",
		},
		{
			name: "stat missing context",
			data: `{"summary": "s", "ethicalRating": 5, "profitPotential": "p",
				"marketStats": [{"label": "l", "value": "v"}]}`,
			want: "marketStats[0].context: required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Research([]byte(tt.data))
			require.ErrorIs(t, err, schema.ErrInvalidRecord)

			var verr *schema.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, "ResearchRecord", verr.Kind)
			require.Contains(t, verr.Error(), tt.want)
		})
	}
}

func TestOutline(t *testing.T) {
	data := []byte(`{
		"title": "Dropshipping: The Autopsy",
		"subtitle": "A forensic reading",
		"frontCover": {"titleText": "T", "visualDescription": "A rotting golden apple"},
		"chapterBriefs": [
			{"number": "1", "title": "The Lie", "detailedBrief": "Attack the pitch."},
			{"number": 2, "title": "The Math", "detailedBrief": "Destroy the budget myth."}
		]
	}`)

	outline, err := schema.Outline(data)
	require.NoError(t, err)
	require.Len(t, outline.ChapterBriefs, 2)
	require.Equal(t, 1, outline.ChapterBriefs[0].Number)
	require.NotNil(t, outline.FrontCover)
	require.Nil(t, outline.BackCover)
}

func TestOutlineRejectsEmptyBriefs(t *testing.T) {
	_, err := schema.Outline([]byte(`{"title": "t", "subtitle": "s", "chapterBriefs": []}`))
	require.ErrorIs(t, err, schema.ErrInvalidRecord)
}

func TestOutlineRejectsNonPositiveBriefNumber(t *testing.T) {
	_, err := schema.Outline([]byte(`{"title": "t", "subtitle": "s",
		"chapterBriefs": [{"number": 0, "title": "x", "detailedBrief": "y"}]}`))
	require.ErrorIs(t, err, schema.ErrInvalidRecord)
}

func TestChapterContent(t *testing.T) {
	data := []byte(`{
		"content": "## The Lie\n\nYou thought it was easy...",
		"posiBotQuotes": [{"position": "LEFT", "text": "Math is just a mindset!"}],
		"visuals": [{"type": "HERO", "description": "A maze off a cliff", "caption": "The roadmap"}]
	}`)

	content, err := schema.ChapterContent(data)
	require.NoError(t, err)
	require.Equal(t, models.QuoteLeft, content.PosiBotQuotes[0].Position)
	require.Equal(t, models.VisualHero, content.Visuals[0].Type)
}

func TestChapterContentDefaults(t *testing.T) {
	content, err := schema.ChapterContent([]byte(`{"content": "body"}`))
	require.NoError(t, err)
	require.NotNil(t, content.PosiBotQuotes)
	require.NotNil(t, content.Visuals)
	require.Empty(t, content.Visuals)
}

func TestChapterContentUnknownVisualType(t *testing.T) {
	content, err := schema.ChapterContent([]byte(`{
		"content": "body",
		"visuals": [{"type": "INFOGRAPHIC", "description": "d"}]
	}`))
	require.NoError(t, err)
	require.Equal(t, models.VisualType("INFOGRAPHIC"), content.Visuals[0].Type)
}

func TestPodcastScript(t *testing.T) {
	data := []byte(`{
		"title": "The Reality Check",
		"lines": [
			{"speaker": "Host 1", "text": "Ninety-two percent fail."},
			{"speaker": "Host 2", "text": "Wait, ninety-two?"}
		]
	}`)

	script, err := schema.PodcastScript(data)
	require.NoError(t, err)
	require.Len(t, script.Lines, 2)
	require.Equal(t, "Host 1", script.Lines[0].Speaker)
}

func TestPodcastScriptRejectsMissingLines(t *testing.T) {
	_, err := schema.PodcastScript([]byte(`{"title": "t", "lines": []}`))
	require.ErrorIs(t, err, schema.ErrInvalidRecord)
}
