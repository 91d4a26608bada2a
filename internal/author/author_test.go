package author_test

import (
	"bookforge/internal/author"
	"bookforge/internal/llm"
	"bookforge/internal/models"
	"bookforge/internal/testhelpers"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const outlineJSON = `{
	"title": "The Dropshipping Delusion",
	"subtitle": "Why 99% Fail",
	"frontCover": {"titleText": "The Dropshipping Delusion", "visualDescription": "A rotting golden apple"},
	"backCover": {"blurb": "The math they hid from you.", "visualDescription": "A burning wallet"},
	"chapterBriefs": [
		{"number": 1, "title": "The Lie", "detailedBrief": "Attack the passive income myth."},
		{"number": 2, "title": "The Math", "detailedBrief": "Destroy the $500 startup claim."},
		{"number": 3, "title": "Alternatives", "detailedBrief": "Index funds and freelancing."}
	]
}`

const chapterJSON = `{
	"content": "## The Truth\n\nYou thought it was easy...",
	"posiBotQuotes": [{"position": "LEFT", "text": "Just manifest the sales!"}],
	"visuals": [{"type": "HERO", "description": "A maze off a cliff", "caption": "The roadmap"}]
}`

// routingProvider answers the architect and ghostwriter stages differently and
// can fail specific chapters.
type routingProvider struct {
	mu           sync.Mutex
	failChapters map[string]bool
	failOutline  bool
	calls        []string
	hook         func(prompt string)
}

func (p *routingProvider) ID() string { return llm.ProviderGoogle }

func (p *routingProvider) GenerateText(_ context.Context, _, prompt string, _ llm.Options) (string, error) {
	if p.hook != nil {
		p.hook(prompt)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, prompt)
	if strings.Contains(prompt, "CHAPTER ASSIGNMENT") {
		for title := range p.failChapters {
			if strings.Contains(prompt, "Title: "+title) {
				return "", llm.ErrGenerationFailed
			}
		}
		return chapterJSON, nil
	}
	if p.failOutline {
		return "the model rambled instead of returning JSON", nil
	}
	return outlineJSON, nil
}

func (p *routingProvider) GenerateImage(context.Context, string, string, int, int) (string, error) {
	return "", llm.ErrUnsupportedCapability
}

func newAgent(t *testing.T, provider llm.Provider) *author.Agent {
	t.Helper()
	registry := llm.NewRegistry(llm.Credentials{}, testhelpers.NewLogger(io.Discard)) //nolint:exhaustruct // this is better for readability
	registry.Register(llm.ProviderGoogle, provider)
	return author.NewAgent(registry, testhelpers.NewLogger(io.Discard))
}

func sampleResearch() *models.ResearchRecord {
	return &models.ResearchRecord{ //nolint:exhaustruct // this is better for readability
		Summary:       "Saturated market.",
		EthicalRating: 4,
		MarketStats:   []models.Stat{{Label: "Failure rate", Value: "90%", Context: "first year"}},
	}
}

func TestGenerateDraft_AssemblesBook(t *testing.T) {
	t.Parallel()
	provider := &routingProvider{} //nolint:exhaustruct // this is better for readability
	agent := newAgent(t, provider)

	var progress []string
	book, err := agent.GenerateDraft(context.Background(), "dropshipping", sampleResearch(),
		models.GenSettings{}, func(msg string) { progress = append(progress, msg) }) //nolint:exhaustruct // this is better for readability
	require.NoError(t, err)

	require.Equal(t, "The Dropshipping Delusion", book.Title)
	require.Equal(t, "Why 99% Fail", book.Subtitle)
	require.NotNil(t, book.FrontCover)
	require.Len(t, book.Chapters, 3)
	for i, chapter := range book.Chapters {
		require.Equal(t, i+1, chapter.Number)
		require.Contains(t, chapter.Content, "You thought it was easy")
		require.Len(t, chapter.PosiBotQuotes, 1)
	}

	require.Equal(t, "Architecting book structure and chapter briefs...", progress[0])
	require.Contains(t, progress, "Writing Chapter 1: The Lie...")
	require.Equal(t, "Finalizing manuscript...", progress[len(progress)-1])
}

func TestGenerateDraft_FailedChapterGetsPlaceholder(t *testing.T) {
	t.Parallel()
	provider := &routingProvider{failChapters: map[string]bool{"The Math": true}} //nolint:exhaustruct // this is better for readability
	agent := newAgent(t, provider)

	book, err := agent.GenerateDraft(context.Background(), "dropshipping", sampleResearch(),
		models.GenSettings{}, nil) //nolint:exhaustruct // this is better for readability
	require.NoError(t, err)
	require.Len(t, book.Chapters, 3)

	failed := book.Chapters[1]
	require.Equal(t, 2, failed.Number)
	require.Equal(t, "The Math", failed.Title)
	require.Contains(t, failed.Content, "Content Generation Failed")
	require.Contains(t, failed.Content, "intercepted by legal counsel")
	require.Empty(t, failed.PosiBotQuotes)
	require.Empty(t, failed.Visuals)

	// Siblings are unaffected.
	require.Contains(t, book.Chapters[0].Content, "You thought it was easy")
	require.Contains(t, book.Chapters[2].Content, "You thought it was easy")
}

func TestGenerateDraft_OutlineFailureIsFatal(t *testing.T) {
	t.Parallel()
	provider := &routingProvider{failOutline: true} //nolint:exhaustruct // this is better for readability
	agent := newAgent(t, provider)

	_, err := agent.GenerateDraft(context.Background(), "dropshipping", sampleResearch(),
		models.GenSettings{}, nil) //nolint:exhaustruct // this is better for readability
	require.ErrorIs(t, err, author.ErrOutlineFailed)
}

func TestGenerateDraft_ConcurrentChaptersStaySorted(t *testing.T) {
	t.Parallel()
	provider := &routingProvider{} //nolint:exhaustruct // this is better for readability
	agent := newAgent(t, provider)

	book, err := agent.GenerateDraft(context.Background(), "dropshipping", sampleResearch(),
		models.GenSettings{Workers: 3}, nil) //nolint:exhaustruct // this is better for readability
	require.NoError(t, err)
	require.Len(t, book.Chapters, 3)
	for i, chapter := range book.Chapters {
		require.Equal(t, i+1, chapter.Number)
	}
}

func TestGenerateDraft_ProgressTracksChapterInFlight(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var lastStatus string
	type observed struct{ prompt, status string }
	var chapterCalls []observed

	provider := &routingProvider{} //nolint:exhaustruct // this is better for readability
	provider.hook = func(prompt string) {
		if !strings.Contains(prompt, "CHAPTER ASSIGNMENT") {
			return
		}
		mu.Lock()
		chapterCalls = append(chapterCalls, observed{prompt: prompt, status: lastStatus})
		mu.Unlock()
	}
	agent := newAgent(t, provider)

	_, err := agent.GenerateDraft(context.Background(), "dropshipping", sampleResearch(),
		models.GenSettings{}, func(msg string) { //nolint:exhaustruct // this is better for readability
			if strings.HasPrefix(msg, "Writing Chapter") {
				mu.Lock()
				lastStatus = msg
				mu.Unlock()
			}
		})
	require.NoError(t, err)
	require.Len(t, chapterCalls, 3)

	// The status line current during each model call must name the chapter
	// that call is writing, not a later one already dispatched.
	titles := []string{"The Lie", "The Math", "Alternatives"}
	for _, call := range chapterCalls {
		matched := ""
		for _, title := range titles {
			if strings.Contains(call.prompt, "Title: "+title) {
				matched = title
			}
		}
		require.NotEmpty(t, matched)
		require.Contains(t, call.status, matched)
	}
}

func TestGenerateChapter_ResendsManifestAndResearch(t *testing.T) {
	t.Parallel()
	provider := &routingProvider{} //nolint:exhaustruct // this is better for readability
	agent := newAgent(t, provider)

	settings := models.GenSettings{Manifest: "Ch 2 must quote Seneca.", Tone: "Dry"} //nolint:exhaustruct // this is better for readability
	brief := models.ChapterBrief{Number: 2, Title: "The Math", DetailedBrief: "Destroy the $500 myth."}
	_, err := agent.GenerateChapter(context.Background(), "dropshipping", sampleResearch(), settings, brief, "The Dropshipping Delusion")
	require.NoError(t, err)

	provider.mu.Lock()
	defer provider.mu.Unlock()
	require.Len(t, provider.calls, 1)
	prompt := provider.calls[0]
	require.Contains(t, prompt, "Ch 2 must quote Seneca.")
	require.Contains(t, prompt, "Saturated market.")
	require.Contains(t, prompt, "BRIEFING INSTRUCTIONS: Destroy the $500 myth.")
	require.Contains(t, prompt, "Global Tone: Dry")
	// A custom manifest replaces the stock one.
	require.NotContains(t, prompt, "Universal 8-Chapter Structure")
}

func TestEmptyManifestFallsBackToStockSpec(t *testing.T) {
	t.Parallel()
	provider := &routingProvider{} //nolint:exhaustruct // this is better for readability
	agent := newAgent(t, provider)

	_, err := agent.GenerateOutline(context.Background(), "dropshipping", sampleResearch(),
		models.GenSettings{}) //nolint:exhaustruct // this is better for readability
	require.NoError(t, err)

	brief := models.ChapterBrief{Number: 1, Title: "The Lie", DetailedBrief: "Attack the myth."}
	_, err = agent.GenerateChapter(context.Background(), "dropshipping", sampleResearch(),
		models.GenSettings{}, brief, "The Dropshipping Delusion") //nolint:exhaustruct // this is better for readability
	require.NoError(t, err)

	provider.mu.Lock()
	defer provider.mu.Unlock()
	require.Len(t, provider.calls, 2)
	for _, prompt := range provider.calls {
		require.Contains(t, prompt, "Universal 8-Chapter Structure")
		require.Contains(t, prompt, "PosiBot Sidebar Frequency")
		require.Contains(t, prompt, "Chapter Title Art Direction")
	}
	require.Contains(t, provider.calls[1], "PosiBot Voice Samples")
	require.Contains(t, provider.calls[1], "Just manifest the sales!")
}

func TestGenerateDraft_CancelledContext(t *testing.T) {
	t.Parallel()
	provider := &routingProvider{} //nolint:exhaustruct // this is better for readability
	agent := newAgent(t, provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := agent.GenerateDraft(ctx, "dropshipping", sampleResearch(),
		models.GenSettings{}, nil) //nolint:exhaustruct // this is better for readability
	require.Error(t, err)
}
