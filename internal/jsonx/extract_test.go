package jsonx_test

import (
	"bookforge/internal/jsonx"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{
			name: "raw JSON",
			raw:  `{"title": "The Lie", "rating": 4}`,
			want: map[string]any{"title": "The Lie", "rating": float64(4)},
		},
		{
			name: "json fenced block",
			raw:  "Sure! Here's the outline:\n```json\n{\"title\": \"The Lie\"}\n```\nLet me know if you need more.",
			want: map[string]any{"title": "The Lie"},
		},
		{
			name: "uppercase fence label",
			raw:  "```JSON\n{\"title\": \"The Lie\"}\n```",
			want: map[string]any{"title": "The Lie"},
		},
		{
			name: "bare fenced block",
			raw:  "Output below.\n```\n[1, 2, 3]\n```",
			want: []any{float64(1), float64(2), float64(3)},
		},
		{
			name: "inline backtick span",
			raw:  "The result is `{\"ok\": true}` as requested.",
			want: map[string]any{"ok": true},
		},
		{
			name: "object buried in prose",
			raw:  "After careful analysis I concluded {\"verdict\": \"LOSER\"} which says it all.",
			want: map[string]any{"verdict": "LOSER"},
		},
		{
			name: "trailing commas",
			raw:  `{"stats": [1, 2,], "done": true,}`,
			want: map[string]any{"stats": []any{float64(1), float64(2)}, "done": true},
		},
		{
			name: "single quotes and bare keys",
			raw:  `{summary: 'grim', rating: 2}`,
			want: map[string]any{"summary": "grim", "rating": float64(2)},
		},
		{
			name: "array payload",
			raw:  "Here you go: [\"a\", \"b\"]",
			want: []any{"a", "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jsonx.Value(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

// Extraction must be idempotent with respect to wrapping: an already-valid
// payload parses to the same value whether bare or fenced with prose around it.
func TestExtractIdempotence(t *testing.T) {
	payload := `{"summary": "s", "marketStats": [{"label": "l", "value": "92%", "context": "c"}]}`

	bare, err := jsonx.Value(payload)
	require.NoError(t, err)

	fenced, err := jsonx.Value("Certainly! Here is the data you asked for:\n```json\n" + payload + "\n```\nHope this helps!")
	require.NoError(t, err)

	require.Equal(t, bare, fenced)
}

func TestExtractFailure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace", raw: "   \n\t"},
		{name: "prose only", raw: "I could not produce any structured data for this topic."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jsonx.Extract(tt.raw)
			require.ErrorIs(t, err, jsonx.ErrUnparseableOutput)
		})
	}
}

func TestRepair(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty input", raw: "", want: "{}"},
		{name: "strips fences", raw: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "removes trailing comma", raw: `{"a": 1,}`, want: `{"a": 1}`},
		{
			name: "balances truncated output",
			raw:  `{"chapters": [{"number": 1, "title": "The Lie"`,
			want: `{"chapters": [{"number": 1, "title": "The Lie"}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, jsonx.Repair(tt.raw))
		})
	}
}
