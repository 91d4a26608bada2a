// Package jsonx recovers JSON values from large-language-model output. Models
// vary between returning clean JSON, fenced JSON, and JSON buried in
// commentary, so extraction runs a cascade of increasingly aggressive
// strategies and the first successful parse wins.
package jsonx

import (
	"bookforge/internal/errors"
	"encoding/json"
	"regexp"
	"strings"
)

// ErrUnparseableOutput signals that every extraction strategy was exhausted.
var ErrUnparseableOutput = errors.NewSentinel("unparseable model output")

var (
	jsonFenceRe   = regexp.MustCompile("(?i)```json")
	objectSpanRe  = regexp.MustCompile(`(?s)(\{.*\})`)
	arraySpanRe   = regexp.MustCompile(`(?s)(\[.*\])`)
	leadingTextRe = regexp.MustCompile(`(?s)^[^\[{]*`)
	trailingRe    = regexp.MustCompile(`(?s)[^\]}]*$`)
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
	bareKeyRe     = regexp.MustCompile(`(\w+):`)
)

// Extract recovers the first parseable JSON payload from raw model output and
// returns its bytes. The strategy order matters: cheap strategies must not be
// skipped when they would have worked.
func Extract(raw string) (json.RawMessage, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.Wrap(ErrUnparseableOutput, "empty model output")
	}

	for _, candidate := range candidates(raw) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		var probe any
		if err := json.Unmarshal([]byte(candidate), &probe); err == nil {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, errors.Wrap(ErrUnparseableOutput, "all extraction strategies exhausted")
}

// Value extracts and unmarshals the payload into a generic value.
func Value(raw string) (any, error) {
	data, err := Extract(raw)
	if err != nil {
		return nil, err
	}
	var v any
	if err = json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(ErrUnparseableOutput, "unmarshal extracted payload")
	}
	return v, nil
}

// candidates yields each strategy's slice of raw in cascade order. Parsing is
// attempted by the caller; a strategy that finds nothing yields no candidate.
func candidates(raw string) []string {
	out := make([]string, 0, 8)

	// 1. Direct parse of the trimmed text.
	out = append(out, raw)

	// 2. Payload of a fenced block explicitly labeled as JSON.
	if loc := jsonFenceRe.FindStringIndex(raw); loc != nil {
		start := loc[1]
		if end := strings.Index(raw[start:], "```"); end != -1 {
			out = append(out, raw[start:start+end])
		}
	}

	// 3. Payload of the first generic fenced block.
	if start := strings.Index(raw, "```"); start != -1 {
		body := start + 3
		if end := strings.Index(raw[body:], "```"); end != -1 {
			out = append(out, raw[body:body+end])
		}
	}

	// 4. Payload of the first inline single-backtick span.
	if start := strings.Index(raw, "`"); start != -1 {
		body := start + 1
		if end := strings.Index(raw[body:], "`"); end != -1 {
			out = append(out, raw[body:body+end])
		}
	}

	// 5. Greedy balanced-looking object or array span.
	if m := objectSpanRe.FindStringSubmatch(raw); m != nil {
		out = append(out, m[1])
	}
	if m := arraySpanRe.FindStringSubmatch(raw); m != nil {
		out = append(out, m[1])
	}

	// 6. Aggressive cleanup: drop fences and any prose around the payload.
	clean := jsonFenceRe.ReplaceAllString(raw, "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = leadingTextRe.ReplaceAllString(clean, "")
	clean = trailingRe.ReplaceAllString(clean, "")
	out = append(out, clean)

	// 7. Syntax repair: trailing commas, single quotes, bare keys.
	repaired := trailingComma.ReplaceAllString(raw, "$1")
	repaired = strings.ReplaceAll(repaired, "'", `"`)
	repaired = bareKeyRe.ReplaceAllString(repaired, `"$1":`)
	if m := objectSpanRe.FindStringSubmatch(repaired); m != nil {
		out = append(out, m[1])
	}

	return out
}
