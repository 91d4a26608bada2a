package jsonx

import "strings"

// Repair cleans up a malformed JSON string without fully parsing it: markdown
// fences are stripped, trailing commas removed, and unclosed braces/brackets
// balanced by appending the missing closers in nesting order. The balancing
// guards against output truncated by a token limit, so it runs before schema
// validation on the synthesis path.
func Repair(raw string) string {
	if raw == "" {
		return "{}"
	}

	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	clean = trailingComma.ReplaceAllString(clean, "$1")

	return clean + missingClosers(clean)
}

// missingClosers scans s tracking unclosed braces and brackets outside string
// literals and returns the closers needed to balance them, innermost first.
func missingClosers(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	// A string cut off mid-literal needs its quote closed before the rest.
	closers := ""
	if inString {
		closers = `"`
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			closers += "}"
		} else {
			closers += "]"
		}
	}
	return closers
}
