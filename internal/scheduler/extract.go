package scheduler

import "strings"

// extractJSONObject pulls the first complete JSON object out of free text.
// Models tend to wrap their JSON in prose or markdown fences, so this scans
// from the first '{' and tracks brace depth, honoring string literals and
// escapes so that braces inside string values do not truncate the object.
// Returns "" when the text holds no complete object.
func extractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}
