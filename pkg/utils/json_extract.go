package utils

import (
	"strings"
)

// ExtractJSONObject pulls the first JSON object out of model output that may
// be wrapped in markdown fences or surrounded by prose. Returns false when no
// object can be located.
func ExtractJSONObject(s string) (string, bool) {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}

	if end := findMatchingBrace(s, start); end != -1 {
		return s[start : end+1], true
	}

	// Unbalanced output: fall back to the last closing brace.
	end := strings.LastIndex(s, "}")
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func findMatchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
