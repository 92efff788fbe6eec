package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// extractJSON defensively extracts a JSON object from potentially noisy
// model output.
func extractJSON(data []byte) ([]byte, error) {
	// Strip markdown code blocks if present (```json ... ``` or ``` ... ```)
	str := stripMarkdownCodeBlocks(string(data))

	// Try direct parse
	if json.Valid([]byte(str)) {
		return []byte(str), nil
	}

	// Find JSON object boundaries as fallback
	start := strings.Index(str, "{")
	end := strings.LastIndex(str, "}")

	if start == -1 || end == -1 || start >= end {
		return nil, errors.New("no JSON object found in response")
	}

	extracted := str[start : end+1]
	if !json.Valid([]byte(extracted)) {
		return nil, errors.New("extracted content is not valid JSON")
	}

	return []byte(extracted), nil
}

// stripMarkdownCodeBlocks removes markdown code block markers from a string.
func stripMarkdownCodeBlocks(s string) string {
	s = strings.TrimSpace(s)
	// Check for ```json or ``` at start
	if cut, found := strings.CutPrefix(s, "```json"); found {
		s = cut
	} else if cut, found := strings.CutPrefix(s, "```"); found {
		s = cut
	}
	// Check for ``` at end
	if cut, found := strings.CutSuffix(s, "```"); found {
		s = cut
	}
	return strings.TrimSpace(s)
}
