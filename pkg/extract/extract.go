package extract

import (
	"encoding/json"
	"errors"
	"strings"
)

// Sentinel errors for the two ways recovery can fail.
var (
	// ErrNoDocument means no strategy produced parseable JSON.
	ErrNoDocument = errors.New("no JSON document found in model output")

	// ErrMissingIdeas means a document parsed but "ideas" is absent or not an array.
	ErrMissingIdeas = errors.New("model output missing an ideas array")
)

// A strategy proposes one candidate JSON string from the raw reply text.
// Returning ok=false means the strategy does not apply to this text.
type strategy func(text string) (candidate string, ok bool)

// strategies are tried in order; the first whose candidate parses wins.
var strategies = []strategy{
	strippedFences,
	braceSpan,
}

// Document extracts a JSON object from raw model output.
func Document(text string) (map[string]interface{}, error) {
	for _, s := range strategies {
		candidate, ok := s(text)
		if !ok {
			continue
		}

		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
			continue
		}
		if doc == nil {
			continue
		}
		return doc, nil
	}

	return nil, ErrNoDocument
}

// Ideas extracts a JSON object and verifies it carries an "ideas" array.
// The returned document is otherwise unvalidated: individual ideas are
// passed through to the caller exactly as the model produced them.
func Ideas(text string) (map[string]interface{}, error) {
	doc, err := Document(text)
	if err != nil {
		return nil, err
	}

	raw, present := doc["ideas"]
	if !present {
		return nil, ErrMissingIdeas
	}
	if _, isList := raw.([]interface{}); !isList {
		return nil, ErrMissingIdeas
	}

	return doc, nil
}

// strippedFences removes markdown code-fence markers (with or without a
// language tag) and trims the result. It always applies: for unfenced text
// this is a plain trim followed by a direct parse attempt.
func strippedFences(text string) (string, bool) {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```") {
		// Drop the opening fence line, including any language tag.
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}

	return strings.TrimSpace(s), true
}

// braceSpan returns the greedy brace-delimited span of the original text:
// everything from the first '{' through the last '}'. This recovers JSON
// embedded in surrounding prose.
func braceSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
