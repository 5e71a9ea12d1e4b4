package recommend

import (
	"encoding/json"
	"strings"
)

// snippetLimit bounds the diagnostic text carried inside an ExtractionError.
const snippetLimit = 200

func truncateSnippet(raw string) string {
	if len(raw) > snippetLimit {
		return raw[:snippetLimit]
	}
	return raw
}

// locatePayload finds the JSON candidate inside free-form model text. The full
// input is tried first; otherwise the substring between the FIRST opening and
// the LAST closing delimiter is used. Greedy first/last matching can
// over-capture when surrounding prose itself contains bracket characters; this
// is a known limitation of the heuristic and is kept as-is for parity with the
// observed model-output handling.
func locatePayload(raw string, open, close byte) (string, *ExtractionError) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == open && json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, close)
	if start == -1 || end == -1 || start >= end {
		return "", &ExtractionError{Step: StepDelimiters, Snippet: truncateSnippet(raw)}
	}
	return raw[start : end+1], nil
}

// ExtractArray coerces model text holding a JSON array into v (a pointer to a
// slice). Prose before and after the array is tolerated.
func ExtractArray(raw string, v interface{}) error {
	payload, xerr := locatePayload(raw, '[', ']')
	if xerr != nil {
		return xerr
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return &ExtractionError{Step: StepParse, Snippet: truncateSnippet(raw), Err: err}
	}
	return nil
}

// ExtractObject coerces model text holding a JSON object into v. When
// requiredKey is non-empty its presence is verified post-parse, so an
// otherwise valid object missing the key still fails extraction.
func ExtractObject(raw string, v interface{}, requiredKey string) error {
	payload, xerr := locatePayload(raw, '{', '}')
	if xerr != nil {
		return xerr
	}

	if requiredKey != "" {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal([]byte(payload), &probe); err != nil {
			return &ExtractionError{Step: StepParse, Snippet: truncateSnippet(raw), Err: err}
		}
		if _, ok := probe[requiredKey]; !ok {
			return &ExtractionError{Step: StepRequiredKey, Snippet: truncateSnippet(raw)}
		}
	}

	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return &ExtractionError{Step: StepParse, Snippet: truncateSnippet(raw), Err: err}
	}
	return nil
}
