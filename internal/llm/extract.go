package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON carves a JSON literal out of free-form model output: it takes
// everything from the first open delimiter to the last close delimiter, inclusive,
// and requires that substring to parse.
//
// This is a heuristic, not a JSON-in-text parser. Prose after the payload that
// contains another close delimiter is swallowed into the candidate and makes it
// fail to parse; several JSON blocks in one answer are not told apart.
func ExtractJSON(text string, open, close byte) (json.RawMessage, error) {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no %c...%c block in output", ErrInvalidModelOutput, open, close)
	}

	candidate := []byte(text[start : end+1])
	if !json.Valid(candidate) {
		return nil, fmt.Errorf("%w: %c...%c block does not parse", ErrInvalidModelOutput, open, close)
	}
	return json.RawMessage(candidate), nil
}

// ExtractArray extracts the first-[ to last-] JSON array from model output.
func ExtractArray(text string) ([]json.RawMessage, error) {
	raw, err := ExtractJSON(text, '[', ']')
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}
	return items, nil
}

// ExtractObject extracts the first-{ to last-} JSON object from model output.
func ExtractObject(text string) (map[string]json.RawMessage, error) {
	raw, err := ExtractJSON(text, '{', '}')
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}
	return fields, nil
}
