package core

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var trailingCommaRe = regexp.MustCompile(`,\s*(\}|\])`)

// ParseDecision decodes raw model output into a Decision. Models frequently
// wrap the JSON payload in markdown code fences or emit trailing commas, so
// the input is normalised before unmarshalling. Fields beyond should_store and
// category (reason, confidence) are carried through opportunistically.
func ParseDecision(text string) (*Decision, error) {
	payload := stripFences(text)
	if len(payload) == 0 {
		return nil, NewError(ErrProviderCall, "empty completion")
	}
	if !json.Valid(payload) {
		// Limited repair: trailing commas before an object or array end.
		repaired := trailingCommaRe.ReplaceAll(payload, []byte("$1"))
		if !json.Valid(repaired) {
			return nil, NewError(ErrProviderCall, "completion is not valid JSON")
		}
		payload = repaired
	}
	var decision Decision
	if err := json.Unmarshal(payload, &decision); err != nil {
		return nil, NewError(ErrProviderCall, "decode decision", WithWrapped(err))
	}
	if decision.Category == "" {
		return nil, NewError(ErrProviderCall, "decision missing category")
	}
	return &decision, nil
}

// stripFences removes a surrounding markdown code fence (``` or ```json) and
// returns the trimmed payload.
func stripFences(text string) []byte {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(trimmed, "json")
		trimmed = strings.TrimPrefix(trimmed, "JSON")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
	}
	return bytes.TrimSpace([]byte(trimmed))
}
