package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse is returned when a completion does not have the expected shape.
var ErrMalformedResponse = errors.New("malformed llm response")

// StripFences removes a surrounding markdown code fence some models add to JSON output.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseBullets accepts a bare JSON array or an object holding "optimized_bullets".
func ParseBullets(raw string) ([]string, error) {
	data := []byte(StripFences(raw))
	if bytes.HasPrefix(data, []byte("[")) {
		return stringArray(data)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for _, key := range []string{"optimized_bullets", "optimizedBullets", "bullets"} {
		if v, ok := obj[key]; ok {
			return stringArray(v)
		}
	}
	return nil, fmt.Errorf("%w: optimized_bullets missing", ErrMalformedResponse)
}

// ParseCoverLetter extracts the "cover_letter" text.
func ParseCoverLetter(raw string) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(StripFences(raw)), &obj); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for _, key := range []string{"cover_letter", "coverLetter"} {
		v, ok := obj[key]
		if !ok {
			continue
		}
		var text string
		if err := json.Unmarshal(v, &text); err != nil {
			return "", fmt.Errorf("%w: %s is not a string", ErrMalformedResponse, key)
		}
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("%w: empty cover letter", ErrMalformedResponse)
		}
		return text, nil
	}
	return "", fmt.Errorf("%w: cover_letter missing", ErrMalformedResponse)
}

func stringArray(data []byte) ([]string, error) {
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: expected an array", ErrMalformedResponse)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
