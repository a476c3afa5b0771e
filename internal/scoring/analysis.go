package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedAnalysis is returned when the analyzer output is not a JSON object.
var ErrMalformedAnalysis = errors.New("malformed job analysis")

// JobAnalysis is the normalized view of a job description analysis.
type JobAnalysis struct {
	Skills       []string `json:"skills"`
	Technologies []string `json:"technologies"`
	FocusAreas   []string `json:"focusAreas"`
	IdealProfile string   `json:"idealProfile,omitempty"`
	Keywords     []string `json:"keywords"`
}

// field aliases accepted from the analyzer, first match wins.
var (
	skillsKeys       = []string{"skills", "technical_skills", "technicalSkills"}
	technologiesKeys = []string{"technologies", "tech_stack", "techStack"}
	focusAreasKeys   = []string{"focus_areas", "focusAreas", "keywords"}
	idealProfileKeys = []string{"ideal_profile", "idealProfile"}
)

// ParseAnalysis converts raw analyzer output into a JobAnalysis. Missing or
// wrongly typed fields become empty lists; only a non-object payload fails.
func ParseAnalysis(raw []byte) (JobAnalysis, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return JobAnalysis{}, fmt.Errorf("%w: empty response", ErrMalformedAnalysis)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil || obj == nil {
		return JobAnalysis{}, fmt.Errorf("%w: expected a JSON object", ErrMalformedAnalysis)
	}

	analysis := JobAnalysis{
		Skills:       stringList(obj, skillsKeys),
		Technologies: stringList(obj, technologiesKeys),
		FocusAreas:   stringList(obj, focusAreasKeys),
		IdealProfile: stringField(obj, idealProfileKeys),
	}
	analysis.Keywords = NormalizeKeywords(analysis.Skills, analysis.Technologies, analysis.FocusAreas)
	return analysis, nil
}

// NewJobAnalysis builds an analysis from already-typed lists.
func NewJobAnalysis(skills, technologies, focusAreas []string) JobAnalysis {
	a := JobAnalysis{
		Skills:       nonNil(skills),
		Technologies: nonNil(technologies),
		FocusAreas:   nonNil(focusAreas),
	}
	a.Keywords = NormalizeKeywords(a.Skills, a.Technologies, a.FocusAreas)
	return a
}

func stringList(obj map[string]json.RawMessage, keys []string) []string {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var items []any
		if err := json.Unmarshal(raw, &items); err != nil {
			return []string{}
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return []string{}
}

func stringField(obj map[string]json.RawMessage, keys []string) string {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	return ""
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
