package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"resume-builder/resume/model"
)

// Result is the outcome of matching a resume against a keyword list.
type Result struct {
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
}

// Rules holds the tunable data behind suggestion generation.
type Rules struct {
	// SkillsThreshold fires the skills advice when score is below it.
	SkillsThreshold int
	// AlignmentThreshold fires the bullet alignment advice when score is below it.
	AlignmentThreshold int
	// ImpactVerbs are searched in the resume text; none present fires the verb advice.
	ImpactVerbs []string
	// ExampleVerbs are quoted in the verb advice.
	ExampleVerbs []string
}

const (
	SuggestionSkills    = "Consider adding more industry-specific technical skills."
	SuggestionAlignment = "Optimize your bullet points to reflect job responsibilities."
)

// DefaultRules returns the production suggestion configuration.
func DefaultRules() Rules {
	return Rules{
		SkillsThreshold:    50,
		AlignmentThreshold: 70,
		ImpactVerbs:        []string{"achieved", "improved"},
		ExampleVerbs:       []string{"achieved", "led", "implemented"},
	}
}

// Engine scores resumes with a fixed rule set. The zero value uses DefaultRules.
type Engine struct {
	Rules *Rules
}

// CalculateScore scores content against keywords using DefaultRules.
func CalculateScore(content model.Content, keywords []string) Result {
	return Engine{}.Score(content, keywords)
}

// Score matches each keyword as a case-insensitive substring of the flattened
// resume text. Matching is lexical: "go" matches inside "going". Surrounding
// whitespace is ignored when matching, but the matched and missing lists hold
// the first-seen input strings as given.
func (e Engine) Score(content model.Content, keywords []string) Result {
	rules := DefaultRules()
	if e.Rules != nil {
		rules = *e.Rules
	}

	blob := Flatten(content)
	unique := distinctKeywords(keywords)

	matched := make([]string, 0, len(unique))
	missing := make([]string, 0, len(unique))
	for _, keyword := range unique {
		if strings.Contains(blob, strings.ToLower(strings.TrimSpace(keyword))) {
			matched = append(matched, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}

	score := 0
	if len(unique) > 0 {
		score = int(math.Round(100 * float64(len(matched)) / float64(len(unique))))
	}

	return Result{
		Score:           score,
		MatchedKeywords: matched,
		MissingKeywords: missing,
		Suggestions:     suggest(rules, score, blob),
	}
}

func suggest(rules Rules, score int, blob string) []string {
	out := make([]string, 0, 3)
	if score < rules.SkillsThreshold {
		out = append(out, SuggestionSkills)
	}
	if score < rules.AlignmentThreshold {
		out = append(out, SuggestionAlignment)
	}
	if len(rules.ImpactVerbs) > 0 && !containsAny(blob, rules.ImpactVerbs) {
		out = append(out, verbSuggestion(rules))
	}
	return out
}

func verbSuggestion(rules Rules) string {
	examples := rules.ExampleVerbs
	if len(examples) == 0 {
		examples = rules.ImpactVerbs
	}
	quoted := make([]string, len(examples))
	for i, v := range examples {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	var list string
	switch len(quoted) {
	case 1:
		list = quoted[0]
	case 2:
		list = quoted[0] + " or " + quoted[1]
	default:
		list = strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
	}
	return "Use more impact-focused verbs like " + list + "."
}

func containsAny(blob string, terms []string) bool {
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t != "" && strings.Contains(blob, t) {
			return true
		}
	}
	return false
}

// Flatten serializes the whole resume structure into lower-case text. Field
// names are part of the text, so field order never affects matching.
func Flatten(content model.Content) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(content); err != nil {
		return ""
	}
	return strings.ToLower(buf.String())
}
