package templates

import "encoding/json"

// Font selects the base typeface family of a template.
type Font int

const (
	FontSans Font = iota
	FontSerif
)

// HeaderStyle selects how the name block is separated from the body.
type HeaderStyle int

const (
	HeaderPlain HeaderStyle = iota
	HeaderRuleThin
	HeaderRuleHeavy
	HeaderRuleAccent
	HeaderSideBar
)

// Accent is the highlight color used for links, dates and rules.
type Accent int

const (
	AccentStone Accent = iota
	AccentInk
	AccentEmerald
	AccentIndigo
	AccentAmber
)

// SectionTitleStyle selects the decoration of section headings.
type SectionTitleStyle int

const (
	TitleMuted SectionTitleStyle = iota
	TitleLeftBar
	TitleUnderline
	TitleUnderlineHeavy
	TitleAccentSpaced
)

// BodyTone selects the body text contrast.
type BodyTone int

const (
	BodyMuted BodyTone = iota
	BodyStrong
)

// GridColor is the color of the decorative dot grid; GridNone disables it.
type GridColor int

const (
	GridNone GridColor = iota
	GridEmerald
	GridIndigo
	GridAmber
)

// StyleTokens is the complete visual description of a template. It carries no
// markup; renderers map each token to their own output.
type StyleTokens struct {
	Font         Font              `json:"font"`
	Header       HeaderStyle       `json:"header"`
	Accent       Accent            `json:"accent"`
	SectionTitle SectionTitleStyle `json:"sectionTitle"`
	Body         BodyTone          `json:"body"`
	Grid         GridColor         `json:"grid"`
}

var (
	fontNames         = []string{"sans", "serif"}
	headerNames       = []string{"plain", "rule-thin", "rule-heavy", "rule-accent", "side-bar"}
	accentNames       = []string{"stone", "ink", "emerald", "indigo", "amber"}
	sectionTitleNames = []string{"muted", "left-bar", "underline", "underline-heavy", "accent-spaced"}
	bodyNames         = []string{"muted", "strong"}
	gridNames         = []string{"none", "emerald", "indigo", "amber"}
)

func name(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

func (f Font) String() string              { return name(fontNames, int(f)) }
func (h HeaderStyle) String() string       { return name(headerNames, int(h)) }
func (a Accent) String() string            { return name(accentNames, int(a)) }
func (s SectionTitleStyle) String() string { return name(sectionTitleNames, int(s)) }
func (b BodyTone) String() string          { return name(bodyNames, int(b)) }
func (g GridColor) String() string         { return name(gridNames, int(g)) }

func (f Font) MarshalJSON() ([]byte, error)              { return json.Marshal(f.String()) }
func (h HeaderStyle) MarshalJSON() ([]byte, error)       { return json.Marshal(h.String()) }
func (a Accent) MarshalJSON() ([]byte, error)            { return json.Marshal(a.String()) }
func (s SectionTitleStyle) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }
func (b BodyTone) MarshalJSON() ([]byte, error)          { return json.Marshal(b.String()) }
func (g GridColor) MarshalJSON() ([]byte, error)         { return json.Marshal(g.String()) }
