package render

import "resume-builder/internal/templates"

// Palette holds the concrete colors a template resolves to.
type Palette struct {
	Accent  string
	Heading string
	Body    string
	Grid    string
}

const (
	NameColor   = "#111111"
	MutedText   = "#4b5563"
	StrongText  = "#1f2937"
	NameSize    = "28px"
	HeadingSize = "13px"
)

var accentColors = map[templates.Accent]string{
	templates.AccentStone:   "#57534e",
	templates.AccentInk:     "#111827",
	templates.AccentEmerald: "#059669",
	templates.AccentIndigo:  "#4f46e5",
	templates.AccentAmber:   "#d97706",
}

var gridColors = map[templates.GridColor]string{
	templates.GridEmerald: "rgba(5, 150, 105, 0.08)",
	templates.GridIndigo:  "rgba(79, 70, 229, 0.08)",
	templates.GridAmber:   "rgba(217, 119, 6, 0.08)",
}

var fontStacks = map[templates.Font]string{
	templates.FontSans:  `"Inter", "Helvetica Neue", Arial, sans-serif`,
	templates.FontSerif: `Georgia, "Times New Roman", serif`,
}

var headerRules = map[templates.HeaderStyle]string{
	templates.HeaderPlain:      "",
	templates.HeaderRuleThin:   "border-bottom: 1px solid %s; padding-bottom: 12px;",
	templates.HeaderRuleHeavy:  "border-bottom: 3px double %s; padding-bottom: 14px;",
	templates.HeaderRuleAccent: "border-bottom: 4px solid %s; padding-bottom: 12px;",
	templates.HeaderSideBar:    "border-left: 6px solid %s; padding-left: 16px;",
}

var sectionTitleRules = map[templates.SectionTitleStyle]string{
	templates.TitleMuted:          "color: #6b7280; text-transform: uppercase; letter-spacing: 0.05em;",
	templates.TitleLeftBar:        "border-left: 3px solid %s; padding-left: 8px;",
	templates.TitleUnderline:      "border-bottom: 1px solid %s; padding-bottom: 2px;",
	templates.TitleUnderlineHeavy: "border-bottom: 2px solid %s; padding-bottom: 3px; text-transform: uppercase;",
	templates.TitleAccentSpaced:   "color: %s; text-transform: uppercase; letter-spacing: 0.2em;",
}

// PaletteFor resolves the colors of a style token set.
func PaletteFor(s templates.StyleTokens) Palette {
	p := Palette{
		Accent:  accentColors[s.Accent],
		Heading: StrongText,
		Body:    MutedText,
		Grid:    gridColors[s.Grid],
	}
	if p.Accent == "" {
		p.Accent = accentColors[templates.AccentStone]
	}
	if s.Body == templates.BodyStrong {
		p.Body = StrongText
	}
	return p
}
