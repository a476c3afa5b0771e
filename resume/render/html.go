package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed document.html.tmpl
var documentTemplate string

var documentHTML = template.Must(template.New("document").Parse(documentTemplate))

type htmlPage struct {
	View       DocumentView
	Stylesheet template.CSS
	Title      string
}

// HTML renders a view into a standalone A4 document for the PDF exporter.
func HTML(view DocumentView) (string, error) {
	title := view.Header.Name
	if title == "" {
		title = "Resume"
	}
	page := htmlPage{
		View:       view,
		Stylesheet: template.CSS(Stylesheet(view)),
		Title:      title,
	}

	var buf bytes.Buffer
	if err := documentHTML.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// Stylesheet maps the view's style tokens to CSS.
func Stylesheet(view DocumentView) string {
	s := view.Styles
	p := PaletteFor(s)

	var b strings.Builder
	fmt.Fprintf(&b, "@page { size: A4; margin: 20px; }\n")
	fmt.Fprintf(&b, "body { margin: 0; font-family: %s; color: %s; font-size: 11px; line-height: 1.5; }\n", fontStacks[s.Font], p.Body)
	if p.Grid != "" {
		fmt.Fprintf(&b, ".document { background-image: radial-gradient(%s 1px, transparent 1px); background-size: 16px 16px; }\n", p.Grid)
	}
	fmt.Fprintf(&b, ".header { margin-bottom: 18px; %s }\n", withColor(headerRules[s.Header], p.Accent))
	fmt.Fprintf(&b, ".header h1 { margin: 0; color: %s; font-size: %s; }\n", NameColor, NameSize)
	fmt.Fprintf(&b, ".tagline { margin: 2px 0 6px; color: %s; }\n", p.Accent)
	fmt.Fprintf(&b, ".contacts span { margin-right: 12px; }\n")
	fmt.Fprintf(&b, "a { color: %s; text-decoration: none; }\n", p.Accent)
	fmt.Fprintf(&b, ".section { margin-bottom: 14px; page-break-inside: avoid; }\n")
	fmt.Fprintf(&b, ".section h2 { margin: 0 0 6px; color: %s; font-size: %s; %s }\n", p.Heading, HeadingSize, withColor(sectionTitleRules[s.SectionTitle], p.Accent))
	fmt.Fprintf(&b, ".entry { margin-bottom: 8px; }\n")
	fmt.Fprintf(&b, ".entry-title { font-weight: 600; color: %s; }\n", p.Heading)
	fmt.Fprintf(&b, ".entry-meta { float: right; color: %s; }\n", p.Accent)
	fmt.Fprintf(&b, ".body { white-space: pre-wrap; }\n")
	fmt.Fprintf(&b, ".items span { display: inline-block; margin: 0 6px 4px 0; padding: 1px 6px; border: 1px solid %s; border-radius: 3px; }\n", p.Accent)
	return b.String()
}

func withColor(rule, color string) string {
	if strings.Contains(rule, "%s") {
		return fmt.Sprintf(rule, color)
	}
	return rule
}
