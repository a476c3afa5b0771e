package export

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"resume-builder/internal/templates"
	"resume-builder/resume/render"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// rawHTMLPolicy allows document markup with classes and inline styling but
// no scripts, frames, forms or remote embeds.
func rawHTMLPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("section", "header", "footer", "main", "article", "aside", "span", "div", "hr")
		p.AllowAttrs("class").Globally()
		p.AllowStyling()
		p.AllowStyles("color", "background-color", "font-weight", "font-style", "text-align", "text-decoration",
			"margin", "margin-top", "margin-bottom", "padding", "border-bottom", "border-left", "font-size").Globally()
		p.RequireNoFollowOnLinks(false)
		p.AllowRelativeURLs(false)
		policy = p
	})
	return policy
}

// SanitizeHTML strips unsafe markup from user-supplied HTML.
func SanitizeHTML(raw string) string {
	return rawHTMLPolicy().Sanitize(raw)
}

var shell = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Resume</title>
<style>
{{.Stylesheet}}
</style>
</head>
<body><div class="document">{{.Body}}</div></body>
</html>
`))

// wrapSanitized places sanitized body markup inside an A4 document styled
// like the default template.
func wrapSanitized(body string) (string, error) {
	view := render.DocumentView{Styles: templates.Default().Fallback().Styles}
	var b strings.Builder
	err := shell.Execute(&b, struct {
		Stylesheet template.CSS
		Body       template.HTML
	}{
		Stylesheet: template.CSS(render.Stylesheet(view)),
		Body:       template.HTML(body),
	})
	return b.String(), err
}
