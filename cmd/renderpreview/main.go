// Command renderpreview renders a resume content file to HTML and,
// optionally, to PDF through headless Chrome.
//
//	go run ./cmd/renderpreview -in resume.json -template modern -tier pro -pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-builder/internal/export"
	"resume-builder/internal/shared/plan"
	"resume-builder/internal/templates"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

func main() {
	inPath := flag.String("in", "", "path to resume content JSON")
	outPath := flag.String("out", "./out/resume.html", "output path for the HTML document")
	templateID := flag.String("template", "", "template id; defaults to the content's templateId")
	tier := flag.String("tier", "free", "plan tier used to resolve the template")
	withPDF := flag.Bool("pdf", false, "also print a PDF next to the HTML")
	chromePath := flag.String("chrome", "", "path to a Chrome/Chromium binary")
	flag.Parse()

	if err := run(*inPath, *outPath, *templateID, plan.Parse(*tier), *withPDF, *chromePath); err != nil {
		fmt.Fprintf(os.Stderr, "renderpreview: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath, templateID string, tier plan.Tier, withPDF bool, chromePath string) error {
	if inPath == "" {
		return fmt.Errorf("-in is required")
	}
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	content, err := model.DecodeContent(raw)
	if err != nil {
		return err
	}
	if strings.TrimSpace(templateID) == "" {
		templateID = content.TemplateID
	}

	profile, fellBack := templates.Default().Resolve(templateID, tier)
	if fellBack {
		fmt.Printf("template %q not available on %s; using %s\n", templateID, tier, profile.ID)
	}

	doc, err := render.HTML(render.Render(content, profile))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return err
	}
	fmt.Printf("OK: wrote %s\n", outPath)

	if !withPDF {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()
	pdf, err := export.NewChromePrinter(chromePath, 60*time.Second).PrintPDF(ctx, doc)
	if err != nil {
		return err
	}
	pages, err := export.PageCount(pdf)
	if err != nil {
		return err
	}
	pdfPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".pdf"
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return err
	}
	fmt.Printf("OK: wrote %s (%d pages)\n", pdfPath, pages)
	return nil
}
