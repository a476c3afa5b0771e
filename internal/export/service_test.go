package export

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/plan"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/storage/object/local"
	"resume-builder/internal/templates"
	"resume-builder/resume/model"
)

type fakePrinter struct {
	html string
	pdf  []byte
	err  error
}

func (p *fakePrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	p.html = html
	return p.pdf, p.err
}

type stubResumes struct {
	tier plan.Tier
}

func (s stubResumes) Get(ctx context.Context, userID, id string) (resumes.Resume, error) {
	if id != "r1" || userID != "u1" {
		return resumes.Resume{}, resumes.ErrNotFound
	}
	return resumes.Resume{
		ID:         "r1",
		UserID:     "u1",
		Name:       "Jordan Lee",
		TemplateID: templates.Executive,
		Content:    model.Content{PersonalInfo: model.PersonalInfo{FullName: "Jordan Lee"}, Summary: "Builds APIs."},
	}, nil
}

func (s stubResumes) Resolve(ctx context.Context, res resumes.Resume) (templates.Profile, bool, error) {
	p, fellBack := templates.Default().Resolve(res.TemplateID, s.tier)
	return p, fellBack, nil
}

func newService(t *testing.T, printer Printer, tier plan.Tier) *Service {
	t.Helper()
	return &Service{
		Resumes: stubResumes{tier: tier},
		Printer: printer,
		Store:   local.New(t.TempDir()),
		Repo:    NewMemoryRepo(),
		Now:     func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestPageCount(t *testing.T) {
	n, err := PageCount(minimalPDF(2))
	if err != nil || n != 2 {
		t.Fatalf("PageCount = %d, %v", n, err)
	}
	for _, data := range [][]byte{nil, []byte("not a pdf")} {
		if _, err := PageCount(data); err == nil {
			t.Fatalf("expected error for %q", data)
		}
	}
}

func TestExportResumeStoresPDF(t *testing.T) {
	printer := &fakePrinter{pdf: minimalPDF(1)}
	svc := newService(t, printer, plan.Free)
	ctx := context.Background()

	doc, err := svc.ExportResume(ctx, "u1", "r1")
	if err != nil {
		t.Fatalf("ExportResume: %v", err)
	}
	if doc.Export.PageCount != 1 || doc.Export.SizeBytes != int64(len(printer.pdf)) {
		t.Fatalf("unexpected export %+v", doc.Export)
	}
	if !doc.TemplateFallback || doc.Export.TemplateID != templates.Minimal {
		t.Fatalf("free owner of a paid template should fall back, got %+v", doc)
	}
	if doc.FileName != "jordan-lee.pdf" {
		t.Fatalf("file name = %q", doc.FileName)
	}
	if !strings.Contains(printer.html, "Builds APIs.") || !strings.Contains(printer.html, "size: A4") {
		t.Fatalf("printer did not receive the rendered document")
	}

	exp, rc, err := svc.Open(ctx, "u1", doc.Export.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	stored, _ := io.ReadAll(rc)
	if string(stored) != string(printer.pdf) || exp.ResumeID != "r1" {
		t.Fatalf("stored export mismatch")
	}
	if _, _, err := svc.Open(ctx, "u2", doc.Export.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign download should be ErrNotFound, got %v", err)
	}
}

func TestExportResumeProKeepsTemplate(t *testing.T) {
	svc := newService(t, &fakePrinter{pdf: minimalPDF(1)}, plan.Pro)
	doc, err := svc.ExportResume(context.Background(), "u1", "r1")
	if err != nil {
		t.Fatalf("ExportResume: %v", err)
	}
	if doc.TemplateFallback || doc.Export.TemplateID != templates.Executive {
		t.Fatalf("pro owner should keep executive, got %+v", doc.Export)
	}
}

func TestExportFailuresAreUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		printer Printer
	}{
		{name: "printer error", printer: &fakePrinter{err: errors.New("chrome crashed")}},
		{name: "not a pdf", printer: &fakePrinter{pdf: []byte("<html>")}},
		{name: "no printer", printer: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.printer, plan.Free)
			if _, err := svc.ExportResume(context.Background(), "u1", "r1"); !errors.Is(err, ErrExportUnavailable) {
				t.Fatalf("expected ErrExportUnavailable, got %v", err)
			}
		})
	}
}

type failingRepo struct {
	Repo
}

func (failingRepo) Create(ctx context.Context, e Export) error {
	return errors.New("insert failed")
}

func TestExportRecordFailureRemovesObject(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := local.New(t.TempDir())
	svc := newService(t, &fakePrinter{pdf: minimalPDF(1)}, plan.Free)
	var stored string
	svc.Store = keyRecorder{ObjectStore: store, key: &stored}
	svc.Repo = failingRepo{Repo: NewMemoryRepo()}
	svc.Metrics = metrics.NewCollector(reg)

	if _, err := svc.ExportResume(context.Background(), "u1", "r1"); err == nil {
		t.Fatalf("expected an error when the export cannot be recorded")
	}
	if stored == "" {
		t.Fatalf("expected the PDF to be stored before the record failed")
	}
	if _, err := store.Open(context.Background(), stored); err == nil {
		t.Fatalf("stored PDF %q should be removed", stored)
	}
	if got := exportCount(t, reg, metrics.OutcomeFailure); got != 1 {
		t.Fatalf("failure exports = %v", got)
	}
	if got := exportCount(t, reg, metrics.OutcomeSuccess); got != 0 {
		t.Fatalf("success exports = %v", got)
	}
}

type keyRecorder struct {
	object.ObjectStore
	key *string
}

func (k keyRecorder) Put(ctx context.Context, storageKey, contentType string, r io.Reader) (int64, error) {
	*k.key = storageKey
	return k.ObjectStore.Put(ctx, storageKey, contentType, r)
}

func exportCount(t *testing.T, reg *prometheus.Registry, outcome string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "resume_builder_exports_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" && l.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestExportResumeNotFound(t *testing.T) {
	svc := newService(t, &fakePrinter{pdf: minimalPDF(1)}, plan.Free)
	if _, err := svc.ExportResume(context.Background(), "u2", "r1"); !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected resumes.ErrNotFound, got %v", err)
	}
}

func TestExportHTMLSanitizes(t *testing.T) {
	printer := &fakePrinter{pdf: minimalPDF(1)}
	svc := newService(t, printer, plan.Free)

	raw := `<h1 onclick="steal()">Jordan</h1><script>alert(1)</script><iframe src="https://evil.example"></iframe><p class="lead">Engineer</p>`
	_, pages, err := svc.ExportHTML(context.Background(), raw)
	if err != nil {
		t.Fatalf("ExportHTML: %v", err)
	}
	if pages != 1 {
		t.Fatalf("pages = %d", pages)
	}
	for _, banned := range []string{"<script", "onclick", "<iframe"} {
		if strings.Contains(printer.html, banned) {
			t.Fatalf("sanitized document still contains %q:\n%s", banned, printer.html)
		}
	}
	for _, kept := range []string{"<h1>Jordan</h1>", `<p class="lead">Engineer</p>`, "size: A4"} {
		if !strings.Contains(printer.html, kept) {
			t.Fatalf("expected %q in document:\n%s", kept, printer.html)
		}
	}

	if _, _, err := svc.ExportHTML(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
