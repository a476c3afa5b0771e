package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
	"resume-builder/internal/templates"
	"resume-builder/resume/render"
)

const (
	pdfContentType = "application/pdf"
	maxRawHTMLSize = 512 << 10
)

// ResumeSource loads a resume and the template it renders with.
type ResumeSource interface {
	Get(ctx context.Context, userID, id string) (resumes.Resume, error)
	Resolve(ctx context.Context, res resumes.Resume) (templates.Profile, bool, error)
}

// Service renders resumes to PDF and keeps the results in object storage.
type Service struct {
	Resumes ResumeSource
	Printer Printer
	Store   object.ObjectStore
	Repo    Repo
	Metrics *metrics.Collector
	Now     func() time.Time
}

// Document is a produced PDF and its metadata.
type Document struct {
	Export           Export
	FileName         string
	TemplateFallback bool
	PDF              []byte
}

// ExportResume renders a stored resume, prints it and stores the PDF.
func (s *Service) ExportResume(ctx context.Context, userID, resumeID string) (Document, error) {
	res, err := s.Resumes.Get(ctx, userID, resumeID)
	if err != nil {
		return Document{}, err
	}
	profile, fellBack, err := s.Resumes.Resolve(ctx, res)
	if err != nil {
		return Document{}, err
	}
	html, err := render.HTML(render.Render(res.Content, profile))
	if err != nil {
		return Document{}, err
	}

	start := time.Now()
	data, pages, err := s.print(ctx, html)
	if err != nil {
		s.Metrics.ObserveExport(metrics.OutcomeFailure, time.Since(start))
		telemetry.Error("export.failed", map[string]any{
			"user_id":     userID,
			"resume_id":   resumeID,
			"template_id": profile.ID,
			"error":       err,
		})
		return Document{}, err
	}

	exp := Export{
		ID:         uuid.NewString(),
		UserID:     userID,
		ResumeID:   res.ID,
		TemplateID: profile.ID,
		PageCount:  pages,
		CreatedAt:  s.now(),
	}
	exp.StorageKey = object.ExportKey(userID, exp.ID, "pdf")
	size, err := s.Store.Put(ctx, exp.StorageKey, pdfContentType, bytes.NewReader(data))
	if err != nil {
		s.Metrics.ObserveExport(metrics.OutcomeFailure, time.Since(start))
		return Document{}, fmt.Errorf("store export: %w", err)
	}
	exp.SizeBytes = size
	if err := s.Repo.Create(ctx, exp); err != nil {
		s.Metrics.ObserveExport(metrics.OutcomeFailure, time.Since(start))
		if delErr := s.Store.Delete(ctx, exp.StorageKey); delErr != nil {
			telemetry.Warn("export.orphaned_object", map[string]any{
				"export_id":   exp.ID,
				"storage_key": exp.StorageKey,
				"error":       delErr,
			})
		}
		return Document{}, fmt.Errorf("record export: %w", err)
	}
	s.Metrics.ObserveExport(metrics.OutcomeSuccess, time.Since(start))

	return Document{
		Export:           exp,
		FileName:         util.ExportFileName(res.Name, "pdf"),
		TemplateFallback: fellBack,
		PDF:              data,
	}, nil
}

// ExportHTML prints caller-supplied HTML after sanitizing it. Nothing is stored.
func (s *Service) ExportHTML(ctx context.Context, raw string) ([]byte, int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, 0, fmt.Errorf("%w: htmlContent is required", ErrInvalidInput)
	}
	if len(raw) > maxRawHTMLSize {
		return nil, 0, fmt.Errorf("%w: htmlContent is too large", ErrInvalidInput)
	}
	html, err := wrapSanitized(SanitizeHTML(raw))
	if err != nil {
		return nil, 0, err
	}
	start := time.Now()
	data, pages, err := s.print(ctx, html)
	if err != nil {
		s.Metrics.ObserveExport(metrics.OutcomeFailure, time.Since(start))
		return nil, 0, err
	}
	s.Metrics.ObserveExport(metrics.OutcomeSuccess, time.Since(start))
	return data, pages, nil
}

// Open returns a stored export and a reader over its PDF.
func (s *Service) Open(ctx context.Context, userID, exportID string) (Export, io.ReadCloser, error) {
	if strings.TrimSpace(exportID) == "" {
		return Export{}, nil, ErrNotFound
	}
	exp, err := s.Repo.GetByID(ctx, userID, exportID)
	if err != nil {
		return Export{}, nil, err
	}
	rc, err := s.Store.Open(ctx, exp.StorageKey)
	if err != nil {
		return Export{}, nil, fmt.Errorf("open export: %w", err)
	}
	return exp, rc, nil
}

// print runs the printer and checks the result is a readable PDF. Both
// failures are reported as ErrExportUnavailable.
func (s *Service) print(ctx context.Context, html string) ([]byte, int, error) {
	if s.Printer == nil {
		return nil, 0, fmt.Errorf("%w: no printer configured", ErrExportUnavailable)
	}
	data, err := s.Printer.PrintPDF(ctx, html)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrExportUnavailable, err)
	}
	pages, err := PageCount(data)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrExportUnavailable, err)
	}
	return data, pages, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
