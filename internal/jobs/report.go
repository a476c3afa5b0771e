package jobs

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"resume-builder/internal/scoring"
)

const (
	summarySheet  = "Summary"
	keywordsSheet = "Keywords"
	maxPreview    = 300
)

// Report is a scored resume/job pair ready for export.
type Report struct {
	ResumeName  string
	Job         JobDescription
	Result      scoring.Result
	GeneratedAt time.Time
}

// WriteXLSX writes the report as a workbook with a summary and a keyword sheet.
func WriteXLSX(w io.Writer, rep Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(keywordsSheet); err != nil {
		return err
	}
	if err := writeSummary(f, rep); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeKeywords(f, rep.Result); err != nil {
		return fmt.Errorf("keywords sheet: %w", err)
	}
	_, err := f.WriteTo(w)
	return err
}

func writeSummary(f *excelize.File, rep Report) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 80); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(summarySheet, "A1", "Resume Match Report"); err != nil {
		return err
	}
	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return err
	}

	rows := []struct {
		label string
		value any
	}{
		{"Resume", rep.ResumeName},
		{"Job ID", rep.Job.ID},
		{"Generated", rep.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Score", rep.Result.Score},
		{"Matched keywords", len(rep.Result.MatchedKeywords)},
		{"Missing keywords", len(rep.Result.MissingKeywords)},
		{"Ideal profile", rep.Job.Analysis.IdealProfile},
		{"Job description", preview(rep.Job.Content)},
	}
	row := 3
	for _, r := range rows {
		label := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(summarySheet, label, r.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, label, label, labelStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r.value); err != nil {
			return err
		}
		row++
	}

	row++
	if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Suggestions"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle); err != nil {
		return err
	}
	row++
	for i, s := range rep.Result.Suggestions {
		cell := fmt.Sprintf("B%d", row)
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), i+1); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, cell, s); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, cell, cell, wrapStyle); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeKeywords(f *excelize.File, res scoring.Result) error {
	if err := f.SetColWidth(keywordsSheet, "A", "A", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(keywordsSheet, "B", "B", 14); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	matchedStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	missingStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(keywordsSheet, "A1", &[]any{"Keyword", "Status"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(keywordsSheet, "A1", "B1", headerStyle); err != nil {
		return err
	}

	row := 2
	write := func(keyword, status string, style int) error {
		start := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(keywordsSheet, start, &[]any{keyword, status}); err != nil {
			return err
		}
		row++
		return f.SetCellStyle(keywordsSheet, start, fmt.Sprintf("B%d", row-1), style)
	}
	for _, k := range res.MatchedKeywords {
		if err := write(k, "matched", matchedStyle); err != nil {
			return err
		}
	}
	for _, k := range res.MissingKeywords {
		if err := write(k, "missing", missingStyle); err != nil {
			return err
		}
	}
	return nil
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= maxPreview {
		return s
	}
	return string(runes[:maxPreview]) + "..."
}
