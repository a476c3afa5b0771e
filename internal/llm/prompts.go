package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/job_analysis.txt
	jobAnalysisPrompt string
	//go:embed prompts/bullet_optimization.txt
	bulletOptimizationPrompt string
	//go:embed prompts/cover_letter.txt
	coverLetterPrompt string
)

// JobAnalysisPrompt asks for skills, technologies and focus areas of a job description.
func JobAnalysisPrompt(jobDescription string) string {
	return strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription),
	).Replace(jobAnalysisPrompt)
}

// BulletOptimizationPrompt asks for bullets rewritten toward target keywords.
func BulletOptimizationPrompt(bullets, keywords []string) string {
	lines := make([]string, 0, len(bullets))
	for _, b := range bullets {
		lines = append(lines, "- "+strings.TrimSpace(b))
	}
	return strings.NewReplacer(
		"{{KEYWORDS}}", strings.Join(keywords, ", "),
		"{{BULLETS}}", strings.Join(lines, "\n"),
	).Replace(bulletOptimizationPrompt)
}

// CoverLetterPrompt asks for a cover letter from serialized resume content.
func CoverLetterPrompt(resumeJSON, jobDescription string) string {
	return strings.NewReplacer(
		"{{RESUME}}", resumeJSON,
		"{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription),
	).Replace(coverLetterPrompt)
}
