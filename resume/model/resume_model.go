package model

import (
	"fmt"
	"net/url"
	"strings"
)

// Section keys shared by labels, templates and the renderer.
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionProjects       = "projects"
	SectionCustomSections = "customSections"
	SectionPublications   = "publications"
	SectionSkills         = "skills"
	SectionInterests      = "interests"
)

// Content is the structured resume payload owned by a single user.
type Content struct {
	PersonalInfo   PersonalInfo      `json:"personalInfo"`
	Summary        string            `json:"summary"`
	Experience     []Experience      `json:"experience"`
	Education      []Education       `json:"education"`
	Projects       []Project         `json:"projects"`
	Publications   []Publication     `json:"publications"`
	Skills         []string          `json:"skills"`
	Interests      []string          `json:"interests"`
	CustomSections []CustomSection   `json:"customSections"`
	TemplateID     string            `json:"templateId"`
	Labels         map[string]string `json:"labels,omitempty"`
}

// PersonalInfo captures top-of-resume contact and identity details.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Tagline  string `json:"tagline"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Experience represents a work history entry.
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education represents an education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Project represents a notable project.
type Project struct {
	Name        string `json:"name"`
	Link        string `json:"link"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Publication represents a paper, article or patent.
type Publication struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Date        string `json:"date"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// CustomSection is a free-form titled block.
type CustomSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate enforces formatting rules that the JSON schema cannot express.
func (c Content) Validate() error {
	links := map[string]string{
		"personalInfo.website":  c.PersonalInfo.Website,
		"personalInfo.linkedin": c.PersonalInfo.LinkedIn,
		"personalInfo.github":   c.PersonalInfo.GitHub,
	}
	for _, field := range []string{"personalInfo.website", "personalInfo.linkedin", "personalInfo.github"} {
		value := strings.TrimSpace(links[field])
		if value != "" && !isFullURL(value) {
			return fmt.Errorf("%s must be a full URL", field)
		}
	}
	for i, p := range c.Projects {
		if link := strings.TrimSpace(p.Link); link != "" && !isFullURL(link) {
			return fmt.Errorf("projects[%d].link must be a full URL", i)
		}
	}
	for i, p := range c.Publications {
		if link := strings.TrimSpace(p.Link); link != "" && !isFullURL(link) {
			return fmt.Errorf("publications[%d].link must be a full URL", i)
		}
	}
	return nil
}

// Label returns the user override for a section, if any.
func (c Content) Label(section string) (string, bool) {
	if c.Labels == nil {
		return "", false
	}
	label := strings.TrimSpace(c.Labels[section])
	return label, label != ""
}

func isFullURL(value string) bool {
	if value == "" {
		return false
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
