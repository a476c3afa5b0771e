package render

import (
	"strings"

	"resume-builder/internal/templates"
	"resume-builder/resume/model"
)

// DocumentView is the renderer-neutral projection of a resume through a
// template. It holds only populated sections, in display order.
type DocumentView struct {
	TemplateID   string                `json:"templateId"`
	TemplateName string                `json:"templateName"`
	Styles       templates.StyleTokens `json:"styles"`
	Header       Header                `json:"header"`
	Sections     []Section             `json:"sections"`
}

// Header is the name block at the top of the document.
type Header struct {
	Name     string    `json:"name"`
	Tagline  string    `json:"tagline,omitempty"`
	Contacts []Contact `json:"contacts,omitempty"`
}

// Contact is a single line of contact information.
type Contact struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Link  string `json:"link,omitempty"`
}

// Section is one headed block of the document. Exactly one of Text, Entries
// or Items is populated.
type Section struct {
	Key     string   `json:"key"`
	Heading string   `json:"heading"`
	Text    string   `json:"text,omitempty"`
	Entries []Entry  `json:"entries,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// Entry is a dated item such as a job, degree, project or publication.
type Entry struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Meta     string `json:"meta,omitempty"`
	Link     string `json:"link,omitempty"`
	Body     string `json:"body,omitempty"`
}

// Render projects content through a template profile. It never mutates
// content and never adds placeholder text.
func Render(content model.Content, profile templates.Profile) DocumentView {
	view := DocumentView{
		TemplateID:   profile.ID,
		TemplateName: profile.Name,
		Styles:       profile.Styles,
		Header:       renderHeader(content.PersonalInfo),
		Sections:     []Section{},
	}

	heading := func(key string) string {
		if label, ok := content.Label(key); ok {
			return label
		}
		return profile.Label(key)
	}

	if !blank(content.Summary) {
		view.Sections = append(view.Sections, Section{
			Key:     model.SectionSummary,
			Heading: heading(model.SectionSummary),
			Text:    content.Summary,
		})
	}

	var entries []Entry
	for _, e := range content.Experience {
		entries = appendEntry(entries, Entry{Title: e.Role, Subtitle: e.Company, Meta: e.Duration, Body: e.Description})
	}
	view.Sections = appendEntries(view.Sections, model.SectionExperience, heading(model.SectionExperience), entries)

	entries = nil
	for _, e := range content.Education {
		entries = appendEntry(entries, Entry{Title: e.Degree, Subtitle: e.Institution, Meta: e.Duration, Body: e.Description})
	}
	view.Sections = appendEntries(view.Sections, model.SectionEducation, heading(model.SectionEducation), entries)

	entries = nil
	for _, p := range content.Projects {
		entries = appendEntry(entries, Entry{Title: p.Name, Link: p.Link, Meta: p.Duration, Body: p.Description})
	}
	view.Sections = appendEntries(view.Sections, model.SectionProjects, heading(model.SectionProjects), entries)

	for _, cs := range content.CustomSections {
		if blank(cs.Content) {
			continue
		}
		title := strings.TrimSpace(cs.Title)
		if title == "" {
			title = heading(model.SectionCustomSections)
		}
		view.Sections = append(view.Sections, Section{
			Key:     model.SectionCustomSections,
			Heading: title,
			Text:    cs.Content,
		})
	}

	entries = nil
	for _, p := range content.Publications {
		entries = appendEntry(entries, Entry{Title: p.Title, Subtitle: p.Publisher, Meta: p.Date, Link: p.Link, Body: p.Description})
	}
	view.Sections = appendEntries(view.Sections, model.SectionPublications, heading(model.SectionPublications), entries)

	view.Sections = appendItems(view.Sections, model.SectionSkills, heading(model.SectionSkills), content.Skills)
	view.Sections = appendItems(view.Sections, model.SectionInterests, heading(model.SectionInterests), content.Interests)

	return view
}

func renderHeader(info model.PersonalInfo) Header {
	h := Header{Name: strings.TrimSpace(info.FullName), Tagline: strings.TrimSpace(info.Tagline)}
	add := func(kind, value, link string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		h.Contacts = append(h.Contacts, Contact{Kind: kind, Value: value, Link: link})
	}
	add("email", info.Email, mailto(info.Email))
	add("phone", info.Phone, "")
	add("location", info.Location, "")
	add("website", info.Website, strings.TrimSpace(info.Website))
	add("linkedin", info.LinkedIn, strings.TrimSpace(info.LinkedIn))
	add("github", info.GitHub, strings.TrimSpace(info.GitHub))
	return h
}

func mailto(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return "mailto:" + email
}

func appendEntry(entries []Entry, e Entry) []Entry {
	if blank(e.Title) && blank(e.Subtitle) && blank(e.Meta) && blank(e.Link) && blank(e.Body) {
		return entries
	}
	e.Link = strings.TrimSpace(e.Link)
	return append(entries, e)
}

func appendEntries(sections []Section, key, heading string, entries []Entry) []Section {
	if len(entries) == 0 {
		return sections
	}
	return append(sections, Section{Key: key, Heading: heading, Entries: entries})
}

func appendItems(sections []Section, key, heading string, values []string) []Section {
	var items []string
	for _, v := range values {
		if blank(v) {
			continue
		}
		items = append(items, v)
	}
	if len(items) == 0 {
		return sections
	}
	return append(sections, Section{Key: key, Heading: heading, Items: items})
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
