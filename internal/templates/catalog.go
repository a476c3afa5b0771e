package templates

import (
	"sync"

	"resume-builder/resume/model"
)

// Template ids of the built-in catalog.
const (
	Minimal      = "minimal"
	Modern       = "modern"
	Classic      = "classic"
	Professional = "professional"
	Creative     = "creative"
	Executive    = "executive"
)

// BuiltinProfiles returns the catalog shipped with the service, in display order.
func BuiltinProfiles() []Profile {
	return []Profile{
		{
			ID:          Minimal,
			Name:        "Minimal",
			Description: "Simple and spacious",
			Styles: StyleTokens{
				Font:         FontSans,
				Header:       HeaderPlain,
				Accent:       AccentStone,
				SectionTitle: TitleMuted,
				Body:         BodyMuted,
				Grid:         GridNone,
			},
		},
		{
			ID:          Modern,
			Name:        "Modern",
			Description: "Clean with emerald accents",
			IsPaid:      true,
			Styles: StyleTokens{
				Font:         FontSans,
				Header:       HeaderRuleThin,
				Accent:       AccentEmerald,
				SectionTitle: TitleLeftBar,
				Body:         BodyMuted,
				Grid:         GridEmerald,
			},
		},
		{
			ID:          Classic,
			Name:        "Classic",
			Description: "Traditional and professional",
			IsPaid:      true,
			Styles: StyleTokens{
				Font:         FontSerif,
				Header:       HeaderRuleHeavy,
				Accent:       AccentInk,
				SectionTitle: TitleUnderline,
				Body:         BodyStrong,
				Grid:         GridNone,
			},
			labels: map[string]string{
				model.SectionSummary: "Professional Summary",
			},
		},
		{
			ID:          Professional,
			Name:        "Professional",
			Description: "Polished for corporate roles",
			IsPaid:      true,
			Styles: StyleTokens{
				Font:         FontSans,
				Header:       HeaderRuleAccent,
				Accent:       AccentIndigo,
				SectionTitle: TitleLeftBar,
				Body:         BodyMuted,
				Grid:         GridIndigo,
			},
			labels: map[string]string{
				model.SectionSkills: "Core Competencies",
			},
		},
		{
			ID:          Creative,
			Name:        "Creative",
			Description: "Distinct design for creative fields",
			IsPaid:      true,
			Styles: StyleTokens{
				Font:         FontSans,
				Header:       HeaderSideBar,
				Accent:       AccentAmber,
				SectionTitle: TitleAccentSpaced,
				Body:         BodyMuted,
				Grid:         GridAmber,
			},
			labels: map[string]string{
				model.SectionProjects: "Selected Work",
			},
		},
		{
			ID:          Executive,
			Name:        "Executive",
			Description: "Bold layout for leadership roles",
			IsPaid:      true,
			Styles: StyleTokens{
				Font:         FontSerif,
				Header:       HeaderRuleHeavy,
				Accent:       AccentInk,
				SectionTitle: TitleUnderlineHeavy,
				Body:         BodyStrong,
				Grid:         GridNone,
			},
			labels: map[string]string{
				model.SectionExperience: "Leadership Experience",
			},
		},
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry seeded with BuiltinProfiles.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(BuiltinProfiles()...)
		if err != nil {
			panic("templates: invalid builtin catalog: " + err.Error())
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
