package templates

import (
	"errors"
	"fmt"
	"strings"

	"resume-builder/internal/shared/plan"
	"resume-builder/resume/model"
)

// Profile is an immutable presentation profile applied to any resume.
type Profile struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	IsPaid      bool        `json:"isPaid"`
	Styles      StyleTokens `json:"styles"`
	labels      map[string]string
}

// builtinLabels are used when neither the resume nor the template names a section.
var builtinLabels = map[string]string{
	model.SectionSummary:        "Summary",
	model.SectionExperience:     "Experience",
	model.SectionEducation:      "Education",
	model.SectionProjects:       "Projects",
	model.SectionCustomSections: "Additional Information",
	model.SectionPublications:   "Publications",
	model.SectionSkills:         "Skills",
	model.SectionInterests:      "Interests",
}

// DefaultLabel returns the built-in heading for a section key.
func DefaultLabel(section string) string {
	return builtinLabels[section]
}

// Label returns the template heading for a section, falling back to the built-in one.
func (p Profile) Label(section string) string {
	if l := strings.TrimSpace(p.labels[section]); l != "" {
		return l
	}
	return DefaultLabel(section)
}

// Labels returns a copy of the template's own label overrides.
func (p Profile) Labels() map[string]string {
	out := make(map[string]string, len(p.labels))
	for k, v := range p.labels {
		out[k] = v
	}
	return out
}

// IsAccessible reports whether a tier may use the profile.
func IsAccessible(p Profile, tier plan.Tier) bool {
	return !p.IsPaid || tier.IsPro()
}

// Registry is a fixed catalog of profiles. It is read-only after construction
// and safe for concurrent use.
type Registry struct {
	order    []string
	byID     map[string]Profile
	fallback string
}

// NewRegistry builds a registry in the given order. Ids must be unique and at
// least one profile must be free; the first free profile is the fallback.
func NewRegistry(profiles ...Profile) (*Registry, error) {
	r := &Registry{byID: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, errors.New("template id is required")
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("duplicate template id %q", id)
		}
		p.ID = id
		p.labels = copyLabels(p.labels)
		r.byID[id] = p
		r.order = append(r.order, id)
		if r.fallback == "" && !p.IsPaid {
			r.fallback = id
		}
	}
	if r.fallback == "" {
		return nil, errors.New("registry needs at least one free template")
	}
	return r, nil
}

// Lookup returns the profile with the given id.
func (r *Registry) Lookup(id string) (Profile, bool) {
	p, ok := r.byID[strings.TrimSpace(id)]
	return p, ok
}

// Get returns the profile with the given id or the fallback profile.
func (r *Registry) Get(id string) Profile {
	if p, ok := r.Lookup(id); ok {
		return p
	}
	return r.Fallback()
}

// Fallback returns the lowest free profile.
func (r *Registry) Fallback() Profile {
	return r.byID[r.fallback]
}

// List returns all profiles in catalog order.
func (r *Registry) List() []Profile {
	out := make([]Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Resolve picks the profile to render for a tier. Unknown ids and paid
// profiles the tier cannot use resolve to the fallback; fellBack reports it.
func (r *Registry) Resolve(id string, tier plan.Tier) (profile Profile, fellBack bool) {
	p, ok := r.Lookup(id)
	if ok && IsAccessible(p, tier) {
		return p, false
	}
	return r.Fallback(), true
}

func copyLabels(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
