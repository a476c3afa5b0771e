package model

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeContentAcceptsFullPayload(t *testing.T) {
	raw := []byte(`{
		"name": "Backend resume",
		"personalInfo": {"fullName": "Ada Lovelace", "email": "ada@example.com", "linkedin": "https://linkedin.com/in/ada"},
		"summary": "Engineer who achieved things.",
		"experience": [{"company": "Acme", "role": "Engineer", "duration": "2020 - 2024", "description": "Built React apps"}],
		"skills": ["Go", "SQL"],
		"customSections": [{"title": "Volunteering", "content": "Mentor"}],
		"templateId": "modern",
		"labels": {"experience": "Career"}
	}`)

	content, err := DecodeContent(raw)
	if err != nil {
		t.Fatalf("DecodeContent: %v", err)
	}
	if content.PersonalInfo.FullName != "Ada Lovelace" {
		t.Fatalf("expected fullName, got %q", content.PersonalInfo.FullName)
	}
	if len(content.Experience) != 1 || content.Experience[0].Company != "Acme" {
		t.Fatalf("unexpected experience: %+v", content.Experience)
	}
	if label, ok := content.Label(SectionExperience); !ok || label != "Career" {
		t.Fatalf("expected label override, got %q", label)
	}
}

func TestDecodeContentRejectsWrongTypes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "skills not array", raw: `{"skills": "Go"}`},
		{name: "experience item not object", raw: `{"experience": ["Acme"]}`},
		{name: "labels non string", raw: `{"labels": {"summary": 3}}`},
		{name: "not an object", raw: `[1,2,3]`},
		{name: "empty", raw: `  `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeContent([]byte(tt.raw))
			if !errors.Is(err, ErrInvalidContent) {
				t.Fatalf("expected ErrInvalidContent, got %v", err)
			}
		})
	}
}

func TestDecodeContentRejectsRelativeLinks(t *testing.T) {
	_, err := DecodeContent([]byte(`{"personalInfo": {"github": "github.com/ada"}}`))
	if !errors.Is(err, ErrInvalidContent) {
		t.Fatalf("expected ErrInvalidContent, got %v", err)
	}
	if !strings.Contains(err.Error(), "personalInfo.github") {
		t.Fatalf("expected field name in error, got %v", err)
	}
}

func TestLabelIgnoresBlankOverride(t *testing.T) {
	content := Content{Labels: map[string]string{SectionSkills: "   "}}
	if _, ok := content.Label(SectionSkills); ok {
		t.Fatalf("expected blank label to be ignored")
	}
}
