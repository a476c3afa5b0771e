package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidContent wraps schema and format violations of a resume payload.
var ErrInvalidContent = errors.New("invalid resume content")

const contentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "definitions": {
    "text": {"type": "string", "maxLength": 20000},
    "short": {"type": "string", "maxLength": 500},
    "stringList": {"type": "array", "maxItems": 200, "items": {"type": "string", "maxLength": 200}}
  },
  "properties": {
    "personalInfo": {
      "type": "object",
      "properties": {
        "fullName": {"$ref": "#/definitions/short"},
        "email": {"$ref": "#/definitions/short"},
        "phone": {"$ref": "#/definitions/short"},
        "location": {"$ref": "#/definitions/short"},
        "tagline": {"$ref": "#/definitions/short"},
        "website": {"$ref": "#/definitions/short"},
        "linkedin": {"$ref": "#/definitions/short"},
        "github": {"$ref": "#/definitions/short"}
      }
    },
    "summary": {"$ref": "#/definitions/text"},
    "experience": {
      "type": "array",
      "maxItems": 50,
      "items": {
        "type": "object",
        "properties": {
          "company": {"$ref": "#/definitions/short"},
          "role": {"$ref": "#/definitions/short"},
          "duration": {"$ref": "#/definitions/short"},
          "description": {"$ref": "#/definitions/text"}
        }
      }
    },
    "education": {
      "type": "array",
      "maxItems": 50,
      "items": {
        "type": "object",
        "properties": {
          "institution": {"$ref": "#/definitions/short"},
          "degree": {"$ref": "#/definitions/short"},
          "duration": {"$ref": "#/definitions/short"},
          "description": {"$ref": "#/definitions/text"}
        }
      }
    },
    "projects": {
      "type": "array",
      "maxItems": 50,
      "items": {
        "type": "object",
        "properties": {
          "name": {"$ref": "#/definitions/short"},
          "link": {"$ref": "#/definitions/short"},
          "duration": {"$ref": "#/definitions/short"},
          "description": {"$ref": "#/definitions/text"}
        }
      }
    },
    "publications": {
      "type": "array",
      "maxItems": 50,
      "items": {
        "type": "object",
        "properties": {
          "title": {"$ref": "#/definitions/short"},
          "publisher": {"$ref": "#/definitions/short"},
          "date": {"$ref": "#/definitions/short"},
          "link": {"$ref": "#/definitions/short"},
          "description": {"$ref": "#/definitions/text"}
        }
      }
    },
    "skills": {"$ref": "#/definitions/stringList"},
    "interests": {"$ref": "#/definitions/stringList"},
    "customSections": {
      "type": "array",
      "maxItems": 20,
      "items": {
        "type": "object",
        "properties": {
          "title": {"$ref": "#/definitions/short"},
          "content": {"$ref": "#/definitions/text"}
        }
      }
    },
    "templateId": {"type": "string", "maxLength": 64},
    "labels": {
      "type": "object",
      "additionalProperties": {"type": "string", "maxLength": 120}
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(contentSchema))
	})
	return schema, schemaErr
}

// DecodeContent validates a raw JSON payload against the resume schema and
// decodes it. Unknown top-level keys are tolerated and dropped.
func DecodeContent(raw []byte) (Content, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Content{}, fmt.Errorf("%w: empty payload", ErrInvalidContent)
	}
	s, err := loadSchema()
	if err != nil {
		return Content{}, fmt.Errorf("load resume schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return Content{}, fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(msgs, "; "))
	}

	var content Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if err := content.Validate(); err != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return content, nil
}
