package models

import (
	"encoding/json"
	"fmt"
	"time"

	"recruiter/internal/utils"
)

// FieldType is the closed set of input kinds a template field may declare.
// Decoding rejects anything outside the set so an unrecognized type can
// never silently degrade to plain text downstream.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeUrl      FieldType = "url"
	FieldTypeNumber   FieldType = "number"
	FieldTypeFile     FieldType = "file"
)

func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeEmail,
		FieldTypeTel,
		FieldTypeTextarea,
		FieldTypeUrl,
		FieldTypeNumber,
		FieldTypeFile,
	}
}

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeTel, FieldTypeTextarea,
		FieldTypeUrl, FieldTypeNumber, FieldTypeFile:
		return true
	}
	return false
}

func (t *FieldType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed := FieldType(raw)
	if !parsed.Valid() {
		return fmt.Errorf("unknown field type %q", raw)
	}

	*t = parsed
	return nil
}

// FieldDefinition describes one configured input on a template. FieldName is
// the submission payload key; Placeholder doubles as the accept filter for
// file fields.
type FieldDefinition struct {
	FieldName   string    `json:"fieldName"`
	FieldType   FieldType `json:"fieldType"`
	Label       string    `json:"label"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
}

type Template struct {
	ID          int               `json:"id"`
	CompanyID   int               `json:"companyId"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IsActive    bool              `json:"isActive"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	FormFields  []FieldDefinition `json:"formFields"`
}

// RawTemplate is the backend wire shape; the identifier arrives as `uid` and
// timestamps as strings.
type RawTemplate struct {
	UID         int               `json:"uid"`
	CompanyID   int               `json:"companyId"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IsActive    bool              `json:"isActive"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
	FormFields  []FieldDefinition `json:"formFields"`
}

func SerializeTemplate(raw RawTemplate) Template {
	return Template{
		ID:          raw.UID,
		CompanyID:   raw.CompanyID,
		Name:        raw.Name,
		Description: raw.Description,
		IsActive:    raw.IsActive,
		CreatedAt:   utils.ParseDate(raw.CreatedAt),
		UpdatedAt:   utils.ParseDate(raw.UpdatedAt),
		FormFields:  raw.FormFields,
	}
}

func SerializeTemplates(raws []RawTemplate) []Template {
	templates := make([]Template, 0, len(raws))
	for _, raw := range raws {
		templates = append(templates, SerializeTemplate(raw))
	}
	return templates
}

// CreateTemplateRequest is the dashboard's template editor payload.
type CreateTemplateRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IsActive    bool              `json:"isActive"`
	FormFields  []FieldDefinition `json:"formFields"`
}
