package forms

import (
	"testing"

	. "recruiter/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		fields   []FieldDefinition
		expected map[string]string
	}{
		{
			name: "valid list",
			fields: []FieldDefinition{
				{FieldName: "email", FieldType: FieldTypeEmail, Label: "Email"},
				{FieldName: "cover_letter", FieldType: FieldTypeTextarea, Label: "Cover Letter"},
			},
			expected: map[string]string{},
		},
		{
			name: "duplicate field name",
			fields: []FieldDefinition{
				{FieldName: "email", FieldType: FieldTypeEmail, Label: "Email"},
				{FieldName: "email", FieldType: FieldTypeText, Label: "Backup Email"},
			},
			expected: map[string]string{
				"formFields.1.fieldName": `Field name "email" is already used in this template`,
			},
		},
		{
			name: "field name with spaces",
			fields: []FieldDefinition{
				{FieldName: "full name", FieldType: FieldTypeText, Label: "Full Name"},
			},
			expected: map[string]string{
				"formFields.0.fieldName": "Field name must be a valid identifier (no spaces or special characters)",
			},
		},
		{
			name: "field name starting with digit",
			fields: []FieldDefinition{
				{FieldName: "1stChoice", FieldType: FieldTypeText, Label: "First Choice"},
			},
			expected: map[string]string{
				"formFields.0.fieldName": "Field name must be a valid identifier (no spaces or special characters)",
			},
		},
		{
			name: "unknown field type",
			fields: []FieldDefinition{
				{FieldName: "agree", FieldType: "checkbox", Label: "Agree"},
			},
			expected: map[string]string{
				"formFields.0.fieldType": "Field type must be one of the predefined types: text, email, tel, textarea, url, number, file",
			},
		},
		{
			name: "missing label",
			fields: []FieldDefinition{
				{FieldName: "email", FieldType: FieldTypeEmail},
			},
			expected: map[string]string{
				"formFields.0.label": "Label is required",
			},
		},
		{
			name: "multiple problems reported together",
			fields: []FieldDefinition{
				{FieldName: "bad name", FieldType: "radio"},
			},
			expected: map[string]string{
				"formFields.0.fieldName": "Field name must be a valid identifier (no spaces or special characters)",
				"formFields.0.fieldType": "Field type must be one of the predefined types: text, email, tel, textarea, url, number, file",
				"formFields.0.label":     "Label is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateDefinitions(tt.fields))
		})
	}
}
