package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeTemplate(t *testing.T) {
	raw := RawTemplate{
		UID:       12,
		CompanyID: 3,
		Name:      "Backend Engineer",
		IsActive:  true,
		CreatedAt: "2026-01-15T10:30:00Z",
		FormFields: []FieldDefinition{
			{FieldName: "email", FieldType: FieldTypeEmail, Label: "Email", Required: true},
		},
	}

	template := SerializeTemplate(raw)

	assert.Equal(t, 12, template.ID)
	assert.Equal(t, 3, template.CompanyID)
	assert.Equal(t, time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC), template.CreatedAt)
	assert.Len(t, template.FormFields, 1)
}

// An unparseable date serializes to the zero time instead of failing the
// whole record.
func TestSerializeTemplate_BadDate(t *testing.T) {
	template := SerializeTemplate(RawTemplate{UID: 1, CreatedAt: "not a date"})
	assert.True(t, template.CreatedAt.IsZero())
}

func TestSerializeApplication(t *testing.T) {
	raw := RawApplication{
		UID:               "app-42",
		FullName:          "Jane Doe",
		ApplicationTypeID: 12,
		CompanyID:         3,
		CustomFields:      map[string]any{"email": "jane@x.com"},
		CreatedAt:         "2026-02-01T08:00:00Z",
	}

	application := SerializeApplication(raw)

	assert.Equal(t, "app-42", application.ID)
	assert.Equal(t, "Jane Doe", application.FullName)
	assert.Equal(t, "jane@x.com", application.CustomFields["email"])
	assert.Equal(t, 2026, application.CreatedAt.Year())
}

func TestSerializeUser_Role(t *testing.T) {
	tests := []struct {
		name        string
		permissions []int
		expected    string
	}{
		{"admin permission", []int{1, 2}, RoleAdmin},
		{"no admin permission", []int{1, 3}, RoleUser},
		{"empty permissions", nil, RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := SerializeUser(RawUser{UID: "u-1", Permissions: tt.permissions})
			assert.Equal(t, tt.expected, user.Role)
		})
	}
}

func TestFieldType_UnmarshalRejectsUnknown(t *testing.T) {
	var field FieldDefinition
	err := json.Unmarshal([]byte(`{"fieldName": "x", "fieldType": "checkbox", "label": "X"}`), &field)
	assert.Error(t, err)
}

func TestFieldType_UnmarshalAcceptsWholeSet(t *testing.T) {
	for _, fieldType := range FieldTypes() {
		var parsed FieldType
		require.NoError(t, json.Unmarshal([]byte(`"`+string(fieldType)+`"`), &parsed))
		assert.Equal(t, fieldType, parsed)
	}
}

// The backend spells the score key `matchPrecentage`; decoding relies on it.
func TestApplicant_WireSpelling(t *testing.T) {
	var applicant Applicant
	require.NoError(t, json.Unmarshal([]byte(`{
		"personalInfo": {"fullName": "Jane Doe"},
		"matchPrecentage": 87,
		"matchLabel": "Strong Match"
	}`), &applicant))

	assert.Equal(t, 87, applicant.MatchPercentage)
	assert.Equal(t, "Jane Doe", applicant.PersonalInfo.FullName)
}
