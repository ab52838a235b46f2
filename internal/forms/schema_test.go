package forms

import (
	"testing"

	. "recruiter/internal/models"

	"github.com/stretchr/testify/assert"
)

func testFields() []FieldDefinition {
	return []FieldDefinition{
		{FieldName: "email", FieldType: FieldTypeEmail, Label: "Email Address", Required: true},
		{FieldName: "phone", FieldType: FieldTypeTel, Label: "Phone Number", Required: false},
		{FieldName: "yearsExperience", FieldType: FieldTypeNumber, Label: "Years of Experience", Required: true},
		{FieldName: "portfolio", FieldType: FieldTypeUrl, Label: "Portfolio", Required: false},
		{FieldName: "coverLetter", FieldType: FieldTypeTextarea, Label: "Cover Letter", Required: false},
		{FieldName: "resume", FieldType: FieldTypeFile, Label: "Resume", Required: true},
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	schema := Synthesize(testFields())

	errs := schema.Validate(Submission{CustomFields: map[string]any{}})

	assert.Equal(t, "Full name is required", errs["fullName"])
	assert.Equal(t, "Email Address is required", errs["customFields.email"])
	assert.Equal(t, "Years of Experience is required", errs["customFields.yearsExperience"])
	assert.Equal(t, "Resume is required", errs["customFields.resume"])

	// optional fields left empty never error
	assert.NotContains(t, errs, "customFields.phone")
	assert.NotContains(t, errs, "customFields.portfolio")
	assert.NotContains(t, errs, "customFields.coverLetter")
}

func TestValidate_FormatMessages(t *testing.T) {
	tests := []struct {
		name      string
		fieldType FieldType
		value     string
		message   string
	}{
		{"valid email", FieldTypeEmail, "jane@example.com", ""},
		{"email missing domain", FieldTypeEmail, "jane@", "Please enter a valid email address"},
		{"email missing at", FieldTypeEmail, "jane.example.com", "Please enter a valid email address"},
		{"valid number", FieldTypeNumber, "12", ""},
		{"number with letters", FieldTypeNumber, "12a", "Please enter a valid number"},
		{"negative number rejected", FieldTypeNumber, "-3", "Please enter a valid number"},
		{"valid phone", FieldTypeTel, "15551234567", ""},
		{"phone too long", FieldTypeTel, "1234567890123456", "Please enter a valid phone number (1-15 digits)"},
		{"phone with dashes", FieldTypeTel, "555-1234", "Please enter a valid phone number (1-15 digits)"},
		{"valid url", FieldTypeUrl, "https://example.com/me", ""},
		{"url without scheme", FieldTypeUrl, "example.com", "Please enter a valid URL"},
		{"text accepts anything", FieldTypeText, "anything at all", ""},
		{"textarea accepts anything", FieldTypeTextarea, "multi\nline", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := Synthesize([]FieldDefinition{
				{FieldName: "field", FieldType: tt.fieldType, Label: "Field", Required: false},
			})

			errs := schema.Validate(Submission{
				FullName:     "Jane Doe",
				CustomFields: map[string]any{"field": tt.value},
			})

			if tt.message == "" {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, tt.message, errs["customFields.field"])
			}
		})
	}
}

// Required wins over format: an empty required email reports the label
// message, not the format message.
func TestValidate_RequiredBeforeFormat(t *testing.T) {
	schema := Synthesize([]FieldDefinition{
		{FieldName: "email", FieldType: FieldTypeEmail, Label: "Work Email", Required: true},
	})

	errs := schema.Validate(Submission{
		FullName:     "Jane Doe",
		CustomFields: map[string]any{"email": ""},
	})

	assert.Equal(t, "Work Email is required", errs["customFields.email"])
}

func TestValidate_CleanSubmission(t *testing.T) {
	schema := Synthesize(testFields())

	errs := schema.Validate(Submission{
		FullName: "Jane Doe",
		CustomFields: map[string]any{
			"email":           "jane@x.com",
			"phone":           "",
			"yearsExperience": "7",
			"portfolio":       "https://jane.dev",
			"coverLetter":     "",
			"resume":          struct{ name string }{"resume.pdf"},
		},
	})

	assert.Empty(t, errs)
}

func TestValidate_MissingAndOddValuesDoNotPanic(t *testing.T) {
	schema := Synthesize(testFields())

	assert.NotPanics(t, func() {
		schema.Validate(Submission{
			FullName: "Jane Doe",
			CustomFields: map[string]any{
				"yearsExperience": 7,
				"portfolio":       nil,
			},
		})
	})
}

// Synthesizing twice from the same definitions validates identically.
func TestSynthesize_Deterministic(t *testing.T) {
	fields := testFields()
	sub := Submission{
		FullName:     "Jane Doe",
		CustomFields: map[string]any{"email": "not-an-email"},
	}

	first := Synthesize(fields).Validate(sub)
	second := Synthesize(fields).Validate(sub)

	assert.Equal(t, first, second)
}

// Mutating the source slice after synthesis must not change the schema.
func TestSynthesize_CopiesFields(t *testing.T) {
	fields := []FieldDefinition{
		{FieldName: "email", FieldType: FieldTypeEmail, Label: "Email", Required: true},
	}
	schema := Synthesize(fields)

	fields[0].Required = false

	errs := schema.Validate(Submission{FullName: "Jane Doe", CustomFields: map[string]any{}})
	assert.Equal(t, "Email is required", errs["customFields.email"])
}
