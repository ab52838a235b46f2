package forms

import (
	"context"
	"errors"
	"testing"

	. "recruiter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplate() Template {
	return Template{
		ID:        7,
		CompanyID: 3,
		Name:      "Backend Engineer",
		IsActive:  true,
		FormFields: []FieldDefinition{
			{FieldName: "email", FieldType: FieldTypeEmail, Label: "Email", Required: true},
			{FieldName: "resume", FieldType: FieldTypeFile, Label: "Resume", Required: false},
		},
	}
}

func TestController_HydrateDefaults(t *testing.T) {
	form := NewController(func(context.Context, SubmissionPayload, map[string]any) error { return nil })

	form.Hydrate(testTemplate(), "7")

	assert.True(t, form.Hydrated())
	assert.Equal(t, StateIdle, form.State())
	assert.Equal(t, "", form.Value("fullName"))
	assert.Equal(t, "", form.Value("customFields.email"))
	assert.Nil(t, form.Value("customFields.resume"))
}

// A second hydration never reaches a form that may already hold input.
func TestController_HydrateIsOneShot(t *testing.T) {
	form := NewController(func(context.Context, SubmissionPayload, map[string]any) error { return nil })

	form.Hydrate(testTemplate(), "7")
	form.SetValue("fullName", "Jane Doe")
	form.SetValue("customFields.email", "jane@x.com")

	refreshed := testTemplate()
	refreshed.FormFields = append(refreshed.FormFields, FieldDefinition{
		FieldName: "extra", FieldType: FieldTypeText, Label: "Extra",
	})
	form.Hydrate(refreshed, "7")

	assert.Equal(t, "Jane Doe", form.Value("fullName"))
	assert.Equal(t, "jane@x.com", form.Value("customFields.email"))
}

func TestController_SubmitBeforeHydrate(t *testing.T) {
	form := NewController(func(context.Context, SubmissionPayload, map[string]any) error { return nil })

	err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotHydrated)
}

func TestController_ValidationFailureKeepsValues(t *testing.T) {
	called := false
	form := NewController(func(context.Context, SubmissionPayload, map[string]any) error {
		called = true
		return nil
	})

	form.Hydrate(testTemplate(), "7")
	form.SetValue("fullName", "Jane Doe")
	form.SetValue("customFields.email", "not-an-email")

	err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.False(t, called, "submit function must not run on validation failure")

	assert.Equal(t, StateIdle, form.State())
	assert.True(t, form.Editable())
	assert.Equal(t, "not-an-email", form.Value("customFields.email"))
	assert.Equal(t, "Please enter a valid email address", form.Errors()["customFields.email"])
}

func TestController_SubmitSuccess(t *testing.T) {
	var got SubmissionPayload
	var gotFiles map[string]any

	form := NewController(func(_ context.Context, payload SubmissionPayload, files map[string]any) error {
		got = payload
		gotFiles = files
		return nil
	})

	form.Hydrate(testTemplate(), "7")
	form.SetValue("fullName", "Jane Doe")
	form.SetValue("customFields.email", "jane@x.com")
	form.SetValue("customFields.resume", "upload-handle")

	require.NoError(t, form.Submit(context.Background()))

	assert.Equal(t, StateSubmitted, form.State())
	assert.False(t, form.Editable())
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, 3, got.CompanyID)
	assert.Equal(t, 7, got.ApplicationTypeID)
	assert.Equal(t, "jane@x.com", got.CustomFields["email"])

	// file values travel separately from the JSON-shaped fields
	assert.NotContains(t, got.CustomFields, "resume")
	assert.Equal(t, "upload-handle", gotFiles["resume"])
}

func TestController_SubmitFailureStaysEditable(t *testing.T) {
	form := NewController(func(context.Context, SubmissionPayload, map[string]any) error {
		return errors.New("backend unavailable")
	})

	form.Hydrate(testTemplate(), "7")
	form.SetValue("fullName", "Jane Doe")
	form.SetValue("customFields.email", "jane@x.com")

	err := form.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StateSubmitFailed, form.State())
	assert.True(t, form.Editable())
	assert.Equal(t, "jane@x.com", form.Value("customFields.email"))
}

func TestController_SetValueIgnoredWhenLocked(t *testing.T) {
	form := NewController(func(context.Context, SubmissionPayload, map[string]any) error { return nil })

	form.Hydrate(testTemplate(), "7")
	form.SetValue("fullName", "Jane Doe")
	form.SetValue("customFields.email", "jane@x.com")
	require.NoError(t, form.Submit(context.Background()))

	form.SetValue("fullName", "Someone Else")
	assert.Equal(t, "Jane Doe", form.Value("fullName"))
}

func TestController_UnknownPathIsDropped(t *testing.T) {
	form := NewController(func(context.Context, SubmissionPayload, map[string]any) error { return nil })
	form.Hydrate(testTemplate(), "7")

	assert.NotPanics(t, func() {
		form.SetValue("somethingElse", "value")
	})
	assert.Nil(t, form.Value("somethingElse"))
}
