package forms

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"recruiter/internal/logger"
	. "recruiter/internal/models"
)

type State string

const (
	StateIdle         State = "idle"
	StateValidating   State = "validating"
	StateSubmitting   State = "submitting"
	StateSubmitted    State = "submitted"
	StateSubmitFailed State = "submit-failed"
)

var (
	ErrValidationFailed = errors.New("submission failed validation")
	ErrNotHydrated      = errors.New("form controller has no template yet")
)

// SubmitFunc receives the validated payload. Upload handles for file-typed
// fields travel separately from the JSON-shaped values.
type SubmitFunc func(ctx context.Context, payload SubmissionPayload, files map[string]any) error

// Controller owns one form instance: current values, the validation error
// map, and the submit lifecycle. All access happens on one request
// goroutine, mirroring the single-threaded UI it stands in for.
type Controller struct {
	schema   Schema
	template Template

	fullName          string
	companyID         int
	applicationTypeID int
	customValues      map[string]any

	fieldErrors map[string]string
	state       State
	hydrated    bool

	submit SubmitFunc
	log    logger.Logger
}

func NewController(submit SubmitFunc) *Controller {
	return &Controller{
		customValues: make(map[string]any),
		fieldErrors:  make(map[string]string),
		state:        StateIdle,
		submit:       submit,
		log:          logger.New("forms").File("controller"),
	}
}

// Hydrate installs the backing template and resets every value to its
// default. It is one-shot: later template refreshes never reach a form the
// candidate may already be typing into.
func (c *Controller) Hydrate(template Template, applicationTypeID string) {
	if c.hydrated {
		c.log.Function("Hydrate").Debug("ignoring repeat hydration", "templateID", template.ID)
		return
	}

	c.template = template
	c.schema = Synthesize(template.FormFields)

	c.fullName = ""
	c.companyID = template.CompanyID
	if parsed, err := strconv.Atoi(applicationTypeID); err == nil {
		c.applicationTypeID = parsed
	}

	c.customValues = make(map[string]any, len(template.FormFields))
	for _, field := range template.FormFields {
		if field.FieldType == FieldTypeFile {
			c.customValues[field.FieldName] = nil
		} else {
			c.customValues[field.FieldName] = ""
		}
	}

	c.fieldErrors = make(map[string]string)
	c.state = StateIdle
	c.hydrated = true
}

func (c *Controller) Hydrated() bool {
	return c.hydrated
}

func (c *Controller) State() State {
	return c.state
}

// Editable reports whether the candidate can still change values: only an
// in-flight or completed submission locks the form.
func (c *Controller) Editable() bool {
	return c.state != StateSubmitting && c.state != StateSubmitted
}

func (c *Controller) Errors() map[string]string {
	return c.fieldErrors
}

// SetValue writes one field. Paths are "fullName" or
// "customFields.<fieldName>"; anything else is dropped.
func (c *Controller) SetValue(path string, value any) {
	if !c.Editable() {
		return
	}

	if path == "fullName" {
		c.fullName = stringValue(value)
		return
	}

	if name, ok := strings.CutPrefix(path, "customFields."); ok {
		c.customValues[name] = value
	}
}

func (c *Controller) Value(path string) any {
	if path == "fullName" {
		return c.fullName
	}
	if name, ok := strings.CutPrefix(path, "customFields."); ok {
		return c.customValues[name]
	}
	return nil
}

func (c *Controller) payload() (SubmissionPayload, map[string]any) {
	values := make(map[string]any, len(c.customValues))
	files := make(map[string]any)

	for _, field := range c.template.FormFields {
		value := c.customValues[field.FieldName]
		if field.FieldType == FieldTypeFile {
			if value != nil {
				files[field.FieldName] = value
			}
			continue
		}
		values[field.FieldName] = stringValue(value)
	}

	return SubmissionPayload{
		FullName:          c.fullName,
		CompanyID:         c.companyID,
		ApplicationTypeID: c.applicationTypeID,
		CustomFields:      values,
	}, files
}

// Submit validates and, if clean, hands the payload to the submit function.
// A failed submission keeps the candidate's values intact and leaves the
// form editable.
func (c *Controller) Submit(ctx context.Context) error {
	log := c.log.Function("Submit")

	if !c.hydrated {
		return ErrNotHydrated
	}
	if !c.Editable() {
		return log.Error("submit attempted while form is locked", "state", c.state)
	}

	c.state = StateValidating

	sub := Submission{
		FullName:          c.fullName,
		CompanyID:         c.companyID,
		ApplicationTypeID: c.applicationTypeID,
		CustomFields:      c.customValues,
	}

	if errs := c.schema.Validate(sub); len(errs) > 0 {
		c.fieldErrors = errs
		c.state = StateIdle
		log.Debug("validation failed", "errorCount", len(errs))
		return ErrValidationFailed
	}

	c.fieldErrors = make(map[string]string)
	c.state = StateSubmitting

	payload, files := c.payload()
	if err := c.submit(ctx, payload, files); err != nil {
		c.state = StateSubmitFailed
		return log.Err("submission failed", err, "applicationTypeID", c.applicationTypeID)
	}

	c.state = StateSubmitted
	return nil
}
