package forms

import (
	"fmt"
	"strings"

	. "recruiter/internal/models"
)

type ControlKind string

const (
	ControlInput    ControlKind = "input"
	ControlTextarea ControlKind = "textarea"
	ControlFile     ControlKind = "file"
)

const textareaDefaultRows = 4

// Control is the view-facing description of one rendered field. The public
// form template consumes these; changes flow back into the controller state
// at customFields.<Name>.
type Control struct {
	Name        string
	Label       string
	Kind        ControlKind
	InputType   string
	Rows        int
	Accept      string
	Placeholder string
	Autofill    string
	Required    bool
}

// ResolveControl maps a field definition onto an input control. The switch
// is exhaustive over the closed FieldType set; an invalid type is an error,
// never a silent fall back to plain text.
func ResolveControl(field FieldDefinition) (Control, error) {
	control := Control{
		Name:        field.FieldName,
		Label:       field.Label,
		Placeholder: placeholderText(field),
		Autofill:    ResolveAutofill(field),
		Required:    field.Required,
	}

	switch field.FieldType {
	case FieldTypeTextarea:
		control.Kind = ControlTextarea
		control.Rows = textareaDefaultRows
	case FieldTypeFile:
		control.Kind = ControlFile
		control.Accept = field.Placeholder
		if control.Accept == "" {
			control.Accept = "*"
		}
	case FieldTypeEmail, FieldTypeTel, FieldTypeNumber, FieldTypeUrl:
		control.Kind = ControlInput
		control.InputType = string(field.FieldType)
	case FieldTypeText:
		control.Kind = ControlInput
		control.InputType = "text"
	default:
		return Control{}, fmt.Errorf("unknown field type %q for field %q", field.FieldType, field.FieldName)
	}

	return control, nil
}

func ResolveControls(fields []FieldDefinition) ([]Control, error) {
	controls := make([]Control, 0, len(fields))
	for _, field := range fields {
		control, err := ResolveControl(field)
		if err != nil {
			return nil, err
		}
		controls = append(controls, control)
	}
	return controls, nil
}

func placeholderText(field FieldDefinition) string {
	if field.Placeholder != "" {
		return field.Placeholder
	}
	return "Enter " + strings.ToLower(field.Label)
}
