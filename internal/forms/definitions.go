package forms

import (
	"fmt"
	"regexp"

	. "recruiter/internal/models"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateDefinitions checks an editor-supplied field list before a template
// is saved. Submission payloads are keyed by fieldName, so duplicates would
// silently overwrite each other; uniqueness is rejected here rather than
// left to the backend.
func ValidateDefinitions(fields []FieldDefinition) map[string]string {
	errs := make(map[string]string)
	seen := make(map[string]bool, len(fields))

	for i, field := range fields {
		namePath := fmt.Sprintf("formFields.%d.fieldName", i)

		if !identifierPattern.MatchString(field.FieldName) {
			errs[namePath] = "Field name must be a valid identifier (no spaces or special characters)"
		} else if seen[field.FieldName] {
			errs[namePath] = fmt.Sprintf("Field name %q is already used in this template", field.FieldName)
		}
		seen[field.FieldName] = true

		if !field.FieldType.Valid() {
			errs[fmt.Sprintf("formFields.%d.fieldType", i)] = "Field type must be one of the predefined types: text, email, tel, textarea, url, number, file"
		}

		if field.Label == "" {
			errs[fmt.Sprintf("formFields.%d.label", i)] = "Label is required"
		}
	}

	return errs
}
