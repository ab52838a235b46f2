package forms

import (
	"fmt"
	"net/url"
	"regexp"

	. "recruiter/internal/models"
)

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	numberPattern = regexp.MustCompile(`^\d+$`)
	telPattern    = regexp.MustCompile(`^\d{1,15}$`)
)

// Submission is the full payload a candidate form produces. CustomFields
// values are strings for every field kind except file, where the value is an
// opaque upload handle (nil when nothing was picked).
type Submission struct {
	FullName          string
	CompanyID         int
	ApplicationTypeID int
	CustomFields      map[string]any
}

// Schema validates a Submission against a template's field list plus the
// fixed top-level rules. Synthesize never fails for well-formed definitions,
// and synthesizing twice from the same list yields identical behavior.
type Schema struct {
	fields []FieldDefinition
}

func Synthesize(fields []FieldDefinition) Schema {
	owned := make([]FieldDefinition, len(fields))
	copy(owned, fields)
	return Schema{fields: owned}
}

func (s Schema) Fields() []FieldDefinition {
	return s.fields
}

// Validate returns a message per failing field, keyed by field path
// ("fullName", "customFields.<fieldName>"). An empty map means the
// submission is valid. Validation never panics on missing or oddly typed
// values.
func (s Schema) Validate(sub Submission) map[string]string {
	errs := make(map[string]string)

	if sub.FullName == "" {
		errs["fullName"] = "Full name is required"
	}

	for _, field := range s.fields {
		path := "customFields." + field.FieldName
		value := sub.CustomFields[field.FieldName]

		if field.FieldType == FieldTypeFile {
			if field.Required && value == nil {
				errs[path] = fmt.Sprintf("%s is required", field.Label)
			}
			continue
		}

		text := stringValue(value)
		if text == "" {
			if field.Required {
				errs[path] = fmt.Sprintf("%s is required", field.Label)
			}
			continue
		}

		if msg := formatMessage(field.FieldType, text); msg != "" {
			errs[path] = msg
		}
	}

	return errs
}

func formatMessage(fieldType FieldType, value string) string {
	switch fieldType {
	case FieldTypeEmail:
		if !emailPattern.MatchString(value) {
			return "Please enter a valid email address"
		}
	case FieldTypeNumber:
		if !numberPattern.MatchString(value) {
			return "Please enter a valid number"
		}
	case FieldTypeTel:
		if !telPattern.MatchString(value) {
			return "Please enter a valid phone number (1-15 digits)"
		}
	case FieldTypeUrl:
		if !validURL(value) {
			return "Please enter a valid URL"
		}
	}
	return ""
}

func validURL(value string) bool {
	parsed, err := url.Parse(value)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
