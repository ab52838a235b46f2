package forms

import (
	"strings"

	. "recruiter/internal/models"
)

// Name-substring heuristics win over the type mapping, so a text field named
// "companyEmail" still resolves to the email category. Order matters: the
// first matching rule applies.
var autofillHeuristics = []struct {
	tokens   []string
	category string
}{
	{[]string{"email"}, "email"},
	{[]string{"phone", "tel"}, "tel"},
	{[]string{"address"}, "address-line1"},
	{[]string{"city"}, "address-level2"},
	{[]string{"state", "region"}, "address-level1"},
	{[]string{"zip", "postal"}, "postal-code"},
	{[]string{"country"}, "country"},
	{[]string{"organization", "company"}, "organization"},
	{[]string{"title", "position"}, "organization-title"},
	{[]string{"website", "url"}, "url"},
}

// ResolveAutofill picks the browser autofill category for a field.
func ResolveAutofill(field FieldDefinition) string {
	name := strings.ToLower(field.FieldName)

	for _, rule := range autofillHeuristics {
		for _, token := range rule.tokens {
			if strings.Contains(name, token) {
				return rule.category
			}
		}
	}

	switch field.FieldType {
	case FieldTypeEmail:
		return "email"
	case FieldTypeTel:
		return "tel"
	case FieldTypeUrl:
		return "url"
	default:
		return "off"
	}
}
