package notify

import (
	"errors"
	"fmt"
	"testing"

	"recruiter/internal/backend"

	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		title       string
		description string
	}{
		{
			name:        "bad request without message",
			err:         &backend.RequestError{Status: 400},
			title:       "Bad Request",
			description: "The request was invalid.",
		},
		{
			name:        "unauthorized",
			err:         &backend.RequestError{Status: 401},
			title:       "Unauthorized",
			description: "You are not authorized to access this resource.",
		},
		{
			name:        "forbidden",
			err:         &backend.RequestError{Status: 403},
			title:       "Forbidden",
			description: "You do not have permission to perform this action.",
		},
		{
			name:        "not found",
			err:         &backend.RequestError{Status: 404},
			title:       "Not Found",
			description: "The requested resource could not be found.",
		},
		{
			name:        "server error",
			err:         &backend.RequestError{Status: 500},
			title:       "Server Error",
			description: "An internal server error occurred.",
		},
		{
			name:        "unmapped status",
			err:         &backend.RequestError{Status: 418},
			title:       "Error",
			description: "An unexpected error occurred.",
		},
		{
			name:        "network failure",
			err:         &backend.RequestError{Status: 0, Message: "connection refused"},
			title:       "Error",
			description: "connection refused",
		},
		{
			name:        "backend message wins over canned text",
			err:         &backend.RequestError{Status: 400, Message: "fullName is required"},
			title:       "Bad Request",
			description: "fullName is required",
		},
		{
			name:        "plain error",
			err:         errors.New("something broke"),
			title:       "Error",
			description: "An unexpected error occurred.",
		},
		{
			name:        "wrapped request error",
			err:         fmt.Errorf("fetching templates: %w", &backend.RequestError{Status: 404}),
			title:       "Not Found",
			description: "The requested resource could not be found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notice := FromError(tt.err)
			assert.Equal(t, tt.title, notice.Title)
			assert.Equal(t, tt.description, notice.Description)
			assert.Equal(t, VariantDestructive, notice.Variant)
		})
	}
}

func TestSuccess(t *testing.T) {
	notice := Success("Saved", "Template saved successfully.")
	assert.Equal(t, VariantDefault, notice.Variant)
	assert.Equal(t, "Saved", notice.Title)
}
