package notify

import (
	"errors"

	"recruiter/internal/backend"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is a user-facing notification. Request failures map onto these by
// HTTP status; the backend-supplied message wins over the canned one when
// present.
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

func Success(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: VariantDefault}
}

func FromError(err error) Notice {
	var reqErr *backend.RequestError
	if !errors.As(err, &reqErr) {
		return Notice{
			Title:       "Error",
			Description: "An unexpected error occurred.",
			Variant:     VariantDestructive,
		}
	}

	notice := Notice{Variant: VariantDestructive, Description: reqErr.Message}

	switch reqErr.Status {
	case 400:
		notice.Title = "Bad Request"
		if notice.Description == "" {
			notice.Description = "The request was invalid."
		}
	case 401:
		notice.Title = "Unauthorized"
		if notice.Description == "" {
			notice.Description = "You are not authorized to access this resource."
		}
	case 403:
		notice.Title = "Forbidden"
		if notice.Description == "" {
			notice.Description = "You do not have permission to perform this action."
		}
	case 404:
		notice.Title = "Not Found"
		if notice.Description == "" {
			notice.Description = "The requested resource could not be found."
		}
	case 500:
		notice.Title = "Server Error"
		if notice.Description == "" {
			notice.Description = "An internal server error occurred."
		}
	default:
		notice.Title = "Error"
		if notice.Description == "" {
			notice.Description = "An unexpected error occurred."
		}
	}

	return notice
}
