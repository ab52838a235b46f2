package models

import (
	"time"

	"recruiter/internal/utils"
)

// LinkPreviewMeta is the preview metadata attached to URL-valued custom
// fields, either precomputed by the backend or filled in locally.
type LinkPreviewMeta struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
}

type Application struct {
	ID                  string                     `json:"id"`
	FullName            string                     `json:"fullName"`
	ApplicationTypeID   int                        `json:"applicationTypeId"`
	ApplicationTypeName string                     `json:"applicationTypeName,omitempty"`
	CompanyID           int                        `json:"companyId"`
	CompanyName         string                     `json:"companyName,omitempty"`
	CustomFields        map[string]any             `json:"customFields"`
	LinkPreviews        map[string]LinkPreviewMeta `json:"linkPreviews,omitempty"`
	CreatedAt           time.Time                  `json:"createdAt"`
	UpdatedAt           time.Time                  `json:"updatedAt"`
}

type RawApplication struct {
	UID                 string                     `json:"uid"`
	FullName            string                     `json:"fullName"`
	ApplicationTypeID   int                        `json:"applicationTypeId"`
	ApplicationTypeName string                     `json:"applicationTypeName"`
	CompanyID           int                        `json:"companyId"`
	CompanyName         string                     `json:"companyName"`
	CustomFields        map[string]any             `json:"customFields"`
	LinkPreviews        map[string]LinkPreviewMeta `json:"linkPreviews"`
	CreatedAt           string                     `json:"createdAt"`
	UpdatedAt           string                     `json:"updatedAt"`
}

func SerializeApplication(raw RawApplication) Application {
	return Application{
		ID:                  raw.UID,
		FullName:            raw.FullName,
		ApplicationTypeID:   raw.ApplicationTypeID,
		ApplicationTypeName: raw.ApplicationTypeName,
		CompanyID:           raw.CompanyID,
		CompanyName:         raw.CompanyName,
		CustomFields:        raw.CustomFields,
		LinkPreviews:        raw.LinkPreviews,
		CreatedAt:           utils.ParseDate(raw.CreatedAt),
		UpdatedAt:           utils.ParseDate(raw.UpdatedAt),
	}
}

func SerializeApplications(raws []RawApplication) []Application {
	applications := make([]Application, 0, len(raws))
	for _, raw := range raws {
		applications = append(applications, SerializeApplication(raw))
	}
	return applications
}

// SubmissionPayload is what the public form hands to the backend once it
// passes validation. File-typed custom field values are upload handles and
// travel as multipart parts instead.
type SubmissionPayload struct {
	FullName          string         `json:"fullName"`
	CompanyID         int            `json:"companyId"`
	ApplicationTypeID int            `json:"applicationTypeId"`
	CustomFields      map[string]any `json:"customFields"`
}
