package preview

import (
	"time"

	"gorm.io/datatypes"
)

// LinkPreview is a locally cached Open Graph snapshot for a URL a candidate
// supplied in a url-typed field. The backend precomputes previews for most
// applications; this store fills the gaps and avoids refetching.
type LinkPreview struct {
	URL         string         `gorm:"primaryKey;type:varchar(500)" json:"url"`
	Title       string         `gorm:"type:varchar(300)"            json:"title"`
	Description string         `gorm:"type:text"                    json:"description"`
	ImageURL    string         `gorm:"type:varchar(500)"            json:"imageUrl"`
	SiteName    string         `gorm:"type:varchar(200)"            json:"siteName"`
	Properties  datatypes.JSON `gorm:"type:json"                    json:"properties"`
	FetchedAt   time.Time      `gorm:"index"                        json:"fetchedAt"`
}

func (LinkPreview) TableName() string {
	return "link_previews"
}
