package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"recruiter/internal/database"
	"recruiter/internal/logger"
	. "recruiter/internal/models"

	"gorm.io/gorm"
)

const refreshAfter = 7 * 24 * time.Hour

type Service struct {
	db   database.DB
	http *http.Client
	log  logger.Logger
}

func NewService(db database.DB) *Service {
	return &Service{
		db:   db,
		http: &http.Client{Timeout: 10 * time.Second},
		log:  logger.New("preview"),
	}
}

// Preview returns the cached snapshot for a URL, fetching and storing it on
// a miss or when the cached copy is older than a week.
func (s *Service) Preview(ctx context.Context, rawURL string) (LinkPreviewMeta, error) {
	log := s.log.Function("Preview")

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return LinkPreviewMeta{}, log.Error("not an absolute URL", "url", rawURL)
	}

	var stored LinkPreview
	err = s.db.SQL.WithContext(ctx).First(&stored, "url = ?", rawURL).Error
	if err == nil && time.Since(stored.FetchedAt) < refreshAfter {
		return toMeta(stored), nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return LinkPreviewMeta{}, log.Err("failed to read preview store", err, "url", rawURL)
	}

	props, err := fetchDocument(ctx, s.http, rawURL)
	if err != nil {
		return LinkPreviewMeta{}, log.Err("failed to fetch preview", err, "url", rawURL)
	}

	encoded, _ := json.Marshal(props)
	fresh := LinkPreview{
		URL:         rawURL,
		Title:       firstOf(props, "og:title", "title"),
		Description: props["og:description"],
		ImageURL:    props["og:image"],
		SiteName:    props["og:site_name"],
		Properties:  encoded,
		FetchedAt:   time.Now(),
	}

	if err := s.db.SQL.WithContext(ctx).Save(&fresh).Error; err != nil {
		log.Warn("failed to store preview", "url", rawURL, "error", err)
	}

	return toMeta(fresh), nil
}

// Attach fills missing link previews for every url-typed field on an
// application. Backend-supplied previews are kept; a fetch failure for one
// URL just leaves that preview absent.
func (s *Service) Attach(ctx context.Context, application *Application, fields []FieldDefinition) {
	log := s.log.Function("Attach")

	for _, field := range fields {
		if field.FieldType != FieldTypeUrl {
			continue
		}

		value, _ := application.CustomFields[field.FieldName].(string)
		if value == "" {
			continue
		}
		if _, exists := application.LinkPreviews[field.FieldName]; exists {
			continue
		}

		meta, err := s.Preview(ctx, value)
		if err != nil {
			log.Warn("skipping preview", "field", field.FieldName, "error", err)
			continue
		}

		if application.LinkPreviews == nil {
			application.LinkPreviews = make(map[string]LinkPreviewMeta)
		}
		application.LinkPreviews[field.FieldName] = meta
	}
}

func toMeta(stored LinkPreview) LinkPreviewMeta {
	return LinkPreviewMeta{
		URL:         stored.URL,
		Title:       stored.Title,
		Description: stored.Description,
		ImageURL:    stored.ImageURL,
		SiteName:    stored.SiteName,
	}
}

func firstOf(props map[string]string, keys ...string) string {
	for _, key := range keys {
		if props[key] != "" {
			return props[key]
		}
	}
	return ""
}
