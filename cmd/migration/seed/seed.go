package seed

import (
	"time"

	"recruiter/config"
	"recruiter/internal/logger"
	"recruiter/internal/preview"

	"gorm.io/gorm"
)

// Seed loads a few cached link previews so development builds render the
// applicant detail page without hitting real sites.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	previews := []preview.LinkPreview{
		{
			URL:         "https://github.com/adalovelace",
			Title:       "adalovelace - Overview",
			Description: "Analytical engines and difference machines.",
			SiteName:    "GitHub",
			FetchedAt:   time.Now(),
		},
		{
			URL:         "https://www.linkedin.com/in/ada-lovelace",
			Title:       "Ada Lovelace | LinkedIn",
			Description: "Mathematician. First programmer.",
			SiteName:    "LinkedIn",
			FetchedAt:   time.Now(),
		},
	}

	for _, p := range previews {
		var existing preview.LinkPreview
		if err := db.First(&existing, "url = ?", p.URL).Error; err == nil {
			log.Info("Preview already exists", "url", p.URL)
			continue
		}
		log.Info("Seeding preview", "url", p.URL)
		if err := db.Create(&p).Error; err != nil {
			log.Er("failed to create preview", err, "url", p.URL)
		}
	}

	return nil
}
