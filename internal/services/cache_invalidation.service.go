package services

import (
	"strings"

	"recruiter/internal/events"
	"recruiter/internal/logger"
	"recruiter/internal/repositories"
)

// CacheInvalidationService propagates changes across resources: application
// records carry denormalized template names, so whenever the template list
// changes the cached application lists are marked stale.
type CacheInvalidationService struct {
	eventBus        *events.EventBus
	applicationRepo repositories.ApplicationRepository
	unsubscribe     func()
	log             logger.Logger
}

func NewCacheInvalidationService(
	eventBus *events.EventBus,
	applicationRepo repositories.ApplicationRepository,
) *CacheInvalidationService {
	s := &CacheInvalidationService{
		eventBus:        eventBus,
		applicationRepo: applicationRepo,
		log:             logger.New("CacheInvalidationService"),
	}

	s.unsubscribe = eventBus.Subscribe(s.handle)
	return s
}

func (s *CacheInvalidationService) handle(event events.Event) {
	if event.Kind != events.KindResourceChanged {
		return
	}

	if strings.HasPrefix(event.Key, "application-type") {
		s.log.Function("handle").Debug("template change, invalidating application lists", "key", event.Key)
		s.applicationRepo.InvalidateList()
	}
}

func (s *CacheInvalidationService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
