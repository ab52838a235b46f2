package middleware

import (
	"recruiter/config"
	"recruiter/internal/logger"
	. "recruiter/internal/models"
	"recruiter/internal/repositories"
	"recruiter/internal/sessions"

	"github.com/gofiber/fiber/v2"
)

type Middleware struct {
	sessions *sessions.Store
	userRepo repositories.UserRepository
	config   config.Config
	log      logger.Logger
}

func New(store *sessions.Store, userRepo repositories.UserRepository, config config.Config) Middleware {
	return Middleware{
		sessions: store,
		userRepo: userRepo,
		config:   config,
		log:      logger.New("middleware"),
	}
}

// Attach resolves the session cookie and, when valid, stores the session on
// the request context so downstream backend calls carry the bearer token.
// It never rejects; unauthenticated requests just proceed without a session.
func (m Middleware) Attach(c *fiber.Ctx) error {
	id := c.Cookies(sessions.CookieName)
	if id == "" {
		return c.Next()
	}

	session, found, err := m.sessions.Get(c.UserContext(), id)
	if err != nil {
		m.log.Function("Attach").Er("failed to resolve session", err)
		return c.Next()
	}
	if !found {
		return c.Next()
	}

	c.SetUserContext(sessions.WithSession(c.UserContext(), session))
	return c.Next()
}

// RequireAuth rejects requests that did not resolve to a session.
func (m Middleware) RequireAuth(c *fiber.Ctx) error {
	if _, ok := sessions.FromContext(c.UserContext()); !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "authentication required"})
	}
	return c.Next()
}

// RequireAdmin loads the user behind the session and rejects non-admins.
// The profile lookup rides the backend's own caching, so this stays cheap.
func (m Middleware) RequireAdmin(c *fiber.Ctx) error {
	log := m.log.Function("RequireAdmin")

	if _, ok := sessions.FromContext(c.UserContext()); !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "authentication required"})
	}

	user, err := m.userRepo.Me(c.UserContext())
	if err != nil {
		log.Er("failed to load user for admin check", err)
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "authentication required"})
	}

	if user.Role != RoleAdmin {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "error", "error": "admin access required"})
	}

	c.Locals("user", *user)
	return c.Next()
}
