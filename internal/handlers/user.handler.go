package handlers

import (
	"time"

	"recruiter/internal/app"
	userController "recruiter/internal/controllers/users"
	"recruiter/internal/logger"
	. "recruiter/internal/models"
	"recruiter/internal/sessions"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	controller *userController.UserController
	sessionTTL time.Duration
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		controller: app.UserController,
		sessionTTL: time.Duration(app.Config.SessionTTLHours) * time.Hour,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users")
	users.Post("/login", h.login)
	users.Post("/logout", h.logout)

	users.Get("/me", h.middleware.RequireAuth, h.me)
	users.Get("/", h.middleware.RequireAdmin, h.list)
	users.Post("/", h.middleware.RequireAdmin, h.create)
}

func (h *UserHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var loginRequest LoginRequest
	if err := c.BodyParser(&loginRequest); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	user, session, err := h.controller.Login(c.UserContext(), loginRequest)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessions.CookieName,
		Value:    session.ID,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"message": "success", "user": user})
}

func (h *UserHandler) logout(c *fiber.Ctx) error {
	if err := h.controller.Logout(c.UserContext()); err != nil {
		h.log.Function("logout").Er("failed to clear session", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessions.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *UserHandler) me(c *fiber.Ctx) error {
	user, err := h.controller.Me(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "user": user})
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	users, err := h.controller.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "users": users})
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	log := h.log.Function("create")

	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse create user request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse request"})
	}

	user, err := h.controller.Add(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "user": user})
}
